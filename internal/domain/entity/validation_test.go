package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAccountName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"three ascii characters", "abc", false},
		{"four ascii characters", "abcd", true},
		{"sixty ascii characters", strings.Repeat("a", 60), true},
		{"sixty-one ascii characters", strings.Repeat("a", 61), false},
		{"three multibyte characters", "黃金屋", false},
		{"four multibyte characters", "滷肉飯店", true},
		{"sixty multibyte characters", strings.Repeat("味", 60), true},
		{"sixty-one multibyte characters", strings.Repeat("味", 61), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAccountName(tt.input))
		})
	}
}

func TestValidStoreName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"three ascii characters", "abc", false},
		{"four ascii characters", "abcd", true},
		{"three multibyte characters", "麵包坊", false},
		{"four multibyte characters", "鹽酥雞攤", true},
		{"sixty multibyte characters", strings.Repeat("餐", 60), true},
		{"sixty-one multibyte characters", strings.Repeat("餐", 61), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidStoreName(tt.input))
		})
	}
}

func TestValidStoreAddress(t *testing.T) {
	assert.True(t, ValidStoreAddress(""))
	assert.True(t, ValidStoreAddress(strings.Repeat("a", 400)))
	assert.False(t, ValidStoreAddress(strings.Repeat("a", 401)))
	assert.True(t, ValidStoreAddress(strings.Repeat("巷", 400)))
	assert.False(t, ValidStoreAddress(strings.Repeat("巷", 401)))
}
