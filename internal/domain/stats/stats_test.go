package stats

import (
	"testing"

	"rately/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ratingsWithValues(values ...entity.RatingValue) []*entity.Rating {
	storeID := uuid.New()
	ratings := make([]*entity.Rating, 0, len(values))
	for _, v := range values {
		ratings = append(ratings, &entity.Rating{
			ID:      uuid.New(),
			UserID:  uuid.New(),
			StoreID: storeID,
			Value:   v,
		})
	}

	return ratings
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalRatings)
	assert.Equal(t, 0.0, summary.Average)
	assert.Equal(t, map[entity.RatingValue]int{
		entity.RatingOne:   0,
		entity.RatingTwo:   0,
		entity.RatingThree: 0,
		entity.RatingFour:  0,
		entity.RatingFive:  0,
	}, summary.Distribution)
}

func TestSummarize_FiveFiveFour(t *testing.T) {
	summary := Summarize(ratingsWithValues(entity.RatingFive, entity.RatingFive, entity.RatingFour))

	assert.Equal(t, 3, summary.TotalRatings)
	assert.InDelta(t, 14.0/3.0, summary.Average, 1e-9)
	assert.Equal(t, 2, summary.Distribution[entity.RatingFive])
	assert.Equal(t, 1, summary.Distribution[entity.RatingFour])
	assert.Equal(t, 0, summary.Distribution[entity.RatingOne])

	// The two call-site precisions derive from the same unrounded mean.
	assert.Equal(t, 4.67, Round2(summary.Average))
	assert.Equal(t, 4.7, Round1(summary.Average))
}

func TestSummarize_Idempotent(t *testing.T) {
	ratings := ratingsWithValues(entity.RatingOne, entity.RatingThree, entity.RatingFive)

	first := Summarize(ratings)
	second := Summarize(ratings)

	assert.Equal(t, first, second)
}

func TestDistinctCounts(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	storeA := uuid.New()
	storeB := uuid.New()

	ratings := []*entity.Rating{
		{UserID: userA, StoreID: storeA, Value: entity.RatingFour},
		{UserID: userA, StoreID: storeB, Value: entity.RatingTwo},
		{UserID: userB, StoreID: storeA, Value: entity.RatingFive},
	}

	assert.Equal(t, 2, DistinctStores(ratings))
	assert.Equal(t, 2, DistinctUsers(ratings))
	assert.Equal(t, 0, DistinctStores(nil))
	assert.Equal(t, 0, DistinctUsers(nil))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 4.67, Round2(4.666666))
	assert.Equal(t, 4.7, Round1(4.666666))
	assert.Equal(t, 4.6, Round1(4.649))
	assert.Equal(t, 0.0, Round2(0))
}
