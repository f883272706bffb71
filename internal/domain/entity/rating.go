package entity

import (
	"time"

	"github.com/google/uuid"
)

// RatingCommentMaxLength caps the optional free-text comment on a rating.
const RatingCommentMaxLength = 500

// RatingValue is the closed enumeration of store quality scores. Values are
// stored as the string literals "1".."5", matching the persisted enum.
type RatingValue string

const (
	RatingOne   RatingValue = "1"
	RatingTwo   RatingValue = "2"
	RatingThree RatingValue = "3"
	RatingFour  RatingValue = "4"
	RatingFive  RatingValue = "5"
)

// RatingValues lists every member of the enumeration in ascending order.
func RatingValues() []RatingValue {
	return []RatingValue{RatingOne, RatingTwo, RatingThree, RatingFour, RatingFive}
}

// String returns the string representation of the RatingValue.
func (v RatingValue) String() string {
	return string(v)
}

// IsValid checks if the RatingValue is a member of the enumeration.
func (v RatingValue) IsValid() bool {
	switch v {
	case RatingOne, RatingTwo, RatingThree, RatingFour, RatingFive:
		return true
	default:
		return false
	}
}

// Int returns the numeric score of the RatingValue. Invalid values yield 0.
func (v RatingValue) Int() int {
	switch v {
	case RatingOne:
		return 1
	case RatingTwo:
		return 2
	case RatingThree:
		return 3
	case RatingFour:
		return 4
	case RatingFive:
		return 5
	default:
		return 0
	}
}

// Rating represents one user's score for one store. At most one rating exists
// per (user, store) pair; repeat submissions must go through update.
type Rating struct {
	ID        uuid.UUID   // The unique identifier for the rating.
	UserID    uuid.UUID   // The account that submitted the rating.
	StoreID   uuid.UUID   // The store being rated.
	Value     RatingValue // The score, one of "1".."5".
	Comment   string      // Optional free-text comment (up to 500 characters).
	CreatedAt time.Time   // Timestamp of when this rating was created.
	UpdatedAt time.Time   // Timestamp of the last modification to this rating.
}
