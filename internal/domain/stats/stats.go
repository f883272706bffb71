// Package stats derives rating statistics from raw rating sets. All
// computations are pure O(n) scans; nothing here mutates state, so the
// functions are safe to call concurrently and repeatedly.
package stats

import (
	"math"

	"rately/internal/domain/entity"

	"github.com/google/uuid"
)

// Summary holds the aggregates for one rating set. Average is the unrounded
// arithmetic mean; callers round exactly once at their output boundary.
type Summary struct {
	TotalRatings int
	Average      float64
	Distribution map[entity.RatingValue]int
}

// Summarize computes the aggregates for a slice of ratings. A nil or empty
// slice yields a zero total, a zero average and a zero-filled distribution;
// an empty store is a valid zero-result, not an error.
func Summarize(ratings []*entity.Rating) Summary {
	distribution := make(map[entity.RatingValue]int, len(entity.RatingValues()))
	for _, value := range entity.RatingValues() {
		distribution[value] = 0
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating.Value.Int()
		distribution[rating.Value]++
	}

	average := 0.0
	if len(ratings) > 0 {
		average = float64(sum) / float64(len(ratings))
	}

	return Summary{
		TotalRatings: len(ratings),
		Average:      average,
		Distribution: distribution,
	}
}

// DistinctStores counts the distinct stores appearing in the rating set.
func DistinctStores(ratings []*entity.Rating) int {
	seen := make(map[uuid.UUID]struct{}, len(ratings))
	for _, rating := range ratings {
		seen[rating.StoreID] = struct{}{}
	}

	return len(seen)
}

// DistinctUsers counts the distinct users appearing in the rating set.
func DistinctUsers(ratings []*entity.Rating) int {
	seen := make(map[uuid.UUID]struct{}, len(ratings))
	for _, rating := range ratings {
		seen[rating.UserID] = struct{}{}
	}

	return len(seen)
}

// Round1 rounds to one decimal place, the precision used by store-listing
// display aggregates.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places, the precision used by the stats
// endpoints.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
