package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Output DTOs ---

// StoreStatsOutput returns the aggregates for one store. AverageRating is
// rounded to two decimal places; the distribution always carries all five
// rating values, zero-filled.
type StoreStatsOutput struct {
	TotalRatings  int            `json:"total_ratings"`
	AverageRating float64        `json:"average_rating"`
	Distribution  map[string]int `json:"rating_distribution"`
}

// PlatformStatsOutput returns the platform-wide aggregates. Distinct counts
// are the cardinality of the store and user sets appearing in any rating.
type PlatformStatsOutput struct {
	TotalRatings  int     `json:"total_ratings"`
	AverageRating float64 `json:"average_rating"`
	TotalStores   int     `json:"total_stores"`
	TotalUsers    int     `json:"total_users"`
}

// StatsUsecase defines the read-only aggregation operations. Both operations
// recompute from the current rating set on every call; no cached copy is
// authoritative.
type StatsUsecase interface {
	StoreStats(ctx context.Context, storeID uuid.UUID) (*StoreStatsOutput, error)
	PlatformStats(ctx context.Context) (*PlatformStatsOutput, error)
}
