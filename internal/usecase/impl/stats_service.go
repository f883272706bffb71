package impl

import (
	"context"
	"log/slog"

	deliverycontext "rately/internal/delivery/context"
	"rately/internal/domain/entity"
	"rately/internal/domain/repository"
	"rately/internal/domain/stats"
	"rately/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// statsService implements the StatsUsecase interface. It performs no writes,
// so every operation is safe to call concurrently and repeatedly.
type statsService struct {
	ratingRepo repository.RatingRepository
	logger     *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(ratingRepo repository.RatingRepository, logger *slog.Logger) usecase.StatsUsecase {
	return &statsService{
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

func (srv *statsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StoreStats recomputes the aggregates for one store from its current rating
// set. A store with zero ratings yields a valid zero-result.
func (srv *statsService) StoreStats(ctx context.Context, storeID uuid.UUID) (*usecase.StoreStatsOutput, error) {
	srv.log(ctx).Debug("Computing store stats", slog.String("storeID", storeID.String()))

	ratings, err := srv.ratingRepo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ratings for store stats")
	}

	summary := stats.Summarize(ratings)

	distribution := make(map[string]int, len(summary.Distribution))
	for value, count := range summary.Distribution {
		distribution[value.String()] = count
	}

	return &usecase.StoreStatsOutput{
		TotalRatings:  summary.TotalRatings,
		AverageRating: stats.Round2(summary.Average),
		Distribution:  distribution,
	}, nil
}

// PlatformStats recomputes the platform-wide aggregates over every rating.
func (srv *statsService) PlatformStats(ctx context.Context) (*usecase.PlatformStatsOutput, error) {
	srv.log(ctx).Debug("Computing platform stats")

	ratings, err := srv.ratingRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ratings for platform stats")
	}

	summary := stats.Summarize(ratings)

	return &usecase.PlatformStatsOutput{
		TotalRatings:  summary.TotalRatings,
		AverageRating: stats.Round2(summary.Average),
		TotalStores:   stats.DistinctStores(ratings),
		TotalUsers:    stats.DistinctUsers(ratings),
	}, nil
}

// summarizeForDisplay derives the one-decimal listing aggregates for a store.
// The rounding happens here, once, from the unrounded mean.
func summarizeForDisplay(ratings []*entity.Rating) (total int, average float64) {
	summary := stats.Summarize(ratings)

	return summary.TotalRatings, stats.Round1(summary.Average)
}
