package impl

import (
	"context"
	"log/slog"
	"unicode/utf8"

	deliverycontext "rately/internal/delivery/context"
	"rately/internal/domain/access"
	"rately/internal/domain/entity"
	domainerrors "rately/internal/domain/errors"
	"rately/internal/domain/repository"
	"rately/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	txManager  repository.TransactionManager
	ratingRepo repository.RatingRepository
	logger     *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(
	txManager repository.TransactionManager,
	ratingRepo repository.RatingRepository,
	logger *slog.Logger,
) usecase.RatingUsecase {
	return &ratingService{
		txManager:  txManager,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create records a user's first rating for a store. Capability and input
// validation run before any persistence call; the uniqueness check and the
// insert share one transaction, with the composite unique index as the
// constraint-level backstop.
func (srv *ratingService) Create(ctx context.Context, actor usecase.Actor, input *usecase.CreateRatingInput) (*usecase.RatingOutput, error) {
	srv.log(ctx).Info("Creating rating",
		slog.String("actorID", actor.ID.String()),
		slog.String("storeID", input.StoreID.String()),
	)

	if !access.CanCreateRating(actor.Role) {
		return nil, domainerrors.ErrForbidden.WrapMessage("role may not create ratings")
	}

	value := entity.RatingValue(input.Value)
	if !value.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("rating value must be one of 1-5")
	}
	if utf8.RuneCountInString(input.Comment) > entity.RatingCommentMaxLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("comment is too long")
	}

	rating := &entity.Rating{
		UserID:  actor.ID,
		StoreID: input.StoreID,
		Value:   value,
		Comment: input.Comment,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		// 1. The rated store must exist.
		if _, err := storeRepo.FindByID(ctx, input.StoreID); err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound.WrapMessage("cannot rate a missing store")
			}

			return errors.Wrap(err, "failed to find store")
		}

		// 2. At most one rating per (user, store) pair.
		_, err := ratingRepo.FindByUserAndStore(ctx, actor.ID, input.StoreID)
		if err == nil {
			return errors.WithStack(domainerrors.ErrDuplicateRating)
		}
		if !errors.Is(err, repository.ErrRatingNotFound) {
			return errors.Wrap(err, "failed to check for existing rating")
		}

		// 3. Insert. The unique index closes the check-then-insert window.
		if err := ratingRepo.Create(ctx, rating); err != nil {
			if errors.Is(err, repository.ErrDuplicateRating) {
				return errors.WithStack(domainerrors.ErrDuplicateRating)
			}

			return errors.Wrap(err, "failed to create rating")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return usecase.NewRatingOutput(rating), nil
}

// Update applies a partial update to a rating owned by the actor (or any
// rating when the actor is an admin).
func (srv *ratingService) Update(ctx context.Context, actor usecase.Actor, ratingID uuid.UUID, input *usecase.UpdateRatingInput) (*usecase.RatingOutput, error) {
	srv.log(ctx).Info("Updating rating",
		slog.String("actorID", actor.ID.String()),
		slog.String("ratingID", ratingID.String()),
	)

	if input.Value != nil && !entity.RatingValue(*input.Value).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("rating value must be one of 1-5")
	}
	if input.Comment != nil && utf8.RuneCountInString(*input.Comment) > entity.RatingCommentMaxLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("comment is too long")
	}

	var updated *entity.Rating

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ratingRepo := repoFactory.RatingRepo()

		rating, err := ratingRepo.FindByID(ctx, ratingID)
		if err != nil {
			if errors.Is(err, repository.ErrRatingNotFound) {
				return errors.WithStack(domainerrors.ErrRatingNotFound)
			}

			return errors.Wrap(err, "failed to find rating")
		}

		if !access.CanMutate(actor.ID, actor.Role, rating.UserID) {
			return domainerrors.ErrForbidden.WrapMessage("you can only update your own ratings")
		}

		if input.Value != nil {
			rating.Value = entity.RatingValue(*input.Value)
		}
		if input.Comment != nil {
			rating.Comment = *input.Comment
		}

		if err := ratingRepo.Update(ctx, rating); err != nil {
			return errors.Wrap(err, "failed to update rating")
		}
		updated = rating

		return nil
	})

	if err != nil {
		return nil, err
	}

	return usecase.NewRatingOutput(updated), nil
}

// Delete removes a rating permanently after the same lookup and
// authorization sequence as Update.
func (srv *ratingService) Delete(ctx context.Context, actor usecase.Actor, ratingID uuid.UUID) error {
	srv.log(ctx).Info("Deleting rating",
		slog.String("actorID", actor.ID.String()),
		slog.String("ratingID", ratingID.String()),
	)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ratingRepo := repoFactory.RatingRepo()

		rating, err := ratingRepo.FindByID(ctx, ratingID)
		if err != nil {
			if errors.Is(err, repository.ErrRatingNotFound) {
				return errors.WithStack(domainerrors.ErrRatingNotFound)
			}

			return errors.Wrap(err, "failed to find rating")
		}

		if !access.CanMutate(actor.ID, actor.Role, rating.UserID) {
			return domainerrors.ErrForbidden.WrapMessage("you can only delete your own ratings")
		}

		if err := ratingRepo.Delete(ctx, rating.ID); err != nil {
			return errors.Wrap(err, "failed to delete rating")
		}

		return nil
	})
}

// List returns one page of ratings across the whole platform for the admin
// moderation view.
func (srv *ratingService) List(ctx context.Context, input *usecase.ListRatingsInput) (*usecase.ListRatingsOutput, error) {
	ratings, total, err := srv.ratingRepo.List(ctx, repository.ListOptions{
		Page:   input.Page,
		Limit:  input.Limit,
		Search: input.Search,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	return &usecase.ListRatingsOutput{
		Ratings: toRatingOutputs(ratings),
		Total:   total,
	}, nil
}

// ListByStore returns every rating for a store, newest first.
func (srv *ratingService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*usecase.RatingOutput, error) {
	ratings, err := srv.ratingRepo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by store")
	}

	return toRatingOutputs(ratings), nil
}

// ListByUser returns every rating submitted by a user, newest first.
func (srv *ratingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*usecase.RatingOutput, error) {
	ratings, err := srv.ratingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by user")
	}

	return toRatingOutputs(ratings), nil
}

func toRatingOutputs(ratings []*entity.Rating) []*usecase.RatingOutput {
	outputs := make([]*usecase.RatingOutput, 0, len(ratings))
	for _, rating := range ratings {
		outputs = append(outputs, usecase.NewRatingOutput(rating))
	}

	return outputs
}
