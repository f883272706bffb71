package impl

import (
	"context"
	"log/slog"

	deliverycontext "rately/internal/delivery/context"
	"rately/internal/domain/access"
	"rately/internal/domain/entity"
	domainerrors "rately/internal/domain/errors"
	"rately/internal/domain/repository"
	"rately/internal/domain/service"
	"rately/internal/domain/stats"
	"rately/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager   repository.TransactionManager
	storeRepo   repository.StoreRepository
	ratingRepo  repository.RatingRepository
	accountRepo repository.AccountRepository
	qrService   service.QRCodeService
	logger      *slog.Logger
}

// StoreServiceParams holds dependencies for storeService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	StoreRepo   repository.StoreRepository
	RatingRepo  repository.RatingRepository
	AccountRepo repository.AccountRepository
	QRService   service.QRCodeService
	Logger      *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		txManager:   params.TxManager,
		storeRepo:   params.StoreRepo,
		ratingRepo:  params.RatingRepo,
		accountRepo: params.AccountRepo,
		qrService:   params.QRService,
		logger:      params.Logger,
	}
}

func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns one page of stores with their display aggregates recomputed
// from the current rating sets.
func (srv *storeService) List(ctx context.Context, input *usecase.ListStoresInput) (*usecase.ListStoresOutput, error) {
	stores, total, err := srv.storeRepo.List(ctx, repository.ListOptions{
		Page:   input.Page,
		Limit:  input.Limit,
		Search: input.Search,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	withStats, err := srv.attachStats(ctx, stores)
	if err != nil {
		return nil, err
	}

	return &usecase.ListStoresOutput{
		Stores: withStats,
		Total:  total,
	}, nil
}

// Get returns one store with its display aggregates.
func (srv *storeService) Get(ctx context.Context, id uuid.UUID) (*usecase.StoreWithStats, error) {
	store, err := srv.storeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, errors.WithStack(domainerrors.ErrStoreNotFound)
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	withStats, err := srv.attachStats(ctx, []*entity.Store{store})
	if err != nil {
		return nil, err
	}

	return withStats[0], nil
}

// ListByOwner returns the stores owned by one account, with display stats.
func (srv *storeService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*usecase.StoreWithStats, error) {
	stores, err := srv.storeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores by owner")
	}

	return srv.attachStats(ctx, stores)
}

// Create registers a new store owned by the actor. The capability gate and
// the field-length invariants run before any persistence attempt.
func (srv *storeService) Create(ctx context.Context, actor usecase.Actor, input *usecase.CreateStoreInput) (*usecase.StoreWithStats, error) {
	srv.log(ctx).Info("Creating store",
		slog.String("actorID", actor.ID.String()),
		slog.String("name", input.Name),
	)

	if !access.CanCreateStore(actor.Role) {
		return nil, domainerrors.ErrForbidden.WrapMessage("role may not create stores")
	}

	if err := validateStoreFields(&input.Name, &input.Address); err != nil {
		return nil, err
	}

	store := &entity.Store{
		Name:    input.Name,
		Address: input.Address,
		OwnerID: actor.ID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.StoreRepo().Create(ctx, store); err != nil {
			return errors.Wrap(err, "failed to create store")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return srv.storeOutput(store, nil), nil
}

// Update applies a partial update to a store owned by the actor (or any
// store when the actor is an admin).
func (srv *storeService) Update(ctx context.Context, actor usecase.Actor, storeID uuid.UUID, input *usecase.UpdateStoreInput) (*usecase.StoreWithStats, error) {
	srv.log(ctx).Info("Updating store",
		slog.String("actorID", actor.ID.String()),
		slog.String("storeID", storeID.String()),
	)

	if err := validateStoreFields(input.Name, input.Address); err != nil {
		return nil, err
	}

	var updated *entity.Store

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()

		store, err := storeRepo.FindByID(ctx, storeID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return errors.WithStack(domainerrors.ErrStoreNotFound)
			}

			return errors.Wrap(err, "failed to find store")
		}

		if !access.CanMutate(actor.ID, actor.Role, store.OwnerID) {
			return domainerrors.ErrForbidden.WrapMessage("you can only update your own stores")
		}

		if input.Name != nil {
			store.Name = *input.Name
		}
		if input.Address != nil {
			store.Address = *input.Address
		}

		if err := storeRepo.Update(ctx, store); err != nil {
			return errors.Wrap(err, "failed to update store")
		}
		updated = store

		return nil
	})
	if err != nil {
		return nil, err
	}

	ratings, err := srv.ratingRepo.FindByStore(ctx, updated.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ratings for store")
	}

	return srv.storeOutput(updated, ratings), nil
}

// Delete removes a store permanently after the same lookup and authorization
// sequence as Update.
func (srv *storeService) Delete(ctx context.Context, actor usecase.Actor, storeID uuid.UUID) error {
	srv.log(ctx).Info("Deleting store",
		slog.String("actorID", actor.ID.String()),
		slog.String("storeID", storeID.String()),
	)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()

		store, err := storeRepo.FindByID(ctx, storeID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return errors.WithStack(domainerrors.ErrStoreNotFound)
			}

			return errors.Wrap(err, "failed to find store")
		}

		if !access.CanMutate(actor.ID, actor.Role, store.OwnerID) {
			return domainerrors.ErrForbidden.WrapMessage("you can only delete your own stores")
		}

		if err := storeRepo.Delete(ctx, store.ID); err != nil {
			return errors.Wrap(err, "failed to delete store")
		}

		return nil
	})
}

// DirectoryStats returns the admin dashboard counters for the store directory.
func (srv *storeService) DirectoryStats(ctx context.Context) (*usecase.StoreDirectoryStatsOutput, error) {
	total, err := srv.storeRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count stores")
	}

	ratings, err := srv.ratingRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ratings")
	}

	summary := stats.Summarize(ratings)

	return &usecase.StoreDirectoryStatsOutput{
		Total:         total,
		TotalRatings:  summary.TotalRatings,
		AverageRating: stats.Round2(summary.Average),
	}, nil
}

// ShareQR renders the share QR code for an existing store.
func (srv *storeService) ShareQR(ctx context.Context, storeID uuid.UUID) ([]byte, error) {
	if _, err := srv.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, errors.WithStack(domainerrors.ErrStoreNotFound)
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	png, err := srv.qrService.GenerateStoreQR(storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate store QR code")
	}

	return png, nil
}

// attachStats builds the listing view for a slice of stores: per-store
// display aggregates plus the owner's display name.
func (srv *storeService) attachStats(ctx context.Context, stores []*entity.Store) ([]*usecase.StoreWithStats, error) {
	ownerNames := make(map[uuid.UUID]string, len(stores))

	outputs := make([]*usecase.StoreWithStats, 0, len(stores))
	for _, store := range stores {
		ratings, err := srv.ratingRepo.FindByStore(ctx, store.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load ratings for store")
		}

		output := srv.storeOutput(store, ratings)

		name, ok := ownerNames[store.OwnerID]
		if !ok {
			name = srv.ownerName(ctx, store.OwnerID)
			ownerNames[store.OwnerID] = name
		}
		output.OwnerName = name

		outputs = append(outputs, output)
	}

	return outputs, nil
}

func (srv *storeService) storeOutput(store *entity.Store, ratings []*entity.Rating) *usecase.StoreWithStats {
	total, average := summarizeForDisplay(ratings)

	return &usecase.StoreWithStats{
		ID:            store.ID,
		Name:          store.Name,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		TotalRatings:  total,
		AverageRating: average,
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
}

// ownerName resolves an owner's display name, falling back to "Unknown" for
// accounts that disappeared between the store read and the owner lookup.
func (srv *storeService) ownerName(ctx context.Context, ownerID uuid.UUID) string {
	owner, err := srv.accountRepo.FindByID(ctx, ownerID)
	if err != nil {
		srv.log(ctx).Warn("Failed to resolve store owner", slog.String("ownerID", ownerID.String()))

		return "Unknown"
	}

	return owner.Name
}

// validateStoreFields checks the name and address length invariants for any
// supplied field. Nil fields are skipped for partial updates.
func validateStoreFields(name, address *string) error {
	if name != nil && !entity.ValidStoreName(*name) {
		return domainerrors.ErrValidationFailed.WrapMessage("store name must be 4-60 characters")
	}
	if address != nil && !entity.ValidStoreAddress(*address) {
		return domainerrors.ErrValidationFailed.WrapMessage("store address must be at most 400 characters")
	}

	return nil
}
