package postgres

import (
	"context"

	"rately/internal/domain/entity"
	domainerrors "rately/internal/domain/errors"
	"rately/internal/domain/repository"
	"rately/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// storeRepository implements the repository.StoreRepository interface.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{
		db: db,
	}
}

// FindByID retrieves a store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by ID")
	}

	return toStoreDomain(&storeM), nil
}

// FindByOwner retrieves every store owned by the given account, newest first.
func (repo *storeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Store, error) {
	var storeModels []*model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&storeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find stores by owner")
	}

	return toStoreDomains(storeModels), nil
}

// List retrieves one page of stores matched by name or address substring,
// plus the total match count.
func (repo *storeRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Store, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.StoreModel{})
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count stores")
	}

	var storeModels []*model.StoreModel
	page, limit := normalizePagination(opts.Page, opts.Limit)
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&storeModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list stores")
	}

	return toStoreDomains(storeModels), total, nil
}

// Count returns the total number of stores.
func (repo *storeRepository) Count(ctx context.Context) (int64, error) {
	var total int64

	if err := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count stores")
	}

	return total, nil
}

// Create persists a new store.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return errors.WithStack(domainerrors.ErrAccountNotFound)
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required store information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	// Update the entity with generated values
	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Update modifies an existing store.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	result := repo.db.WithContext(ctx).
		Model(storeM).
		Where("id = ?", store.ID).
		Updates(map[string]any{
			"name":    store.Name,
			"address": store.Address,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update store")
	}

	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	// Updates refreshed updated_at on the model; carry the stored
	// timestamp back so callers do not return the pre-update one.
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Delete removes a store permanently. Its ratings cascade through the
// foreign key constraint.
func (repo *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StoreModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete store")
	}

	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toStoreDomain converts a GORM StoreModel to a domain Store entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:        data.ID,
		Name:      data.Name,
		Address:   data.Address,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toStoreDomains(models []*model.StoreModel) []*entity.Store {
	stores := make([]*entity.Store, 0, len(models))
	for _, storeM := range models {
		stores = append(stores, toStoreDomain(storeM))
	}

	return stores
}

// fromStoreDomain converts a domain Store entity to a GORM StoreModel.
func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:        data.ID,
		Name:      data.Name,
		Address:   data.Address,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
