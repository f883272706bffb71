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

// ratingRepository implements the repository.RatingRepository interface.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{
		db: db,
	}
}

// FindByID retrieves a rating by its unique ID.
func (repo *ratingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ratingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by ID")
	}

	return toRatingDomain(&ratingM), nil
}

// FindByUserAndStore retrieves the rating one user gave one store.
func (repo *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&ratingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by user and store")
	}

	return toRatingDomain(&ratingM), nil
}

// FindByStore retrieves every rating for a store, newest first.
func (repo *ratingRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&ratingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find ratings by store")
	}

	return toRatingDomains(ratingModels), nil
}

// FindByUser retrieves every rating submitted by a user, newest first.
func (repo *ratingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ratingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find ratings by user")
	}

	return toRatingDomains(ratingModels), nil
}

// List retrieves one page of ratings matched by comment substring, plus the
// total match count.
func (repo *ratingRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Rating, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.RatingModel{})
	if opts.Search != "" {
		query = query.Where("comment ILIKE ?", "%"+opts.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count ratings")
	}

	var ratingModels []*model.RatingModel
	page, limit := normalizePagination(opts.Page, opts.Limit)
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ratingModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list ratings")
	}

	return toRatingDomains(ratingModels), total, nil
}

// FindAll retrieves every rating on the platform.
func (repo *ratingRepository) FindAll(ctx context.Context) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ratingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all ratings")
	}

	return toRatingDomains(ratingModels), nil
}

// Create persists a new rating. The composite unique index on
// (user_id, store_id) rejects a second rating from the same user for the
// same store, closing the race between check and insert.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRating
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrStoreNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required rating information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	// Update the entity with generated values
	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// Update modifies an existing rating's value and comment.
func (repo *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	result := repo.db.WithContext(ctx).
		Model(ratingM).
		Where("id = ?", rating.ID).
		Updates(map[string]any{
			"value":   rating.Value.String(),
			"comment": rating.Comment,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update rating")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	// Updates refreshed updated_at on the model; carry the stored
	// timestamp back so callers do not return the pre-update one.
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// Delete removes a rating permanently.
func (repo *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RatingModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete rating")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		UserID:    data.UserID,
		StoreID:   data.StoreID,
		Value:     entity.RatingValue(data.Value),
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toRatingDomains(models []*model.RatingModel) []*entity.Rating {
	ratings := make([]*entity.Rating, 0, len(models))
	for _, ratingM := range models {
		ratings = append(ratings, toRatingDomain(ratingM))
	}

	return ratings
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:        data.ID,
		UserID:    data.UserID,
		StoreID:   data.StoreID,
		Value:     data.Value.String(),
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
