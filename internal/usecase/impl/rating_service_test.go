package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"rately/internal/domain/entity"
	domainerrors "rately/internal/domain/errors"
	"rately/internal/domain/repository"
	mockRepo "rately/internal/mocks/repository"
	"rately/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testLogger discards output so assertions stay readable.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runTx wires the transaction mock to invoke its callback with the supplied
// repository factory, so the in-transaction expectations fire.
func runTx(ctx context.Context, mockTx *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	mockTx.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestRatingService_Create_FirstRating(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	mockStoreRepo := mockRepo.NewMockStoreRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}
	storeID := uuid.New()
	ratingID := uuid.New()

	factory.EXPECT().StoreRepo().Return(mockStoreRepo)
	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockStoreRepo.EXPECT().
		FindByID(ctx, storeID).
		Return(&entity.Store{ID: storeID, Name: "Bistro Central", OwnerID: uuid.New()}, nil)

	mockRatingRepo.EXPECT().
		FindByUserAndStore(ctx, actor.ID, storeID).
		Return(nil, repository.ErrRatingNotFound)

	mockRatingRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Rating")).
		RunAndReturn(func(_ context.Context, rating *entity.Rating) error {
			rating.ID = ratingID
			return nil
		})

	output, err := service.Create(ctx, actor, &usecase.CreateRatingInput{
		StoreID: storeID,
		Value:   "4",
		Comment: "Great service",
	})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, ratingID, output.ID)
	assert.Equal(t, actor.ID, output.UserID)
	assert.Equal(t, storeID, output.StoreID)
	assert.Equal(t, entity.RatingFour, output.Value)
	assert.Equal(t, "Great service", output.Comment)
}

func TestRatingService_Create_ForbiddenForStoreOwner(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleStoreOwner}

	output, err := service.Create(ctx, actor, &usecase.CreateRatingInput{
		StoreID: uuid.New(),
		Value:   "5",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestRatingService_Create_InvalidValue(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}

	for _, value := range []string{"0", "6", "3.5", ""} {
		output, err := service.Create(ctx, actor, &usecase.CreateRatingInput{
			StoreID: uuid.New(),
			Value:   value,
		})
		require.Error(t, err, "value %q", value)
		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	}
}

func TestRatingService_Create_CommentTooLong(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}

	output, err := service.Create(ctx, actor, &usecase.CreateRatingInput{
		StoreID: uuid.New(),
		Value:   "3",
		Comment: strings.Repeat("x", entity.RatingCommentMaxLength+1),
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestRatingService_Create_MissingStore(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	mockStoreRepo := mockRepo.NewMockStoreRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}
	storeID := uuid.New()

	factory.EXPECT().StoreRepo().Return(mockStoreRepo)
	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockStoreRepo.EXPECT().
		FindByID(ctx, storeID).
		Return(nil, repository.ErrStoreNotFound)

	output, err := service.Create(ctx, actor, &usecase.CreateRatingInput{
		StoreID: storeID,
		Value:   "5",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestRatingService_Create_DuplicateRating(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	mockStoreRepo := mockRepo.NewMockStoreRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}
	storeID := uuid.New()

	factory.EXPECT().StoreRepo().Return(mockStoreRepo)
	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockStoreRepo.EXPECT().
		FindByID(ctx, storeID).
		Return(&entity.Store{ID: storeID, OwnerID: uuid.New()}, nil)

	mockRatingRepo.EXPECT().
		FindByUserAndStore(ctx, actor.ID, storeID).
		Return(&entity.Rating{ID: uuid.New(), UserID: actor.ID, StoreID: storeID, Value: entity.RatingThree}, nil)

	output, err := service.Create(ctx, actor, &usecase.CreateRatingInput{
		StoreID: storeID,
		Value:   "4",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateRating)
}

func TestRatingService_Update_ChangesValue(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}
	ratingID := uuid.New()

	existing := &entity.Rating{
		ID:      ratingID,
		UserID:  actor.ID,
		StoreID: uuid.New(),
		Value:   entity.RatingFour,
		Comment: "Great service",
	}

	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockRatingRepo.EXPECT().FindByID(ctx, ratingID).Return(existing, nil)
	mockRatingRepo.EXPECT().Update(ctx, existing).Return(nil)

	newValue := "5"
	output, err := service.Update(ctx, actor, ratingID, &usecase.UpdateRatingInput{Value: &newValue})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, entity.RatingFive, output.Value)
	assert.Equal(t, "Great service", output.Comment)
}

func TestRatingService_Update_ReturnsStoredTimestamp(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}
	ratingID := uuid.New()

	loadedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	storedAt := loadedAt.Add(time.Hour)
	existing := &entity.Rating{
		ID:        ratingID,
		UserID:    actor.ID,
		StoreID:   uuid.New(),
		Value:     entity.RatingFour,
		UpdatedAt: loadedAt,
	}

	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockRatingRepo.EXPECT().FindByID(ctx, ratingID).Return(existing, nil)
	mockRatingRepo.EXPECT().Update(ctx, existing).
		RunAndReturn(func(_ context.Context, rating *entity.Rating) error {
			rating.UpdatedAt = storedAt
			return nil
		})

	newValue := "5"
	output, err := service.Update(ctx, actor, ratingID, &usecase.UpdateRatingInput{Value: &newValue})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, storedAt, output.UpdatedAt)
}

func TestRatingService_Update_ForbiddenForOtherUser(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}
	ratingID := uuid.New()

	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockRatingRepo.EXPECT().
		FindByID(ctx, ratingID).
		Return(&entity.Rating{ID: ratingID, UserID: uuid.New(), Value: entity.RatingTwo}, nil)

	newValue := "5"
	output, err := service.Update(ctx, actor, ratingID, &usecase.UpdateRatingInput{Value: &newValue})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestRatingService_Update_AdminMayEditAnyRating(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleSystemAdmin}
	ratingID := uuid.New()

	existing := &entity.Rating{ID: ratingID, UserID: uuid.New(), Value: entity.RatingOne, Comment: "spam"}

	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockRatingRepo.EXPECT().FindByID(ctx, ratingID).Return(existing, nil)
	mockRatingRepo.EXPECT().Update(ctx, existing).Return(nil)

	cleaned := ""
	output, err := service.Update(ctx, actor, ratingID, &usecase.UpdateRatingInput{Comment: &cleaned})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Empty(t, output.Comment)
}

func TestRatingService_Update_NotFound(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}
	ratingID := uuid.New()

	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockRatingRepo.EXPECT().FindByID(ctx, ratingID).Return(nil, repository.ErrRatingNotFound)

	newValue := "3"
	output, err := service.Update(ctx, actor, ratingID, &usecase.UpdateRatingInput{Value: &newValue})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRatingNotFound)
}

func TestRatingService_Delete_Owner(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}
	ratingID := uuid.New()

	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockRatingRepo.EXPECT().
		FindByID(ctx, ratingID).
		Return(&entity.Rating{ID: ratingID, UserID: actor.ID, Value: entity.RatingThree}, nil)
	mockRatingRepo.EXPECT().Delete(ctx, ratingID).Return(nil)

	err := service.Delete(ctx, actor, ratingID)
	require.NoError(t, err)
}

func TestRatingService_Delete_ForbiddenForOtherUser(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	actor := usecase.Actor{ID: uuid.New(), Role: entity.RoleNormalUser}
	ratingID := uuid.New()

	factory.EXPECT().RatingRepo().Return(mockRatingRepo)
	runTx(ctx, mockTx, factory)

	mockRatingRepo.EXPECT().
		FindByID(ctx, ratingID).
		Return(&entity.Rating{ID: ratingID, UserID: uuid.New(), Value: entity.RatingThree}, nil)

	err := service.Delete(ctx, actor, ratingID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestRatingService_List_ReturnsPage(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	ratings := []*entity.Rating{
		{ID: uuid.New(), UserID: uuid.New(), StoreID: uuid.New(), Value: entity.RatingFive, Comment: "great service"},
		{ID: uuid.New(), UserID: uuid.New(), StoreID: uuid.New(), Value: entity.RatingTwo, Comment: "slow service"},
	}

	mockRatingRepo.EXPECT().
		List(ctx, repository.ListOptions{Page: 1, Limit: 10, Search: "service"}).
		Return(ratings, int64(7), nil)

	output, err := service.List(ctx, &usecase.ListRatingsInput{Page: 1, Limit: 10, Search: "service"})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, int64(7), output.Total)
	require.Len(t, output.Ratings, 2)
	assert.Equal(t, entity.RatingFive, output.Ratings[0].Value)
	assert.Equal(t, "slow service", output.Ratings[1].Comment)
}

func TestRatingService_List_RepositoryError(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()

	mockRatingRepo.EXPECT().
		List(ctx, repository.ListOptions{}).
		Return(nil, int64(0), errors.New("connection reset"))

	output, err := service.List(ctx, &usecase.ListRatingsInput{})
	require.Error(t, err)
	assert.Nil(t, output)
}

func TestRatingService_ListByStore(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	storeID := uuid.New()

	ratings := []*entity.Rating{
		{ID: uuid.New(), UserID: uuid.New(), StoreID: storeID, Value: entity.RatingFive},
		{ID: uuid.New(), UserID: uuid.New(), StoreID: storeID, Value: entity.RatingTwo, Comment: "slow"},
	}

	mockRatingRepo.EXPECT().FindByStore(ctx, storeID).Return(ratings, nil)

	outputs, err := service.ListByStore(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, entity.RatingFive, outputs[0].Value)
	assert.Equal(t, "slow", outputs[1].Comment)
}

func TestRatingService_ListByUser_Empty(t *testing.T) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	mockRatingRepo := mockRepo.NewMockRatingRepository(t)
	service := NewRatingService(mockTx, mockRatingRepo, testLogger())

	ctx := context.Background()
	userID := uuid.New()

	mockRatingRepo.EXPECT().FindByUser(ctx, userID).Return([]*entity.Rating{}, nil)

	outputs, err := service.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, outputs)
}
