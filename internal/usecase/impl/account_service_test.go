package impl

import (
	"context"
	"testing"

	"rately/config"
	"rately/internal/domain/entity"
	domainerrors "rately/internal/domain/errors"
	"rately/internal/domain/repository"
	mockRepo "rately/internal/mocks/repository"
	mockSvc "rately/internal/mocks/service"
	"rately/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testPasswordConfig mirrors the default strength policy for service tests.
func testPasswordConfig() *config.Config {
	return &config.Config{
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        16,
			RequireUppercase: true,
			RequireSpecial:   true,
		},
	}
}

type accountServiceMocks struct {
	tx          *mockRepo.MockTransactionManager
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockSvc.MockPasswordHasher
}

func newAccountService(t *testing.T) (usecase.AccountUsecase, accountServiceMocks) {
	mocks := accountServiceMocks{
		tx:          mockRepo.NewMockTransactionManager(t),
		accountRepo: mockRepo.NewMockAccountRepository(t),
		hasher:      mockSvc.NewMockPasswordHasher(t),
	}

	service := NewAccountService(AccountServiceParams{
		TxManager:   mocks.tx,
		AccountRepo: mocks.accountRepo,
		Hasher:      mocks.hasher,
		Config:      testPasswordConfig(),
		Logger:      testLogger(),
	})

	return service, mocks
}

func TestAccountService_List(t *testing.T) {
	service, mocks := newAccountService(t)

	ctx := context.Background()
	accounts := []*entity.Account{
		{ID: uuid.New(), Email: "alice@example.com", Name: "Alice Smith", Role: entity.RoleSystemAdmin, PasswordHash: "hash"},
		{ID: uuid.New(), Email: "bob@example.com", Name: "Bob Jones", Role: entity.RoleNormalUser, PasswordHash: "hash"},
	}

	mocks.accountRepo.EXPECT().
		List(ctx, repository.ListOptions{Page: 1, Limit: 20, Search: "example"}).
		Return(accounts, int64(2), nil)

	output, err := service.List(ctx, &usecase.ListAccountsInput{Page: 1, Limit: 20, Search: "example"})
	require.NoError(t, err)
	require.Len(t, output.Accounts, 2)
	assert.Equal(t, int64(2), output.Total)
	assert.Equal(t, "alice@example.com", output.Accounts[0].Email)
	assert.Equal(t, entity.RoleSystemAdmin, output.Accounts[0].Role)
}

func TestAccountService_Get_NotFound(t *testing.T) {
	service, mocks := newAccountService(t)

	ctx := context.Background()
	accountID := uuid.New()

	mocks.accountRepo.EXPECT().FindByID(ctx, accountID).Return(nil, repository.ErrAccountNotFound)

	output, err := service.Get(ctx, accountID)
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAccountService_Create_AdminMayPickAnyRole(t *testing.T) {
	service, mocks := newAccountService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()

	mocks.hasher.EXPECT().Hash("Sup3r$ecret").Return("hashed", nil)

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().
		FindByEmail(ctx, "root@example.com").
		Return(nil, repository.ErrAccountNotFound)
	mocks.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		RunAndReturn(func(_ context.Context, account *entity.Account) error {
			account.ID = accountID
			return nil
		})

	output, err := service.Create(ctx, &usecase.CreateAccountInput{
		Name:     "Root Admin",
		Email:    "root@example.com",
		Password: "Sup3r$ecret",
		Role:     "SYSTEM_ADMIN",
	})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, accountID, output.ID)
	assert.Equal(t, entity.RoleSystemAdmin, output.Role)
}

func TestAccountService_Create_UnknownRole(t *testing.T) {
	service, _ := newAccountService(t)

	ctx := context.Background()

	output, err := service.Create(ctx, &usecase.CreateAccountInput{
		Name:     "Root Admin",
		Email:    "root@example.com",
		Password: "Sup3r$ecret",
		Role:     "SUPERUSER",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_Create_PasswordTooShort(t *testing.T) {
	service, _ := newAccountService(t)

	ctx := context.Background()

	output, err := service.Create(ctx, &usecase.CreateAccountInput{
		Name:     "Root Admin",
		Email:    "root@example.com",
		Password: "Ab$1",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordPolicy)
}

func TestAccountService_Create_EmailTaken(t *testing.T) {
	service, mocks := newAccountService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()

	mocks.hasher.EXPECT().Hash("Sup3r$ecret").Return("hashed", nil)

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().
		FindByEmail(ctx, "taken@example.com").
		Return(&entity.Account{ID: uuid.New(), Email: "taken@example.com"}, nil)

	output, err := service.Create(ctx, &usecase.CreateAccountInput{
		Name:     "Someone Else",
		Email:    "taken@example.com",
		Password: "Sup3r$ecret",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAccountService_Update_ChangesEmail(t *testing.T) {
	service, mocks := newAccountService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()
	account := &entity.Account{
		ID:    accountID,
		Email: "old@example.com",
		Name:  "Alice Smith",
		Role:  entity.RoleNormalUser,
	}

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().FindByID(ctx, accountID).Return(account, nil)
	mocks.accountRepo.EXPECT().
		FindByEmail(ctx, "new@example.com").
		Return(nil, repository.ErrAccountNotFound)
	mocks.accountRepo.EXPECT().Update(ctx, account).Return(nil)

	newEmail := "new@example.com"
	output, err := service.Update(ctx, accountID, &usecase.UpdateAccountInput{Email: &newEmail})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "new@example.com", output.Email)
	assert.Equal(t, "Alice Smith", output.Name)
}

func TestAccountService_Update_EmailTakenByOtherAccount(t *testing.T) {
	service, mocks := newAccountService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()
	account := &entity.Account{ID: accountID, Email: "old@example.com", Name: "Alice Smith"}

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().FindByID(ctx, accountID).Return(account, nil)
	mocks.accountRepo.EXPECT().
		FindByEmail(ctx, "taken@example.com").
		Return(&entity.Account{ID: uuid.New(), Email: "taken@example.com"}, nil)

	newEmail := "taken@example.com"
	output, err := service.Update(ctx, accountID, &usecase.UpdateAccountInput{Email: &newEmail})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAccountService_UpdateProfile_NameOnly(t *testing.T) {
	service, mocks := newAccountService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()
	account := &entity.Account{
		ID:    accountID,
		Email: "alice@example.com",
		Name:  "Alice Smith",
		Role:  entity.RoleNormalUser,
	}

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().FindByID(ctx, accountID).Return(account, nil)
	mocks.accountRepo.EXPECT().Update(ctx, account).Return(nil)

	newName := "Alice Renamed"
	output, err := service.UpdateProfile(ctx, accountID, &usecase.UpdateProfileInput{Name: &newName})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "Alice Renamed", output.Name)
	assert.Equal(t, "alice@example.com", output.Email)
	assert.Equal(t, entity.RoleNormalUser, output.Role)
}

func TestAccountService_UpdateProfile_InvalidName(t *testing.T) {
	service, _ := newAccountService(t)

	ctx := context.Background()

	shortName := "ab"
	output, err := service.UpdateProfile(ctx, uuid.New(), &usecase.UpdateProfileInput{Name: &shortName})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_Delete(t *testing.T) {
	service, mocks := newAccountService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().
		FindByID(ctx, accountID).
		Return(&entity.Account{ID: accountID, Email: "alice@example.com"}, nil)
	mocks.accountRepo.EXPECT().Delete(ctx, accountID).Return(nil)

	err := service.Delete(ctx, accountID)
	require.NoError(t, err)
}

func TestAccountService_Delete_NotFound(t *testing.T) {
	service, mocks := newAccountService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().FindByID(ctx, accountID).Return(nil, repository.ErrAccountNotFound)

	err := service.Delete(ctx, accountID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAccountService_Stats(t *testing.T) {
	service, mocks := newAccountService(t)

	ctx := context.Background()

	mocks.accountRepo.EXPECT().CountByRole(ctx).Return(map[entity.Role]int64{
		entity.RoleSystemAdmin: 1,
		entity.RoleNormalUser:  7,
		entity.RoleStoreOwner:  2,
	}, nil)

	output, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), output.Total)
	assert.Equal(t, int64(7), output.ByRole[entity.RoleNormalUser])
}
