package impl

import (
	"context"
	"testing"

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

type authServiceMocks struct {
	tx           *mockRepo.MockTransactionManager
	accountRepo  *mockRepo.MockAccountRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func newAuthService(t *testing.T) (usecase.AuthUsecase, authServiceMocks) {
	mocks := authServiceMocks{
		tx:           mockRepo.NewMockTransactionManager(t),
		accountRepo:  mockRepo.NewMockAccountRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
	}

	service := NewAuthService(AuthServiceParams{
		TxManager:    mocks.tx,
		AccountRepo:  mocks.accountRepo,
		Hasher:       mocks.hasher,
		TokenService: mocks.tokenService,
		Config:       testPasswordConfig(),
		Logger:       testLogger(),
	})

	return service, mocks
}

func TestAuthService_Register_DefaultsToNormalUser(t *testing.T) {
	service, mocks := newAuthService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()

	mocks.hasher.EXPECT().Hash("Sup3r$ecret").Return("hashed", nil)

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(nil, repository.ErrAccountNotFound)
	mocks.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		RunAndReturn(func(_ context.Context, account *entity.Account) error {
			account.ID = accountID
			return nil
		})

	mocks.tokenService.EXPECT().
		GenerateAccessToken(accountID, entity.RoleNormalUser).
		Return("signed-token", nil)

	output, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed-token", output.AccessToken)
	assert.Equal(t, accountID, output.Account.ID)
	assert.Equal(t, entity.RoleNormalUser, output.Account.Role)
	assert.Equal(t, "alice@example.com", output.Account.Email)
}

func TestAuthService_Register_StoreOwner(t *testing.T) {
	service, mocks := newAuthService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()

	mocks.hasher.EXPECT().Hash("Sup3r$ecret").Return("hashed", nil)

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().
		FindByEmail(ctx, "owner@example.com").
		Return(nil, repository.ErrAccountNotFound)
	mocks.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		RunAndReturn(func(_ context.Context, account *entity.Account) error {
			account.ID = accountID
			return nil
		})

	mocks.tokenService.EXPECT().
		GenerateAccessToken(accountID, entity.RoleStoreOwner).
		Return("signed-token", nil)

	output, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Bob Owner",
		Email:    "owner@example.com",
		Password: "Sup3r$ecret",
		Role:     "STORE_OWNER",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStoreOwner, output.Account.Role)
}

func TestAuthService_Register_RejectsSystemAdmin(t *testing.T) {
	service, _ := newAuthService(t)

	ctx := context.Background()

	output, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Sneaky User",
		Email:    "sneaky@example.com",
		Password: "Sup3r$ecret",
		Role:     "SYSTEM_ADMIN",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	service, mocks := newAuthService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()

	mocks.hasher.EXPECT().Hash("Sup3r$ecret").Return("hashed", nil)

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().
		FindByEmail(ctx, "taken@example.com").
		Return(&entity.Account{ID: uuid.New(), Email: "taken@example.com"}, nil)

	output, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Alice Smith",
		Email:    "taken@example.com",
		Password: "Sup3r$ecret",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthService_Register_PasswordPolicy(t *testing.T) {
	service, _ := newAuthService(t)

	ctx := context.Background()

	cases := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "Ab$1"},
		{name: "too long", password: "Abcdefgh$1234567890"},
		{name: "missing uppercase", password: "sup3r$ecret"},
		{name: "missing special", password: "Sup3rSecret1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := service.Register(ctx, &usecase.RegisterInput{
				Name:     "Alice Smith",
				Email:    "alice@example.com",
				Password: tc.password,
			})
			require.Error(t, err)
			assert.Nil(t, output)
			assert.ErrorIs(t, err, domainerrors.ErrPasswordPolicy)
		})
	}
}

func TestAuthService_Register_NameTooShort(t *testing.T) {
	service, _ := newAuthService(t)

	ctx := context.Background()

	output, err := service.Register(ctx, &usecase.RegisterInput{
		Name:     "Al",
		Email:    "al@example.com",
		Password: "Sup3r$ecret",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Login_Success(t *testing.T) {
	service, mocks := newAuthService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Name:         "Alice Smith",
		Role:         entity.RoleNormalUser,
		PasswordHash: "hashed",
	}

	mocks.accountRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(account, nil)
	mocks.hasher.EXPECT().Check("Sup3r$ecret", "hashed").Return(true)
	mocks.tokenService.EXPECT().
		GenerateAccessToken(account.ID, entity.RoleNormalUser).
		Return("signed-token", nil)

	output, err := service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.AccessToken)
	assert.Equal(t, account.ID, output.Account.ID)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	service, mocks := newAuthService(t)

	ctx := context.Background()

	mocks.accountRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrAccountNotFound)

	output, err := service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "Sup3r$ecret",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, mocks := newAuthService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "hashed",
	}

	mocks.accountRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(account, nil)
	mocks.hasher.EXPECT().Check("WrongPass$1", "hashed").Return(false)

	output, err := service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "WrongPass$1",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_UpdatePassword_Success(t *testing.T) {
	service, mocks := newAuthService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()
	account := &entity.Account{ID: accountID, Email: "alice@example.com", PasswordHash: "old-hash"}

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().FindByID(ctx, accountID).Return(account, nil)
	mocks.hasher.EXPECT().Check("Old$ecret1", "old-hash").Return(true)
	mocks.hasher.EXPECT().Hash("New$ecret1").Return("new-hash", nil)
	mocks.accountRepo.EXPECT().Update(ctx, account).Return(nil)

	err := service.UpdatePassword(ctx, accountID, &usecase.UpdatePasswordInput{
		CurrentPassword: "Old$ecret1",
		NewPassword:     "New$ecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-hash", account.PasswordHash)
}

func TestAuthService_UpdatePassword_WrongCurrent(t *testing.T) {
	service, mocks := newAuthService(t)
	factory := mockRepo.NewMockRepositoryFactory(t)

	ctx := context.Background()
	accountID := uuid.New()
	account := &entity.Account{ID: accountID, PasswordHash: "old-hash"}

	factory.EXPECT().AccountRepo().Return(mocks.accountRepo)
	runTx(ctx, mocks.tx, factory)

	mocks.accountRepo.EXPECT().FindByID(ctx, accountID).Return(account, nil)
	mocks.hasher.EXPECT().Check("WrongPass$1", "old-hash").Return(false)

	err := service.UpdatePassword(ctx, accountID, &usecase.UpdatePasswordInput{
		CurrentPassword: "WrongPass$1",
		NewPassword:     "New$ecret1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)
}

func TestAuthService_UpdatePassword_PolicyRejectsNewPassword(t *testing.T) {
	service, _ := newAuthService(t)

	ctx := context.Background()

	err := service.UpdatePassword(ctx, uuid.New(), &usecase.UpdatePasswordInput{
		CurrentPassword: "Old$ecret1",
		NewPassword:     "weak",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordPolicy)
}
