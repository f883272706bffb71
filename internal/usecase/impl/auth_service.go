package impl

import (
	"context"
	"log/slog"

	"rately/config"
	deliverycontext "rately/internal/delivery/context"
	"rately/internal/domain/entity"
	domainerrors "rately/internal/domain/errors"
	"rately/internal/domain/repository"
	"rately/internal/domain/service"
	"rately/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	policy       passwordPolicy
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	var strength *config.PasswordStrengthConfig
	if params.Config != nil {
		strength = params.Config.PasswordStrength
	}

	return &authService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		policy:       newPasswordPolicy(strength),
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account and signs the caller in. Self-service signup
// may pick NORMAL_USER or STORE_OWNER; SYSTEM_ADMIN accounts only come from
// the admin account API.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Registering account", slog.String("email", input.Email))

	if !entity.ValidAccountName(input.Name) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name must be 4-60 characters")
	}

	role := entity.RoleNormalUser
	if input.Role != "" {
		parsed, ok := entity.RoleFromString(input.Role)
		if !ok || parsed == entity.RoleSystemAdmin {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("role must be NORMAL_USER or STORE_OWNER")
		}
		role = parsed
	}

	if err := srv.policy.validate(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	account := &entity.Account{
		Email:        input.Email,
		Name:         input.Name,
		Role:         role,
		PasswordHash: hash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return createUniqueAccount(ctx, repoFactory.AccountRepo(), account)
	})
	if err != nil {
		return nil, err
	}

	return srv.issueToken(account)
}

// Login verifies credentials and issues an access token. A missing account
// and a wrong password report the same error.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Logging in", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	return srv.issueToken(account)
}

// UpdatePassword rotates a signed-in caller's password after verifying the
// current one.
func (srv *authService) UpdatePassword(ctx context.Context, accountID uuid.UUID, input *usecase.UpdatePasswordInput) error {
	srv.log(ctx).Info("Updating password", slog.String("accountID", accountID.String()))

	if err := srv.policy.validate(input.NewPassword); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.WithStack(domainerrors.ErrAccountNotFound)
			}

			return errors.Wrap(err, "failed to find account")
		}

		if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
			return errors.WithStack(domainerrors.ErrPasswordMismatch)
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
		}
		account.PasswordHash = hash

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		return nil
	})
}

func (srv *authService) issueToken(account *entity.Account) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.GenerateAccessToken(account.ID, account.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthOutput{
		AccessToken: token,
		Account:     usecase.NewAccountPublic(account),
	}, nil
}
