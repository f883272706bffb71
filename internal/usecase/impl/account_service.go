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

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	policy      passwordPolicy
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	var strength *config.PasswordStrengthConfig
	if params.Config != nil {
		strength = params.Config.PasswordStrength
	}

	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		policy:      newPasswordPolicy(strength),
		logger:      params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns one page of accounts matched by name or email.
func (srv *accountService) List(ctx context.Context, input *usecase.ListAccountsInput) (*usecase.ListAccountsOutput, error) {
	accounts, total, err := srv.accountRepo.List(ctx, repository.ListOptions{
		Page:   input.Page,
		Limit:  input.Limit,
		Search: input.Search,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	publics := make([]*usecase.AccountPublic, 0, len(accounts))
	for _, account := range accounts {
		publics = append(publics, usecase.NewAccountPublic(account))
	}

	return &usecase.ListAccountsOutput{
		Accounts: publics,
		Total:    total,
	}, nil
}

// Get returns the credential-free view of one account.
func (srv *accountService) Get(ctx context.Context, id uuid.UUID) (*usecase.AccountPublic, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.WithStack(domainerrors.ErrAccountNotFound)
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return usecase.NewAccountPublic(account), nil
}

// Create registers an account on behalf of an admin. Unlike self-service
// registration it accepts any of the three roles, but it enforces the same
// field and password rules.
func (srv *accountService) Create(ctx context.Context, input *usecase.CreateAccountInput) (*usecase.AccountPublic, error) {
	srv.log(ctx).Info("Creating account", slog.String("email", input.Email))

	if !entity.ValidAccountName(input.Name) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name must be 4-60 characters")
	}

	role := entity.RoleNormalUser
	if input.Role != "" {
		parsed, ok := entity.RoleFromString(input.Role)
		if !ok {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
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

	return usecase.NewAccountPublic(account), nil
}

// Update applies the admin-side partial update. An email change re-runs the
// unique-email precondition against other accounts.
func (srv *accountService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateAccountInput) (*usecase.AccountPublic, error) {
	srv.log(ctx).Info("Updating account", slog.String("accountID", id.String()))

	return srv.applyAccountUpdate(ctx, id, input.Name, input.Email)
}

// UpdateProfile is the self-service profile update. Its input cannot carry
// password or role, so any attempt to change them through this path is
// discarded before it reaches the domain.
func (srv *accountService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.AccountPublic, error) {
	srv.log(ctx).Info("Updating profile", slog.String("accountID", accountID.String()))

	return srv.applyAccountUpdate(ctx, accountID, input.Name, input.Email)
}

func (srv *accountService) applyAccountUpdate(ctx context.Context, id uuid.UUID, name, email *string) (*usecase.AccountPublic, error) {
	if name != nil && !entity.ValidAccountName(*name) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name must be 4-60 characters")
	}

	var updated *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.WithStack(domainerrors.ErrAccountNotFound)
			}

			return errors.Wrap(err, "failed to find account")
		}

		if email != nil && *email != account.Email {
			other, err := accountRepo.FindByEmail(ctx, *email)
			if err == nil && other.ID != account.ID {
				return errors.WithStack(domainerrors.ErrEmailTaken)
			}
			if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(err, "failed to check email uniqueness")
			}
			account.Email = *email
		}
		if name != nil {
			account.Name = *name
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update account")
		}
		updated = account

		return nil
	})
	if err != nil {
		return nil, err
	}

	return usecase.NewAccountPublic(updated), nil
}

// Delete removes an account permanently; owned stores and ratings cascade in
// the persistence layer.
func (srv *accountService) Delete(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting account", slog.String("accountID", id.String()))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if _, err := accountRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.WithStack(domainerrors.ErrAccountNotFound)
			}

			return errors.Wrap(err, "failed to find account")
		}

		if err := accountRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete account")
		}

		return nil
	})
}

// Stats returns the admin dashboard account counters.
func (srv *accountService) Stats(ctx context.Context) (*usecase.AccountStatsOutput, error) {
	byRole, err := srv.accountRepo.CountByRole(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count accounts by role")
	}

	var total int64
	for _, count := range byRole {
		total += count
	}

	return &usecase.AccountStatsOutput{
		Total:  total,
		ByRole: byRole,
	}, nil
}

// createUniqueAccount runs the unique-email precondition and the insert
// inside the caller's transaction. The unique column constraint backs the
// check, surfacing as an email-taken conflict.
func createUniqueAccount(ctx context.Context, accountRepo repository.AccountRepository, account *entity.Account) error {
	_, err := accountRepo.FindByEmail(ctx, account.Email)
	if err == nil {
		return errors.WithStack(domainerrors.ErrEmailTaken)
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return errors.Wrap(err, "failed to check email uniqueness")
	}

	if err := accountRepo.Create(ctx, account); err != nil {
		return errors.Wrap(err, "failed to create account")
	}

	return nil
}
