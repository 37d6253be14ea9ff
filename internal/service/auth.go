package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/userbase/internal/model"
	"github.com/templui/userbase/internal/repository"
	"github.com/templui/userbase/internal/validation"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStore              = errors.New("store operation failed")
)

// ValidationError carries a message that is safe to show to the caller.
// errors.Is(err, ErrValidation) reports true for it.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(err error) error {
	return &ValidationError{Err: err}
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// PictureProvider assigns a profile picture URL. It must always return a
// usable URL; the bool reports whether a placeholder was used.
type PictureProvider interface {
	ProfilePicture(ctx context.Context) (string, bool)
}

// SignupOutcome tells apart the ways a signup can end.
type SignupOutcome int

const (
	// SignupRejected means nothing was written.
	SignupRejected SignupOutcome = iota
	SignupSucceeded
	// SignupRolledBack means the profile insert failed and the account was removed.
	SignupRolledBack
	// SignupRollbackFailed means the profile insert failed and the account
	// could not be removed. The account is left without a profile.
	SignupRollbackFailed
)

func (o SignupOutcome) String() string {
	switch o {
	case SignupRejected:
		return "rejected"
	case SignupSucceeded:
		return "succeeded"
	case SignupRolledBack:
		return "rolled_back"
	case SignupRollbackFailed:
		return "rollback_failed"
	default:
		return fmt.Sprintf("SignupOutcome(%d)", int(o))
	}
}

type SignupResult struct {
	Outcome         SignupOutcome
	Account         *model.Account
	Profile         *model.Profile
	FallbackPicture bool
}

type LoginResult struct {
	Account *model.Account
	// Profile is nil when the account has no profile.
	Profile *model.Profile
	LoginAt time.Time
}

type AuthService struct {
	accountRepository repository.AccountRepository
	profileRepository repository.ProfileRepository
	hasher            PasswordHasher
	pictures          PictureProvider
	now               func() time.Time
}

func NewAuthService(
	accountRepository repository.AccountRepository,
	profileRepository repository.ProfileRepository,
	hasher PasswordHasher,
	pictures PictureProvider,
) *AuthService {
	return &AuthService{
		accountRepository: accountRepository,
		profileRepository: profileRepository,
		hasher:            hasher,
		pictures:          pictures,
		now:               time.Now,
	}
}

// Signup creates an account and its profile. The two writes are not atomic:
// when the profile insert fails the account is deleted again, and a failed
// delete is logged and left in place. The returned result is never nil.
//
// The existence checks and the inserts are separate calls, so two concurrent
// signups can both pass the checks. The unique indexes then reject the loser
// with the same conflict error.
func (s *AuthService) Signup(ctx context.Context, email, username, password string) (*SignupResult, error) {
	result := &SignupResult{Outcome: SignupRejected}

	if email == "" || username == "" || password == "" {
		return result, invalid(errors.New("email, username and password are required"))
	}
	for _, err := range []error{
		validation.ValidateEmail(email),
		validation.ValidateUsername(username),
		validation.ValidatePassword(password),
	} {
		if err != nil {
			return result, invalid(err)
		}
	}

	exists, err := s.accountRepository.Exists(ctx, email)
	if err != nil {
		return result, storeError("check email", err)
	}
	if exists {
		return result, ErrEmailExists
	}

	exists, err = s.accountRepository.ExistsByUsername(ctx, username)
	if err != nil {
		return result, storeError("check username", err)
	}
	if exists {
		return result, ErrUsernameExists
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return result, fmt.Errorf("failed to hash password: %w", err)
	}

	pictureURL, fallback := s.pictures.ProfilePicture(ctx)
	result.FallbackPicture = fallback

	now := s.now()
	account := &model.Account{
		ID:             uuid.New().String(),
		Email:          email,
		Username:       username,
		PasswordDigest: digest,
		CreatedAt:      now,
		AuthMethod:     model.AuthMethodLocal,
		PictureURL:     &pictureURL,
		EmailVerified:  false,
	}

	err = s.accountRepository.Create(ctx, account)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return result, ErrEmailExists
		case errors.Is(err, repository.ErrDuplicateUsername):
			return result, ErrUsernameExists
		}
		return result, storeError("create account", err)
	}

	profile := &model.Profile{
		ID:         uuid.New().String(),
		Email:      email,
		Username:   username,
		PictureURL: &pictureURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.profileRepository.Create(ctx, profile)
	if err != nil {
		result.Outcome = s.rollbackAccount(ctx, email, err)
		return result, storeError("create profile", err)
	}

	result.Outcome = SignupSucceeded
	result.Account = account
	result.Profile = profile

	slog.Info("account created", "email", email, "username", username, "fallback_picture", fallback)
	return result, nil
}

// rollbackAccount removes an account whose profile could not be created.
// It runs once; a failure is logged and not retried.
func (s *AuthService) rollbackAccount(ctx context.Context, email string, cause error) SignupOutcome {
	slog.Warn("profile creation failed, removing account", "email", email, "error", cause)

	// The request context may already be done; the compensation still runs.
	ctx = context.WithoutCancel(ctx)

	deleted, err := s.accountRepository.DeleteByEmail(ctx, email)
	if err != nil {
		slog.Error("account rollback failed, account left without profile", "email", email, "error", err)
		return SignupRollbackFailed
	}
	if deleted == 0 {
		slog.Warn("account rollback found nothing to delete", "email", email)
	}

	slog.Info("account rolled back", "email", email)
	return SignupRolledBack
}

// Login checks credentials and returns the account with its profile. An
// unknown email and a wrong password produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, invalid(errors.New("email and password are required"))
	}

	account, err := s.accountRepository.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, storeError("get account", err)
	}

	if !s.hasher.Verify(password, account.PasswordDigest) {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	loginAt := s.now()
	err = s.accountRepository.UpdateLastLogin(ctx, email, loginAt)
	if err != nil {
		// Don't fail login
		slog.Warn("failed to update last login", "email", email, "error", err)
	} else {
		account.LastLoginAt = &loginAt
	}

	profile, err := s.profileRepository.ByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			slog.Warn("failed to load profile on login", "email", email, "error", err)
		}
		profile = nil
	}

	slog.Info("user logged in", "email", email)
	return &LoginResult{
		Account: account,
		Profile: profile,
		LoginAt: loginAt,
	}, nil
}
