package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/userbase/internal/model"
	"github.com/templui/userbase/internal/repository"
)

type fixedPictures struct {
	url      string
	fallback bool
	calls    int
}

func (p *fixedPictures) ProfilePicture(context.Context) (string, bool) {
	p.calls++
	return p.url, p.fallback
}

// failingAccounts wraps an AccountRepository and fails selected calls.
type failingAccounts struct {
	repository.AccountRepository
	createErr    error
	deleteErr    error
	lastLoginErr error
	existsErr    error

	deleteCalls   int
	existsCalls   int
	usernameCalls int
}

func (f *failingAccounts) Create(ctx context.Context, account *model.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.AccountRepository.Create(ctx, account)
}

func (f *failingAccounts) Exists(ctx context.Context, email string) (bool, error) {
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.AccountRepository.Exists(ctx, email)
}

func (f *failingAccounts) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	f.usernameCalls++
	return f.AccountRepository.ExistsByUsername(ctx, username)
}

func (f *failingAccounts) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	f.deleteCalls++
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.AccountRepository.DeleteByEmail(ctx, email)
}

func (f *failingAccounts) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	if f.lastLoginErr != nil {
		return f.lastLoginErr
	}
	return f.AccountRepository.UpdateLastLogin(ctx, email, at)
}

type failingProfiles struct {
	repository.ProfileRepository
	createErr  error
	byEmailErr error
}

func (f *failingProfiles) Create(ctx context.Context, profile *model.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.ProfileRepository.Create(ctx, profile)
}

func (f *failingProfiles) ByEmail(ctx context.Context, email string) (*model.Profile, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.ProfileRepository.ByEmail(ctx, email)
}

type authFixture struct {
	store    *repository.MemoryStore
	accounts *failingAccounts
	profiles *failingProfiles
	pictures *fixedPictures
	service  *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := repository.NewMemoryStore()
	f := &authFixture{
		store:    store,
		accounts: &failingAccounts{AccountRepository: store.Accounts()},
		profiles: &failingProfiles{ProfileRepository: store.Profiles()},
		pictures: &fixedPictures{url: "https://picsum.photos/id/7/800/600"},
	}
	f.service = NewAuthService(f.accounts, f.profiles, SHA256Hasher{}, f.pictures)
	return f
}

func (f *authFixture) counts(t *testing.T, email string) (int64, int64) {
	t.Helper()
	ctx := context.Background()
	accounts, err := f.store.Accounts().CountByEmail(ctx, email)
	require.NoError(t, err)
	profiles, err := f.store.Profiles().CountByEmail(ctx, email)
	require.NoError(t, err)
	return accounts, profiles
}

func TestSignup_Success(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.service.Signup(context.Background(), "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	assert.Equal(t, SignupSucceeded, result.Outcome)
	assert.Equal(t, "a@x.com", result.Account.Email)
	assert.Equal(t, "alice", result.Account.Username)
	assert.Equal(t, model.AuthMethodLocal, result.Account.AuthMethod)
	assert.False(t, result.Account.EmailVerified)
	assert.Nil(t, result.Account.LastLoginAt)
	assert.Nil(t, result.Account.ExternalID)
	assert.NotEqual(t, "secret1", result.Account.PasswordDigest)
	assert.Equal(t, "https://picsum.photos/id/7/800/600", result.Account.Picture())

	profile, err := f.store.Profiles().ByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, result.Account.PictureURL, profile.PictureURL)
	assert.Nil(t, profile.Bio)
	assert.Nil(t, profile.Location)
	assert.Nil(t, profile.PhoneNumber)
}

func TestSignup_FallbackPictureStillSucceeds(t *testing.T) {
	f := newAuthFixture(t)
	f.pictures.url = "https://picsum.photos/seed/abc/400/400"
	f.pictures.fallback = true

	result, err := f.service.Signup(context.Background(), "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	assert.True(t, result.FallbackPicture)
	assert.Equal(t, "https://picsum.photos/seed/abc/400/400", result.Account.Picture())
}

func TestSignup_ValidationWritesNothing(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		username string
		password string
		wantMsg  string
	}{
		{"empty email", "", "alice", "secret1", "required"},
		{"empty username", "a@x.com", "", "secret1", "required"},
		{"empty password", "a@x.com", "alice", "", "required"},
		{"short password", "a@x.com", "alice", "abc", "at least 6 characters"},
		{"five characters", "a@x.com", "alice", "12345", "at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)

			result, err := f.service.Signup(context.Background(), tt.email, tt.username, tt.password)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, SignupRejected, result.Outcome)
			assert.Zero(t, f.accounts.existsCalls, "no store access on invalid input")
			assert.Zero(t, f.pictures.calls)

			accounts, profiles := f.counts(t, tt.email)
			assert.Zero(t, accounts)
			assert.Zero(t, profiles)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	result, err := f.service.Signup(ctx, "a@x.com", "bob", "secret2")

	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Contains(t, err.Error(), "exists")
	assert.Equal(t, SignupRejected, result.Outcome)
	assert.Equal(t, 1, f.accounts.usernameCalls, "username check skipped after email conflict")

	list, err := f.store.Accounts().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	profiles, err := f.store.Profiles().List(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	result, err := f.service.Signup(ctx, "b@x.com", "alice", "secret2")

	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.Equal(t, SignupRejected, result.Outcome)
	accounts, profiles := f.counts(t, "b@x.com")
	assert.Zero(t, accounts)
	assert.Zero(t, profiles)
}

func TestSignup_UniqueIndexRaceReportsConflict(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.createErr = repository.ErrDuplicateEmail

	result, err := f.service.Signup(context.Background(), "a@x.com", "alice", "secret1")

	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Equal(t, SignupRejected, result.Outcome)
}

func TestSignup_AccountInsertFails(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.createErr = errors.New("connection reset")

	result, err := f.service.Signup(context.Background(), "a@x.com", "alice", "secret1")

	assert.ErrorIs(t, err, ErrStore)
	assert.Equal(t, SignupRejected, result.Outcome)
	_, profiles := f.counts(t, "a@x.com")
	assert.Zero(t, profiles, "no profile after failed account insert")
	assert.Zero(t, f.accounts.deleteCalls)
}

func TestSignup_ProfileInsertFailsRollsBack(t *testing.T) {
	f := newAuthFixture(t)
	f.profiles.createErr = errors.New("write concern error")

	result, err := f.service.Signup(context.Background(), "a@x.com", "alice", "secret1")

	assert.ErrorIs(t, err, ErrStore)
	assert.Equal(t, SignupRolledBack, result.Outcome)
	assert.Nil(t, result.Account)
	assert.Equal(t, 1, f.accounts.deleteCalls)

	_, err = f.store.Accounts().ByEmail(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestSignup_RollbackFailureIsNotRetried(t *testing.T) {
	f := newAuthFixture(t)
	f.profiles.createErr = errors.New("write concern error")
	f.accounts.deleteErr = errors.New("primary stepped down")

	result, err := f.service.Signup(context.Background(), "a@x.com", "alice", "secret1")

	assert.ErrorIs(t, err, ErrStore)
	assert.Equal(t, SignupRollbackFailed, result.Outcome)
	assert.Equal(t, 1, f.accounts.deleteCalls, "rollback runs exactly once")

	accounts, profiles := f.counts(t, "a@x.com")
	assert.Equal(t, int64(1), accounts, "orphaned account stays in place")
	assert.Zero(t, profiles)
}

func TestSignupThenLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	before := time.Now()
	result, err := f.service.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", result.Account.Email)
	assert.Equal(t, "alice", result.Account.Username)
	assert.False(t, result.LoginAt.Before(before))
	require.NotNil(t, result.Profile)
	assert.Equal(t, "alice", result.Profile.Username)

	stored, err := f.store.Accounts().ByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.True(t, stored.LastLoginAt.Equal(result.LoginAt))
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	_, wrongPassword := f.service.Login(ctx, "a@x.com", "wrong-password")
	_, unknownEmail := f.service.Login(ctx, "nobody@x.com", "secret1")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_Validation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), "", "secret1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.Login(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_LastLoginFailureDoesNotFailLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, "a@x.com", "alice", "secret1")
	require.NoError(t, err)
	f.accounts.lastLoginErr = errors.New("timeout")

	result, err := f.service.Login(ctx, "a@x.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "alice", result.Account.Username)
}

func TestLogin_MissingProfileGivesEmptyProfile(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	// Profiles can be deleted on their own; accounts keep working.
	_, err = f.store.Profiles().DeleteByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	result, err := f.service.Login(ctx, "a@x.com", "secret1")

	require.NoError(t, err)
	assert.Nil(t, result.Profile)
}

func TestLogin_ProfileLookupErrorDoesNotFailLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, "a@x.com", "alice", "secret1")
	require.NoError(t, err)
	f.profiles.byEmailErr = errors.New("socket closed")

	result, err := f.service.Login(ctx, "a@x.com", "secret1")

	require.NoError(t, err)
	assert.Nil(t, result.Profile)
}

func TestLogin_WithBcryptHasher(t *testing.T) {
	f := newAuthFixture(t)
	f.service.hasher = BcryptHasher{Cost: 4}
	ctx := context.Background()

	_, err := f.service.Signup(ctx, "a@x.com", "alice", "secret1")
	require.NoError(t, err)

	_, err = f.service.Login(ctx, "a@x.com", "secret1")
	assert.NoError(t, err)
	_, err = f.service.Login(ctx, "a@x.com", "secret2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupOutcome_String(t *testing.T) {
	assert.Equal(t, "rejected", SignupRejected.String())
	assert.Equal(t, "succeeded", SignupSucceeded.String())
	assert.Equal(t, "rolled_back", SignupRolledBack.String())
	assert.Equal(t, "rollback_failed", SignupRollbackFailed.String())
	assert.Equal(t, "SignupOutcome(9)", SignupOutcome(9).String())
}

func TestSignup_ExistenceCheckFails(t *testing.T) {
	f := newAuthFixture(t)
	f.accounts.existsErr = errors.New("server selection timeout")

	result, err := f.service.Signup(context.Background(), "a@x.com", "alice", "secret1")

	assert.ErrorIs(t, err, ErrStore)
	assert.Equal(t, SignupRejected, result.Outcome)
	assert.Zero(t, f.pictures.calls)
}
