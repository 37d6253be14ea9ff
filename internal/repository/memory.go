package repository

import (
	"context"
	"sync"
	"time"

	"github.com/templui/userbase/internal/model"
)

// MemoryStore keeps both collections in process memory. It enforces the same
// unique keys as the database backends and is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts []model.Account
	profiles []model.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Accounts() AccountRepository {
	return &memoryAccounts{m}
}

func (m *MemoryStore) Profiles() ProfileRepository {
	return &memoryProfiles{m}
}

func (m *MemoryStore) accountIndex(email string) int {
	for i := range m.accounts {
		if m.accounts[i].Email == email {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) profileIndex(email string) int {
	for i := range m.profiles {
		if m.profiles[i].Email == email {
			return i
		}
	}
	return -1
}

type memoryAccounts struct {
	*MemoryStore
}

func (r *memoryAccounts) Create(_ context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return ErrDuplicateEmail
		}
		if existing.Username == account.Username {
			return ErrDuplicateUsername
		}
	}
	r.accounts = append(r.accounts, *account)
	return nil
}

func (r *memoryAccounts) Exists(ctx context.Context, email string) (bool, error) {
	count, err := r.CountByEmail(ctx, email)
	return count > 0, err
}

func (r *memoryAccounts) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.accounts {
		if existing.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryAccounts) ByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.accountIndex(email)
	if i < 0 {
		return nil, ErrAccountNotFound
	}
	account := r.accounts[i]
	return &account, nil
}

func (r *memoryAccounts) UpdateLastLogin(_ context.Context, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.accountIndex(email)
	if i < 0 {
		return ErrAccountNotFound
	}
	r.accounts[i].LastLoginAt = &at
	return nil
}

func (r *memoryAccounts) UpdatePicture(_ context.Context, email, pictureURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.accountIndex(email)
	if i < 0 {
		return ErrAccountNotFound
	}
	r.accounts[i].PictureURL = &pictureURL
	return nil
}

func (r *memoryAccounts) DeleteByEmail(_ context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.accountIndex(email)
	if i < 0 {
		return 0, nil
	}
	r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
	return 1, nil
}

func (r *memoryAccounts) CountByEmail(_ context.Context, email string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.accountIndex(email) < 0 {
		return 0, nil
	}
	return 1, nil
}

func (r *memoryAccounts) List(_ context.Context) ([]model.AccountSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]model.AccountSummary, 0, len(r.accounts))
	for i := range r.accounts {
		summaries = append(summaries, r.accounts[i].Summary())
	}
	return summaries, nil
}

type memoryProfiles struct {
	*MemoryStore
}

func (r *memoryProfiles) Create(_ context.Context, profile *model.Profile) error {
	prepareProfile(profile)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.profileIndex(profile.Email) >= 0 {
		return ErrDuplicateEmail
	}
	r.profiles = append(r.profiles, *profile)
	return nil
}

func (r *memoryProfiles) Exists(ctx context.Context, email string) (bool, error) {
	count, err := r.CountByEmail(ctx, email)
	return count > 0, err
}

func (r *memoryProfiles) ByEmail(_ context.Context, email string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.profileIndex(email)
	if i < 0 {
		return nil, ErrProfileNotFound
	}
	profile := r.profiles[i]
	return &profile, nil
}

func (r *memoryProfiles) UpdateFields(_ context.Context, email string, update model.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.profileIndex(email)
	if i < 0 {
		return ErrProfileNotFound
	}
	update.Apply(&r.profiles[i])
	r.profiles[i].UpdatedAt = time.Now()
	return nil
}

func (r *memoryProfiles) DeleteByEmail(_ context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.profileIndex(email)
	if i < 0 {
		return 0, nil
	}
	r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
	return 1, nil
}

func (r *memoryProfiles) CountByEmail(_ context.Context, email string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.profileIndex(email) < 0 {
		return 0, nil
	}
	return 1, nil
}

func (r *memoryProfiles) List(_ context.Context) ([]model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.Profile{}, r.profiles...), nil
}
