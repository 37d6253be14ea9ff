package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/templui/userbase/internal/model"
	"github.com/templui/userbase/internal/repository"
	"github.com/templui/userbase/internal/validation"
)

// UserService serves the account-level endpoints. Deleting an account here
// leaves its profile in place.
type UserService struct {
	accountRepository repository.AccountRepository
	profileRepository repository.ProfileRepository
}

func NewUserService(
	accountRepository repository.AccountRepository,
	profileRepository repository.ProfileRepository,
) *UserService {
	return &UserService{
		accountRepository: accountRepository,
		profileRepository: profileRepository,
	}
}

func (s *UserService) List(ctx context.Context) ([]model.AccountSummary, error) {
	summaries, err := s.accountRepository.List(ctx)
	if err != nil {
		return nil, storeError("list accounts", err)
	}
	return summaries, nil
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	err := validation.ValidateEmail(email)
	if err != nil {
		return false, invalid(err)
	}

	exists, err := s.accountRepository.Exists(ctx, email)
	if err != nil {
		return false, storeError("check email", err)
	}
	return exists, nil
}

// Delete removes the account only and returns how many documents matched.
func (s *UserService) Delete(ctx context.Context, email string) (int64, error) {
	err := validation.ValidateEmail(email)
	if err != nil {
		return 0, invalid(err)
	}

	deleted, err := s.accountRepository.DeleteByEmail(ctx, email)
	if err != nil {
		return 0, storeError("delete account", err)
	}
	if deleted == 0 {
		return 0, repository.ErrAccountNotFound
	}

	slog.Info("account deleted", "email", email, "deleted", deleted)
	return deleted, nil
}

// UpdatePicture sets the picture on the account and on its profile. A missing
// profile is logged and does not fail the update.
func (s *UserService) UpdatePicture(ctx context.Context, email, pictureURL, imageID string) error {
	err := validation.ValidateEmail(email)
	if err != nil {
		return invalid(err)
	}
	if pictureURL == "" {
		return invalid(errors.New("pictureUrl is required"))
	}

	err = s.accountRepository.UpdatePicture(ctx, email, pictureURL)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return err
		}
		return storeError("update account picture", err)
	}

	err = s.profileRepository.UpdateFields(ctx, email, model.ProfileUpdate{PictureURL: &pictureURL})
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return storeError("update profile picture", err)
		}
		slog.Warn("account has no profile, picture set on account only", "email", email)
	}

	slog.Info("profile picture updated", "email", email, "image_id", imageID)
	return nil
}
