package service

import (
	"context"
	"errors"

	"github.com/templui/userbase/internal/model"
	"github.com/templui/userbase/internal/repository"
	"github.com/templui/userbase/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

func (s *ProfileService) ByEmail(ctx context.Context, email string) (*model.Profile, error) {
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, invalid(err)
	}

	profile, err := s.profileRepo.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, err
		}
		return nil, storeError("get profile", err)
	}
	return profile, nil
}

// Update overwrites the supplied fields and returns the stored profile.
func (s *ProfileService) Update(ctx context.Context, email string, update model.ProfileUpdate) (*model.Profile, error) {
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, invalid(err)
	}
	if update.IsEmpty() {
		return nil, invalid(errors.New("no profile fields to update"))
	}

	err = s.profileRepo.UpdateFields(ctx, email, update)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, err
		}
		return nil, storeError("update profile", err)
	}

	return s.ByEmail(ctx, email)
}

func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, storeError("list profiles", err)
	}
	return profiles, nil
}

// Delete removes the profile only. The account keeps working; login then
// returns an empty profile.
func (s *ProfileService) Delete(ctx context.Context, email string) (int64, error) {
	err := validation.ValidateEmail(email)
	if err != nil {
		return 0, invalid(err)
	}

	deleted, err := s.profileRepo.DeleteByEmail(ctx, email)
	if err != nil {
		return 0, storeError("delete profile", err)
	}
	if deleted == 0 {
		return 0, repository.ErrProfileNotFound
	}
	return deleted, nil
}

func (s *ProfileService) Exists(ctx context.Context, email string) (bool, error) {
	err := validation.ValidateEmail(email)
	if err != nil {
		return false, invalid(err)
	}

	exists, err := s.profileRepo.Exists(ctx, email)
	if err != nil {
		return false, storeError("check profile", err)
	}
	return exists, nil
}
