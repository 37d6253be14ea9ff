package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/userbase/internal/model"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Exists(ctx context.Context, email string) (bool, error)
	ByEmail(ctx context.Context, email string) (*model.Profile, error)
	UpdateFields(ctx context.Context, email string, update model.ProfileUpdate) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	List(ctx context.Context) ([]model.Profile, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// prepareProfile fills in the id and timestamps the caller left empty.
func prepareProfile(profile *model.Profile) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = profile.CreatedAt
	}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	prepareProfile(profile)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, username, picture_url, bio, location, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, profile.ID, profile.Email, profile.Username, profile.PictureURL, profile.Bio,
		profile.Location, profile.PhoneNumber, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return uniqueViolation(err)
	}

	return nil
}

func (r *profileRepository) Exists(ctx context.Context, email string) (bool, error) {
	count, err := r.CountByEmail(ctx, email)
	return count > 0, err
}

func (r *profileRepository) ByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM profiles WHERE email = $1 LIMIT 1`, email)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) UpdateFields(ctx context.Context, email string, update model.ProfileUpdate) error {
	var sets []string
	var args []any
	set := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	set("picture_url", update.PictureURL)
	set("bio", update.Bio)
	set("location", update.Location)
	set("phone_number", update.PhoneNumber)

	args = append(args, time.Now())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, email)
	query := fmt.Sprintf("UPDATE profiles SET %s WHERE email = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectRows(result, ErrProfileNotFound)
}

func (r *profileRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE email = $1`, email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *profileRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM profiles WHERE email = $1`, email)
	return count, err
}

func (r *profileRepository) List(ctx context.Context) ([]model.Profile, error) {
	profiles := []model.Profile{}
	err := r.db.SelectContext(ctx, &profiles, `SELECT * FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
