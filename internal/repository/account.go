package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/userbase/internal/model"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

// AccountRepository owns the accounts collection. Every lookup is an exact
// match on email and finds return the first match.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Exists(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ByEmail(ctx context.Context, email string) (*model.Account, error)
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
	UpdatePicture(ctx context.Context, email, pictureURL string) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	List(ctx context.Context) ([]model.AccountSummary, error)
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `INSERT INTO accounts (id, email, username, password_digest, created_at, last_login_at, auth_method, external_id, picture_url, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Email, account.Username, account.PasswordDigest, account.CreatedAt,
		account.LastLoginAt, account.AuthMethod, account.ExternalID, account.PictureURL, account.EmailVerified,
	)
	if err != nil {
		return uniqueViolation(err)
	}

	return nil
}

func (r *accountRepository) Exists(ctx context.Context, email string) (bool, error) {
	count, err := r.CountByEmail(ctx, email)
	return count > 0, err
}

func (r *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM accounts WHERE username = $1`, username)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepository) ByEmail(ctx context.Context, email string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE email = $1 LIMIT 1`

	err := r.db.GetContext(ctx, account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (r *accountRepository) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE accounts SET last_login_at = $1 WHERE email = $2`, at, email)
	if err != nil {
		return err
	}
	return expectRows(result, ErrAccountNotFound)
}

func (r *accountRepository) UpdatePicture(ctx context.Context, email, pictureURL string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE accounts SET picture_url = $1 WHERE email = $2`, pictureURL, email)
	if err != nil {
		return err
	}
	return expectRows(result, ErrAccountNotFound)
}

func (r *accountRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE email = $1`, email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *accountRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM accounts WHERE email = $1`, email)
	return count, err
}

func (r *accountRepository) List(ctx context.Context) ([]model.AccountSummary, error) {
	summaries := []model.AccountSummary{}
	query := `SELECT email, username, created_at, last_login_at FROM accounts ORDER BY created_at`

	err := r.db.SelectContext(ctx, &summaries, query)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// uniqueViolation maps unique constraint failures (SQLite and PostgreSQL
// wording) onto the duplicate errors.
func uniqueViolation(err error) error {
	errStr := err.Error()
	if !strings.Contains(errStr, "UNIQUE constraint failed") && !strings.Contains(errStr, "duplicate key value") {
		return err
	}
	if strings.Contains(errStr, "username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

func expectRows(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
