package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lostfound/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (email, username, name, number, password_hash, refresh_token, created_at)
		VALUES (?, ?, ?, ?, ?, '', ?)`

	selectUserByIDSQL       = `SELECT id, email, username, name, number, password_hash, refresh_token, created_at FROM users WHERE id = ?`
	selectUserByEmailSQL    = `SELECT id, email, username, name, number, password_hash, refresh_token, created_at FROM users WHERE email = ?`
	selectUserByUsernameSQL = `SELECT id, email, username, name, number, password_hash, refresh_token, created_at FROM users WHERE username = ?`

	updateRefreshTokenSQL = `UPDATE users SET refresh_token = ? WHERE id = ?`
	updateProfileSQL      = `UPDATE users SET name = ?, email = ?, number = ? WHERE id = ?`
	updatePasswordSQL     = `UPDATE users SET password_hash = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Email, u.Username, u.Name, u.Number, u.PasswordHash, createdAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Email, err)
	}
	return int(lastID), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, selectUserByUsernameSQL, username)
}

// getOne runs a single-row user query. Returns (nil, nil) if not found.
func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.Name, &u.Number,
		&u.PasswordHash, &u.RefreshToken, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user (%v): %w", arg, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// SetRefreshToken overwrites the stored refresh token; pass "" to clear it.
// Updating a missing user is not an error here, which keeps logout idempotent.
func (r *UserRepository) SetRefreshToken(ctx context.Context, id int, token string) error {
	if _, err := r.db.ExecContext(ctx, updateRefreshTokenSQL, token, id); err != nil {
		return fmt.Errorf("set refresh token for user %d: %w", id, err)
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int, name, email, number string) error {
	if _, err := r.db.ExecContext(ctx, updateProfileSQL, name, email, number, id); err != nil {
		return fmt.Errorf("update profile for user %d: %w", id, err)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	if _, err := r.db.ExecContext(ctx, updatePasswordSQL, passwordHash, id); err != nil {
		return fmt.Errorf("update password for user %d: %w", id, err)
	}
	return nil
}
