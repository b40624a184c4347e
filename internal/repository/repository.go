package repository

import (
	"context"
	"database/sql"
	"time"

	"lostfound/internal/models"
)

// Users persists accounts. Lookups return (nil, nil) when no row matches.
type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetRefreshToken(ctx context.Context, id int, token string) error
	UpdateProfile(ctx context.Context, id int, name, email, number string) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

// Reports persists lost-and-found entries. Every mutation of an existing row
// is ownership-guarded: the WHERE clause conjoins report id AND owner id, so
// a non-owner's attempt is indistinguishable from a missing row. The boolean
// result reports whether a row matched.
type Reports interface {
	Insert(ctx context.Context, r models.Report) (int, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Report, error)
	ListAllWithOwner(ctx context.Context) ([]models.ReportWithOwner, error)
	GetOwned(ctx context.Context, id, ownerID int) (*models.Report, error)
	UpdateOwned(ctx context.Context, id, ownerID int, content, status *string, updatedAt time.Time) (bool, error)
	SetImageOwned(ctx context.Context, id, ownerID int, imageKey, imageURL string, updatedAt time.Time) (bool, error)
	DeleteOwned(ctx context.Context, id, ownerID int) (bool, error)
}

type Repository struct {
	Users   Users
	Reports Reports
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:   NewUserRepository(db),
		Reports: NewReportRepository(db),
	}
}
