package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"lostfound/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name           string
		user           models.User
		mockExpect     func(sqlmock.Sqlmock)
		wantID         int
		wantErr        bool
		errContainsStr string
	}{
		{
			name: "success",
			user: models.User{Email: "alice@x.com", Username: "alice", Name: "Alice", Number: "111", PasswordHash: "h123"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice@x.com", "alice", "Alice", "111", "h123", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID: 42,
		},
		{
			name: "exec error",
			user: models.User{Email: "bob@x.com", Username: "bob", PasswordHash: "h456"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("bob@x.com", "bob", "", "", "h456", sqlmock.AnyArg()).
					WillReturnError(errors.New("db exec failed"))
			},
			wantErr:        true,
			errContainsStr: "insert user",
		},
		{
			name: "last insert id error",
			user: models.User{Email: "carol@x.com", Username: "carol", PasswordHash: "h789"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("carol@x.com", "carol", "", "", "h789", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
			},
			wantErr:        true,
			errContainsStr: "get last insert id",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), tt.user)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContainsStr != "" && !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if id != 0 {
					t.Fatalf("expected id=0 on error, got %d", id)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("unexpected id: want %d, got %d", tt.wantID, id)
			}
		})
	}
}

func userRows(u models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "username", "name", "number", "password_hash", "refresh_token", "created_at",
	}).AddRow(u.ID, u.Email, u.Username, u.Name, u.Number, u.PasswordHash, u.RefreshToken, u.CreatedAt)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	stored := models.User{
		ID: 7, Email: "alice@x.com", Username: "alice", Name: "Alice",
		Number: "111", PasswordHash: "h123", RefreshToken: "rt", CreatedAt: createdAt,
	}

	tests := []struct {
		name       string
		email      string
		mockExpect func(sqlmock.Sqlmock)
		wantUser   *models.User
		wantErr    bool
	}{
		{
			name:  "found",
			email: "alice@x.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("alice@x.com").
					WillReturnRows(userRows(stored))
			},
			wantUser: &stored,
		},
		{
			name:  "not found (ErrNoRows)",
			email: "missing@x.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("missing@x.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantUser: nil,
		},
		{
			name:  "query error",
			email: "bob@x.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("bob@x.com").
					WillReturnError(errors.New("db query failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if u != nil {
					t.Fatalf("expected nil user, got %+v", u)
				}
				return
			}
			if u == nil {
				t.Fatalf("expected user, got nil")
			}
			if u.ID != tt.wantUser.ID || u.Email != tt.wantUser.Email || u.RefreshToken != tt.wantUser.RefreshToken {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, u)
			}
		})
	}
}

func TestUserRepository_SetRefreshToken(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(updateRefreshTokenSQL)).
		WithArgs("new-token", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.SetRefreshToken(context.Background(), 7, "new-token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// clearing an already-clear token still succeeds (logout idempotence)
	mock.ExpectExec(regexp.QuoteMeta(updateRefreshTokenSQL)).
		WithArgs("", 7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.SetRefreshToken(context.Background(), 7, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
