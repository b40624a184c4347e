package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lostfound/internal/models"
	"lostfound/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds token secrets and lifetimes, loaded from config in main.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// AuthService handles registration, login, and token lifecycle.
type AuthService struct {
	users repository.Users
	cfg   AuthConfig
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &AuthService{users: users, cfg: cfg}
}

var _ Authorization = (*AuthService)(nil)

// Claims defines JWT claims for both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// Register creates a new account. Email and username must be unused; the
// username is lowercased before the uniqueness check and storage.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.ToLower(strings.TrimSpace(in.Username))
	name := strings.TrimSpace(in.Name)

	if email == "" || in.Password == "" || username == "" || name == "" {
		return models.User{}, invalidInput("email, password, username, and name are required")
	}

	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return models.User{}, err
	} else if existing != nil {
		return models.User{}, fmt.Errorf("email %w", ErrConflict)
	}
	if existing, err := s.users.GetByUsername(ctx, username); err != nil {
		return models.User{}, err
	} else if existing != nil {
		return models.User{}, fmt.Errorf("username %w", ErrConflict)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	u := models.User{
		Email:        email,
		Username:     username,
		Name:         name,
		Number:       strings.TrimSpace(in.Number),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	u.ID = id
	u.PasswordHash = ""
	return u, nil
}

// Login verifies credentials and issues a fresh token pair. The refresh token
// is stored on the user row, overwriting any previous session's token.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, TokenPair, error) {
	if email == "" || password == "" {
		return models.User{}, TokenPair{}, invalidInput("email and password are required")
	}

	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	if u == nil {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, u.ID)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	out := *u
	out.PasswordHash = ""
	out.RefreshToken = ""
	return out, pair, nil
}

// ParseAccessToken validates an access JWT and returns the user ID.
func (s *AuthService) ParseAccessToken(accessToken string) (int, error) {
	return parseToken(accessToken, s.cfg.AccessSecret)
}

// Refresh rotates the token pair. The presented refresh token must both parse
// and match the value stored on the user row; a valid-but-superseded token is
// rejected, which is what makes login a single-session operation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	userID, err := parseToken(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		return TokenPair{}, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, err
	}
	if u == nil || u.RefreshToken == "" || u.RefreshToken != refreshToken {
		return TokenPair{}, fmt.Errorf("%w: refresh token revoked", ErrUnauthorized)
	}
	return s.issuePair(ctx, userID)
}

// Logout clears the stored refresh token. Clearing an already-empty token is
// a no-op, so calling logout twice succeeds both times.
func (s *AuthService) Logout(ctx context.Context, userID int) error {
	return s.users.SetRefreshToken(ctx, userID, "")
}

func (s *AuthService) issuePair(ctx context.Context, userID int) (TokenPair, error) {
	access, err := issueToken(userID, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := issueToken(userID, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.users.SetRefreshToken(ctx, userID, refresh); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func issueToken(userID int, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(secret))
}

// helper: parse a JWT with the given secret and return the user ID
func parseToken(tokenString, secret string) (int, error) {
	if tokenString == "" {
		return 0, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	return claims.UserID, nil
}
