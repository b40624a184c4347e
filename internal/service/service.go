package service

import (
	"context"

	"lostfound/internal/logger"
	"lostfound/internal/models"
	"lostfound/internal/repository"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string
	Password string
	Username string
	Name     string
	Number   string
}

// TokenPair is an access/refresh token couple issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CreateReportInput carries the report creation fields. Image is optional.
type CreateReportInput struct {
	Title    string
	Content  string
	Location string
	Status   string
	Image    *ImageUpload
}

// ImageUpload is a raw image payload received from a client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Asset references an uploaded object: Key is the deletion key, URL the
// public address derived from it.
type Asset struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, TokenPair, error)
	ParseAccessToken(token string) (int, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, userID int) error
}

// Accounts exposes profile operations on the authenticated user.
type Accounts interface {
	Current(ctx context.Context, userID int) (models.User, error)
	UpdateAccount(ctx context.Context, userID int, name, email, number string) (models.User, error)
	ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error
}

// Reports exposes the ownership-guarded report lifecycle.
type Reports interface {
	Create(ctx context.Context, ownerID int, in CreateReportInput) (models.Report, error)
	ListByOwner(ctx context.Context, userID int) ([]models.Report, error)
	ListAll(ctx context.Context) ([]models.ReportWithOwner, error)
	Update(ctx context.Context, callerID, reportID int, content, status *string) (models.Report, error)
	Delete(ctx context.Context, callerID, reportID int) error
	AttachImage(ctx context.Context, callerID, reportID int, up ImageUpload) (models.Report, error)
}

// Media stores and removes report image attachments.
type Media interface {
	Store(ctx context.Context, ownerID int, up ImageUpload) (Asset, error)
	Remove(ctx context.Context, key string) error
}

// ObjectStore is the narrow slice of the storage client the media service
// needs; satisfied by *storage.S3Store.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, key string) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Accounts
	Reports
	Media
}

// NewService wires the repository layer and object store into concrete services.
func NewService(repos *repository.Repository, store ObjectStore, authCfg AuthConfig, log *logger.Logger) *Service {
	media := NewMediaService(store)
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Accounts:      NewAccountService(repos.Users),
		Reports:       NewReportService(repos.Reports, repos.Users, media, log),
		Media:         media,
	}
}
