package handlers

import (
	"context"

	"lostfound/internal/models"
	"lostfound/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.User
	registerErr  error
	loginUser    models.User
	loginPair    service.TokenPair
	loginErr     error
	parseID      int
	parseErr     error
	refreshPair  service.TokenPair
	refreshErr   error
	logoutErr    error

	lastRegister   service.RegisterInput
	lastLoginEmail string
	lastParseToken string
	logoutCalls    int
}

func (m *mockAuth) Register(ctx context.Context, in service.RegisterInput) (models.User, error) {
	m.lastRegister = in
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (models.User, service.TokenPair, error) {
	m.lastLoginEmail = email
	return m.loginUser, m.loginPair, m.loginErr
}

func (m *mockAuth) ParseAccessToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) Refresh(ctx context.Context, refreshToken string) (service.TokenPair, error) {
	return m.refreshPair, m.refreshErr
}

func (m *mockAuth) Logout(ctx context.Context, userID int) error {
	m.logoutCalls++
	return m.logoutErr
}

type mockAccounts struct {
	current     models.User
	currentErr  error
	updated     models.User
	updateErr   error
	changeErr   error
	lastName    string
	lastEmail   string
	lastNumber  string
	lastOldPass string
}

func (m *mockAccounts) Current(ctx context.Context, userID int) (models.User, error) {
	return m.current, m.currentErr
}

func (m *mockAccounts) UpdateAccount(ctx context.Context, userID int, name, email, number string) (models.User, error) {
	m.lastName, m.lastEmail, m.lastNumber = name, email, number
	return m.updated, m.updateErr
}

func (m *mockAccounts) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	m.lastOldPass = oldPassword
	return m.changeErr
}

type mockReports struct {
	created    models.Report
	createErr  error
	byOwner    []models.Report
	byOwnerErr error
	all        []models.ReportWithOwner
	allErr     error
	updated    models.Report
	updateErr  error
	deleteErr  error
	attached   models.Report
	attachErr  error

	lastCreateOwner int
	lastCreateIn    service.CreateReportInput
	lastListOwner   int
	lastUpdateArgs  [2]int // caller, report
	lastContent     *string
	lastStatus      *string
	lastDeleteArgs  [2]int
	deleteCalls     int
}

func (m *mockReports) Create(ctx context.Context, ownerID int, in service.CreateReportInput) (models.Report, error) {
	m.lastCreateOwner = ownerID
	m.lastCreateIn = in
	return m.created, m.createErr
}

func (m *mockReports) ListByOwner(ctx context.Context, userID int) ([]models.Report, error) {
	m.lastListOwner = userID
	return m.byOwner, m.byOwnerErr
}

func (m *mockReports) ListAll(ctx context.Context) ([]models.ReportWithOwner, error) {
	return m.all, m.allErr
}

func (m *mockReports) Update(ctx context.Context, callerID, reportID int, content, status *string) (models.Report, error) {
	m.lastUpdateArgs = [2]int{callerID, reportID}
	m.lastContent, m.lastStatus = content, status
	return m.updated, m.updateErr
}

func (m *mockReports) Delete(ctx context.Context, callerID, reportID int) error {
	m.deleteCalls++
	m.lastDeleteArgs = [2]int{callerID, reportID}
	return m.deleteErr
}

func (m *mockReports) AttachImage(ctx context.Context, callerID, reportID int, up service.ImageUpload) (models.Report, error) {
	return m.attached, m.attachErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Config{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
