package services

import (
	"errors"
	"fmt"
	"testing"

	"paperdesk_backend/internal/config"
	"paperdesk_backend/internal/email"
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/services/payment"
	"paperdesk_backend/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Level{},
		&models.Paper{},
		&models.PaperType{},
		&models.Order{},
		&models.Page{},
		&models.Post{},
		&models.Essay{},
		&models.Phase{},
		&models.Point{},
		&models.Company{},
		&models.Achievement{},
	))

	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessTTLMin = 60
	cfg.JWT.RefreshTTLHours = 24
	cfg.Tokens.ActivationExpireHours = 24
	cfg.Tokens.ResetExpireHours = 1
	cfg.Tokens.ResetIntervalMinutes = 15
	cfg.Tokens.ResetRequestLimit = 3
	cfg.Company.Name = "PaperDesk"
	cfg.Company.SupportEmail = "support@paperdesk.local"
	cfg.Company.FrontendURL = "https://paperdesk.local"
	cfg.Mail.DefaultAlias = "default"
	return cfg
}

func installTestConfig() *config.Config {
	cfg := testConfig()
	config.AppConfig = cfg
	return cfg
}

// recordingMailProvider captures outgoing mail instead of sending it.
type recordingMailProvider struct {
	sent []*email.Message
	fail bool
}

func (p *recordingMailProvider) Send(msg *email.Message) error {
	if p.fail {
		return errors.New("smtp unavailable")
	}
	p.sent = append(p.sent, msg)
	return nil
}

func (p *recordingMailProvider) Close() error { return nil }

func newTestNotifier(t *testing.T, cfg *config.Config) (*email.Notifier, *recordingMailProvider) {
	t.Helper()

	templates, err := email.NewTemplateManager()
	require.NoError(t, err)

	provider := &recordingMailProvider{}
	return email.NewNotifier(provider, templates, cfg), provider
}

// fakePaymentProvider records confirmed charges.
type fakePaymentProvider struct {
	charges []payment.Charge
	fail    bool
}

func (p *fakePaymentProvider) Confirm(charge payment.Charge) error {
	if p.fail {
		return errors.New("card declined")
	}
	p.charges = append(p.charges, charge)
	return nil
}

func requireAppError(t *testing.T, err error, httpCode int) *apperrors.AppError {
	t.Helper()

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an application error, got %v", err)
	require.Equal(t, httpCode, appErr.HTTPCode, "unexpected status for %v", err)
	return appErr
}

var serviceFixtureSeq int

func seedUser(t *testing.T, db *gorm.DB, mutate func(*models.User)) *models.User {
	t.Helper()

	serviceFixtureSeq++
	user := &models.User{
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", serviceFixtureSeq),
		Email:        fmt.Sprintf("user%d@test.local", serviceFixtureSeq),
		MobileNumber: fmt.Sprintf("555100%04d", serviceFixtureSeq),
		Password:     "hashed-password",
		IsActive:     true,
		IsCustomer:   true,
	}
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type seededCatalog struct {
	Level     models.Level
	Paper     models.Paper
	PaperType models.PaperType
}

func seedCatalog(t *testing.T, db *gorm.DB) seededCatalog {
	t.Helper()

	level := models.Level{Name: "Masters", Description: "Graduate level", PricePerPage: 15}
	require.NoError(t, db.Create(&level).Error)

	paper := models.Paper{Name: "Research Paper", Description: "Original research"}
	require.NoError(t, db.Create(&paper).Error)

	pt := models.PaperType{Name: "Case Study", Description: "Case analysis", PricePerPage: 12, PaperID: &paper.ID}
	require.NoError(t, db.Create(&pt).Error)

	return seededCatalog{Level: level, Paper: paper, PaperType: pt}
}
