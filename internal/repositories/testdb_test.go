package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"paperdesk_backend/internal/logger"
	"paperdesk_backend/internal/models"

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
	// A single connection keeps every statement on the same in-memory
	// database.
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

// recordingLogHandler collects every emitted record regardless of level.
type recordingLogHandler struct {
	records *[]slog.Record
}

func (h recordingLogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordingLogHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}

func (h recordingLogHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h recordingLogHandler) WithGroup(string) slog.Handler { return h }

// captureLogs swaps the global logger for one that records into the
// returned slice, restoring the original when the test ends.
func captureLogs(t *testing.T) *[]slog.Record {
	t.Helper()

	previous := logger.GetLogger()
	records := &[]slog.Record{}
	logger.SetLogger(slog.New(recordingLogHandler{records: records}))
	t.Cleanup(func() { logger.SetLogger(previous) })
	return records
}

// loggedFilterKey reports whether any captured record carries the given
// filter key attribute.
func loggedFilterKey(records *[]slog.Record, key string) bool {
	for _, record := range *records {
		found := false
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == "key" && attr.Value.String() == key {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

var fixtureSeq int

func createTestUser(t *testing.T, db *gorm.DB, mutate func(*models.User)) *models.User {
	t.Helper()

	fixtureSeq++
	user := &models.User{
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", fixtureSeq),
		Email:        fmt.Sprintf("user%d@test.local", fixtureSeq),
		MobileNumber: fmt.Sprintf("555000%04d", fixtureSeq),
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

type testCatalog struct {
	Level     models.Level
	Paper     models.Paper
	PaperType models.PaperType
}

func createTestCatalog(t *testing.T, db *gorm.DB) testCatalog {
	t.Helper()

	level := models.Level{Name: "Undergraduate", Description: "Bachelor level work", PricePerPage: 10}
	require.NoError(t, db.Create(&level).Error)

	paper := models.Paper{Name: "Essay", Description: "Standard essay"}
	require.NoError(t, db.Create(&paper).Error)

	pt := models.PaperType{Name: "Argumentative", Description: "Argumentative writing", PricePerPage: 12, PaperID: &paper.ID}
	require.NoError(t, db.Create(&pt).Error)

	return testCatalog{Level: level, Paper: paper, PaperType: pt}
}

func createTestOrder(t *testing.T, db *gorm.DB, userID uint, catalog testCatalog, mutate func(*models.Order)) *models.Order {
	t.Helper()

	fixtureSeq++
	order := &models.Order{
		Title:         fmt.Sprintf("Order %d", fixtureSeq),
		Description:   "Write about something interesting",
		Spacing:       models.SpacingOptions[0],
		Deadline:      models.DeadlineOptions[4],
		Language:      models.LanguageOptions[0],
		Format:        models.FormatOptions[0],
		Pages:         3,
		Sources:       2,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentUnpaid,
		Price:         48,
		UserID:        userID,
		LevelID:       catalog.Level.ID,
		PaperID:       catalog.Paper.ID,
		PaperTypeID:   catalog.PaperType.ID,
	}
	if mutate != nil {
		mutate(order)
	}
	require.NoError(t, db.Create(order).Error)
	return order
}
