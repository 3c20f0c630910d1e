package database

import (
	"fmt"

	"paperdesk_backend/internal/config"
	"paperdesk_backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens the database named in the configuration. The handle
// is cached for subsequent callers.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	var dialector gorm.Dialector
	switch cfg.Database.Dialect {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "postgres", "":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database dialect: %s", cfg.Database.Dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
	)
}
