// Package database opens the backing relational store and keeps the schema
// migrated. All data access goes through the returned *gorm.DB.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/crimebase/crimebase/internal/config"
	"github.com/crimebase/crimebase/internal/models"
)

// Connect opens a PostgreSQL connection from the configured URL.
func Connect(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate brings the schema up to date for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Installation{},
		&models.Criminal{},
		&models.Crime{},
		&models.CrimeByCriminal{},
		&models.Court{},
		&models.Hearing{},
		&models.Jail{},
		&models.Visitor{},
	)
}
