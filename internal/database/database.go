package database

import (
	"fmt"
	"strconv"

	"eventreg/config"
	"eventreg/internal/domain"
	"eventreg/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens the configured store. sqlite is meant for local runs and tests.
func NewDB(cfg *config.DatabaseConfig, log *zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newQueryLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Attendee{},
		&models.Donor{},
		&models.EventPayment{},
		&models.Donation{},
		&models.RegistrationSequence{},
		&models.WebhookEvent{},
		&models.Notification{},
		&models.SystemSetting{},
	)
}

// DefaultSettings are the runtime settings seeded on first start. Later
// changes go through the admin API.
func DefaultSettings(cfg *config.Config) map[string]string {
	return map[string]string{
		domain.SettingRegistrationFee: strconv.FormatInt(cfg.Registration.FeeMinor, 10),
	}
}

// SeedSettings inserts default settings that are not present yet.
func SeedSettings(db *gorm.DB, defaults map[string]string) error {
	for k, v := range defaults {
		var count int64
		if err := db.Model(&models.SystemSetting{}).Where("setting_key = ?", k).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.SystemSetting{Key: k, Value: v}).Error; err != nil {
			return err
		}
	}
	return nil
}
