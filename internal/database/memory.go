package database

import (
	"eventreg/config"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// OpenMemory opens a migrated in-memory sqlite store. Connections are capped at
// one so every query sees the same database.
func OpenMemory(name string) (*gorm.DB, error) {
	nop := zerolog.Nop()
	db, err := NewDB(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, &nop)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
