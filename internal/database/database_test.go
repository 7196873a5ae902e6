package database

import (
	"bytes"
	"testing"

	"eventreg/config"
	"eventreg/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewDBRejectsUnknownDriver(t *testing.T) {
	nop := zerolog.Nop()
	_, err := NewDB(&config.DatabaseConfig{Driver: "oracle", DSN: "x"}, &nop)
	assert.Error(t, err)
}

func TestAutoMigrateAndSeed(t *testing.T) {
	db, err := OpenMemory("migrate_test")
	require.NoError(t, err)

	require.NoError(t, SeedSettings(db, map[string]string{"registration_fee_minor": "210000"}))
	require.NoError(t, SeedSettings(db, map[string]string{"registration_fee_minor": "999"}))

	var list []models.SystemSetting
	require.NoError(t, db.Find(&list).Error)
	require.Len(t, list, 1)
	assert.Equal(t, "210000", list[0].Value)

	assert.True(t, db.Migrator().HasTable(&models.Attendee{}))
	assert.True(t, db.Migrator().HasTable(&models.RegistrationSequence{}))
}

func TestDefaultSettings(t *testing.T) {
	cfg := &config.Config{Registration: config.RegistrationConfig{FeeMinor: 150000}}
	assert.Equal(t, map[string]string{"registration_fee_minor": "150000"}, DefaultSettings(cfg))
}

func TestQueryLoggerUsesZerolog(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	db, err := NewDB(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:log_" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, &log)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	buf.Reset()

	var a models.Attendee
	err = db.Where("email = ?", "ghost@example.com").First(&a).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	require.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, buf.String(), `"message":"query failed"`)
	assert.Contains(t, buf.String(), "no_such_table")
}
