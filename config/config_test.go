package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REGISTRATION_FEE_MINOR", "")
	t.Setenv("PAYSTACK_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, int64(210000), cfg.Registration.FeeMinor)
	assert.Equal(t, int64(100), cfg.Registration.MinorPerMajor)
	assert.Equal(t, 10*time.Second, cfg.Paystack.Timeout)
	assert.Equal(t, "local", cfg.Notify.Transport)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REGISTRATION_FEE_MINOR", "100000")
	t.Setenv("PAYSTACK_TIMEOUT", "3s")
	t.Setenv("FRONTEND_URL", "https://dawrah.example.org/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	assert.Equal(t, int64(100000), cfg.Registration.FeeMinor)
	assert.Equal(t, 3*time.Second, cfg.Paystack.Timeout)
	assert.Equal(t, "https://dawrah.example.org", cfg.Registration.FrontendURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidateRegistrationIDPrefix(t *testing.T) {
	cfg := &Config{Registration: RegistrationConfig{IDPrefix: "DWR"}}
	assert.NoError(t, cfg.Validate())

	for _, prefix := range []string{"", "DWR-26"} {
		cfg.Registration.IDPrefix = prefix
		assert.Error(t, cfg.Validate(), prefix)
	}
}
