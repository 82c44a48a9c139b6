package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 0.23, cfg.Card.BottomRatio)
	assert.Equal(t, 24, cfg.Card.Margin)
	assert.Equal(t, "234,199,77", cfg.Card.Color)
	assert.Equal(t, int64(2000), cfg.Contacts.PageSize)
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, "smtp.gmail.com", cfg.Email.SMTP.Host)
	assert.Equal(t, 465, cfg.Email.SMTP.Port)
	assert.Equal(t, "csv", cfg.Ledger.Backend)
	assert.Equal(t, "sent_birthdays.csv", cfg.Ledger.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BIRTHDAY_LEDGER_BACKEND", "postgres")
	t.Setenv("BIRTHDAY_CARD_SHADOW", "true")
	t.Setenv("BIRTHDAY_EMAIL_SMTP_PORT", "587")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Ledger.Backend)
	assert.True(t, cfg.Card.Shadow)
	assert.Equal(t, 587, cfg.Email.SMTP.Port)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Name:     "discobolo",
		User:     "birthday",
		Password: "secret",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=birthday password=secret dbname=discobolo sslmode=require",
		c.DSN(),
	)
}
