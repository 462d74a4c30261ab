// Package testutil builds throwaway databases and configs for tests.
package testutil

import (
	"context"
	"testing"

	"ma-helper/internal/adapters/persistence/models"
	"ma-helper/internal/config"
	"ma-helper/internal/pkg/logger"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Config returns a dev config backed by in-memory SQLite
func Config() *config.Config {
	return &config.Config{
		AppMode:  "dev",
		Port:     "3000",
		LogLevel: "error",
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		JWT:      config.JWTConfig{Secret: "test-secret", AccessTokenMins: 60},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		View:     config.ViewConfig{ContentFallback: config.FallbackNone},
		Ping:     config.PingConfig{ServiceURL: "http://localhost:3000", Schedule: "@every 5m"},
	}
}

// NewDB opens an empty, migrated in-memory database
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := config.ConnectDatabase(Config(), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SeededDB opens an in-memory database loaded with the demo fixtures
func SeededDB(t testing.TB) *gorm.DB {
	t.Helper()

	db := NewDB(t)
	require.NoError(t, config.NewSeeder(db, logger.Nop(), bcrypt.MinCost).Run(context.Background()))
	return db
}
