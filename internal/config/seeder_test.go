package config

import (
	"context"
	"testing"

	"ma-helper/internal/adapters/persistence/models"
	"ma-helper/internal/pkg/logger"
	"ma-helper/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &Config{AppMode: "dev", Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}}
	db, err := ConnectDatabase(cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestLoadFixtures(t *testing.T) {
	fixtures, err := LoadFixtures()
	require.NoError(t, err)

	require.Len(t, fixtures.Clients, 4)
	assert.Equal(t, []string{"test1", "test2", "test3", "test4"}, []string{
		fixtures.Clients[0].Key, fixtures.Clients[1].Key, fixtures.Clients[2].Key, fixtures.Clients[3].Key,
	}, "document order is kept")
	assert.Equal(t, "(주)에스비에스(SBS)", fixtures.Clients[0].ClientName)
	assert.Len(t, fixtures.Engineers, 8)
}

func TestParseFixturesRejectsSequenceOfClients(t *testing.T) {
	_, err := ParseFixtures([]byte("clients:\n  - id: x\n"))
	assert.Error(t, err)
}

func TestSeederRun(t *testing.T) {
	db := openTestDB(t)
	seeder := NewSeeder(db, logger.Nop(), bcrypt.MinCost)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx))

	var clients, engineers, equipments int64
	db.Model(&models.Client{}).Count(&clients)
	db.Model(&models.Engineer{}).Count(&engineers)
	db.Model(&models.Equipment{}).Count(&equipments)
	assert.EqualValues(t, 4, clients)
	assert.EqualValues(t, 8, engineers)
	assert.EqualValues(t, 10+3+5, equipments, "test3 has no equipment")

	var nutanix models.Equipment
	require.NoError(t, db.Preload("Records").Where("name = ?", "NUTANIX").First(&nutanix).Error)
	require.Len(t, nutanix.Records, 9)
	assert.Equal(t, "2025-01-21", nutanix.Records[0].Date)
	assert.Equal(t, "eng1", nutanix.Records[0].EngineerID, "manager resolved to engineer id")
	assert.Len(t, nutanix.Records[0].UID, 36)

	var unknown models.MaintenanceRecord
	require.NoError(t, db.Where("manager = ?", "박수").First(&unknown).Error)
	assert.Empty(t, unknown.EngineerID, "unknown managers stay unlinked")

	var client models.Client
	require.NoError(t, db.Where("login_id = ?", "test1@mesa.kr").First(&client).Error)
	assert.True(t, password.Verify("123", client.Password))
	assert.Equal(t, "방송 IT 통합 유지보수", client.BusinessInfo.ProjectName)

	// A second run must not duplicate anything
	require.NoError(t, seeder.Run(ctx))
	db.Model(&models.Client{}).Count(&clients)
	db.Model(&models.Engineer{}).Count(&engineers)
	assert.EqualValues(t, 4, clients)
	assert.EqualValues(t, 8, engineers)
}

func TestSeederSkipsMalformedFixtures(t *testing.T) {
	db := openTestDB(t)
	seeder := NewSeeder(db, logger.Nop(), bcrypt.MinCost)

	fixtures := &Fixtures{
		Clients: []FixtureClient{
			{Key: "bad"},
			{Key: "ok", ID: "ok@mesa.kr", ClientName: "OK", Password: "pw", MaintenanceData: map[string]any{
				"equipment1": "garbage",
			}},
		},
		Engineers: []FixtureEngineer{
			{ID: "e1", Name: "A", Role: "boss"},
			{ID: "e2", Name: "B", Role: "member", Password: "pw"},
		},
	}
	require.NoError(t, seeder.Seed(context.Background(), fixtures))

	var clients, engineers, equipments int64
	db.Model(&models.Client{}).Count(&clients)
	db.Model(&models.Engineer{}).Count(&engineers)
	db.Model(&models.Equipment{}).Count(&equipments)
	assert.EqualValues(t, 1, clients)
	assert.EqualValues(t, 1, engineers)
	assert.EqualValues(t, 0, equipments)
}
