package services

import (
	"context"
	"testing"

	"ma-helper/internal/adapters/persistence/repositories"
	"ma-helper/internal/config"
	"ma-helper/internal/pkg/logger"
	"ma-helper/internal/testutil"

	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	cfg     *config.Config
	auth    *AuthService
	clients *ClientService
	records *RecordService
	memos   *MemoService
}

// newFixture wires every service against a freshly seeded database
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.SeededDB(t)
	cfg := testutil.Config()
	log := logger.Nop()

	clientRepo := repositories.NewClientRepository(db)
	maintenanceRepo := repositories.NewMaintenanceRepository(db)
	engineerRepo := repositories.NewEngineerRepository(db)
	memoRepo := repositories.NewTimeMemoRepository(db)

	return &fixture{
		db:      db,
		cfg:     cfg,
		auth:    NewAuthService(clientRepo, engineerRepo, cfg, log),
		clients: NewClientService(clientRepo, maintenanceRepo, engineerRepo, cfg, log),
		records: NewRecordService(clientRepo, maintenanceRepo, engineerRepo, log),
		memos:   NewMemoService(memoRepo, engineerRepo, log),
	}
}

func strPtr(s string) *string {
	return &s
}

var ctx = context.Background()
