package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"ma-helper/internal/adapters/persistence/repositories"
	"ma-helper/internal/config"
	"ma-helper/internal/core/domain"
	"ma-helper/internal/pkg/logger"
	"ma-helper/internal/pkg/pagination"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGetClient(t *testing.T) {
	f := newFixture(t)

	doc, err := f.clients.GetClient(ctx, "test1@mesa.kr")
	require.NoError(t, err)
	assert.Equal(t, "(주)에스비에스(SBS)", doc.ClientName)
	assert.Len(t, doc.MaintenanceData, 10)
	assert.Len(t, doc.MaintenanceData["NUTANIX"], 9)
	assert.Equal(t, "TS4500 I/0 Slot 장애처리", doc.MaintenanceData["NUTANIX"][0].Content)

	empty, err := f.clients.GetClient(ctx, "test3@mesa.kr")
	require.NoError(t, err)
	assert.NotNil(t, empty.MaintenanceData)
	assert.Empty(t, empty.MaintenanceData)

	_, err = f.clients.GetClient(ctx, "nobody@mesa.kr")
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetClientFacingMaintenance_HidesDetailedContent(t *testing.T) {
	f := newFixture(t)

	view, err := f.clients.GetClientFacingMaintenance(ctx, "test1@mesa.kr")
	require.NoError(t, err)

	require.Len(t, view["NUTANIX"], 9)
	for _, records := range view {
		for _, r := range records {
			assert.Nil(t, r.Content, "seed records carry no summary")
			assert.NotEmpty(t, r.Manager)
		}
	}
}

func TestGetClientFacingMaintenance_ContentFallback(t *testing.T) {
	f := newFixture(t)
	f.cfg.View.ContentFallback = config.FallbackContent

	view, err := f.clients.GetClientFacingMaintenance(ctx, "test1@mesa.kr")
	require.NoError(t, err)
	require.NotNil(t, view["CIDER"][0].Content)
	assert.Equal(t, "소프트웨어 업데이트", *view["CIDER"][0].Content)
}

func TestAppendMaintenance(t *testing.T) {
	f := newFixture(t)

	result, err := f.clients.AppendMaintenance(ctx, "test3@mesa.kr", &AppendMaintenanceInput{
		Equipment:     " DELL ",
		Date:          "2025-03-01",
		Cycle:         "매월",
		Content:       "디스크 교체 및 RAID 재구성",
		ContentSimple: strPtr("디스크 교체"),
		Manager:       "이상우",
	})
	require.NoError(t, err)
	require.Len(t, result.MaintenanceData["DELL"], 1, "equipment key is trimmed")

	record := result.MaintenanceData["DELL"][0]
	assert.Equal(t, "eng7", record.EngineerID)
	assert.Len(t, record.ID, 36)

	view, err := f.clients.GetClientFacingMaintenance(ctx, "test3@mesa.kr")
	require.NoError(t, err)
	require.Len(t, view["DELL"], 1)
	assert.Equal(t, "디스크 교체", *view["DELL"][0].Content)

	// A second append to the same equipment lands after the first
	result, err = f.clients.AppendMaintenance(ctx, "test3@mesa.kr", &AppendMaintenanceInput{
		Equipment: "DELL",
		Date:      "2025-03-02",
		Cycle:     "매월",
		Content:   "점검",
		Manager:   "외부 업체",
	})
	require.NoError(t, err)
	require.Len(t, result.MaintenanceData["DELL"], 2)
	assert.Equal(t, "2025-03-02", result.MaintenanceData["DELL"][1].Date)
	assert.Empty(t, result.MaintenanceData["DELL"][1].EngineerID, "free-text managers stay unlinked")
}

func TestAppendMaintenance_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.clients.AppendMaintenance(ctx, "test1@mesa.kr", &AppendMaintenanceInput{Date: "2025/01/01"})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"equipment", "cycle", "content", "manager"}, verr.Missing)
	assert.Equal(t, []string{"date"}, verr.Invalid)

	_, err = f.clients.AppendMaintenance(ctx, "nobody@mesa.kr", &AppendMaintenanceInput{
		Equipment: "X", Date: "2025-01-01", Cycle: "매월", Content: "c", Manager: "m",
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestAppendMaintenance_ConcurrentAppendsAreNotLost(t *testing.T) {
	f := newFixture(t)
	const writers = 10

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.clients.AppendMaintenance(ctx, "test2@mesa.kr", &AppendMaintenanceInput{
				Equipment: "NEWBOX",
				Date:      "2025-04-01",
				Cycle:     "매월",
				Content:   fmt.Sprintf("작업 %d", i),
				Manager:   "이영희",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	doc, err := f.clients.GetClient(ctx, "test2@mesa.kr")
	require.NoError(t, err)
	assert.Len(t, doc.MaintenanceData["NEWBOX"], writers)
}

func TestListClients(t *testing.T) {
	f := newFixture(t)

	page, err := f.clients.ListClients(ctx, pagination.NewParams(1, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)
	assert.EqualValues(t, 4, page.Meta.Total)
	assert.True(t, page.Meta.HasNext)
	assert.Equal(t, "test1@mesa.kr", page.Clients[0].ID)
	assert.Equal(t, "방송 IT 통합 유지보수", page.Clients[0].ProjectName)

	page, err = f.clients.ListClients(ctx, pagination.NewParams(2, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	assert.False(t, page.Meta.HasNext)
}

func TestClientService_StoreFailureIsNotNotFound(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM `clients`").WillReturnError(errors.New("connection reset by peer"))

	svc := NewClientService(
		repositories.NewClientRepository(db),
		repositories.NewMaintenanceRepository(db),
		repositories.NewEngineerRepository(db),
		&config.Config{View: config.ViewConfig{ContentFallback: config.FallbackNone}},
		logger.Nop(),
	)

	_, err = svc.GetClient(ctx, "test1@mesa.kr")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "connection reset by peer")
	assert.NoError(t, mock.ExpectationsWereMet())
}
