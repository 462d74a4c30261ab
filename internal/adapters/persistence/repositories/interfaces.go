package repositories

import (
	"context"

	"ma-helper/internal/adapters/persistence/models"
)

// ClientRepository defines client repository interface
type ClientRepository interface {
	// Create inserts the client together with its equipments and records
	Create(ctx context.Context, client *models.Client) error
	Count(ctx context.Context) (int64, error)
	// GetByLoginID loads the full client document (equipments and records in insertion order)
	GetByLoginID(ctx context.Context, loginID string) (*models.Client, error)
	// GetProfileByLoginID loads the client row only
	GetProfileByLoginID(ctx context.Context, loginID string) (*models.Client, error)
	FindByName(ctx context.Context, name string) ([]*models.Client, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Client, error)
	List(ctx context.Context, offset, limit int) ([]*models.Client, int64, error)
}

// MaintenanceRepository defines access to equipments and their records.
// Appends are single inserts; edits are compare-and-set on the record date.
type MaintenanceRepository interface {
	EnsureEquipment(ctx context.Context, clientRef uint, name string) (*models.Equipment, error)
	Append(ctx context.Context, record *models.MaintenanceRecord) error
	IndexOf(ctx context.Context, record *models.MaintenanceRecord) (int, error)
	FindByUID(ctx context.Context, uid string) (*models.EngineerRecordRow, error)
	FindAt(ctx context.Context, clientLoginID, equipment string, index int) (*models.EngineerRecordRow, error)
	UpdateIfDate(ctx context.Context, id uint, expectedDate string, updates map[string]interface{}) (bool, error)
	DeleteIfDate(ctx context.Context, id uint, expectedDate string) (bool, error)
	ListForEngineer(ctx context.Context, engineerID, name string) ([]*models.EngineerRecordRow, error)
}

// EngineerRepository defines engineer repository interface
type EngineerRepository interface {
	CreateBatch(ctx context.Context, engineers []*models.Engineer) error
	Count(ctx context.Context) (int64, error)
	GetByLoginID(ctx context.Context, loginID string) (*models.Engineer, error)
	FindByName(ctx context.Context, name string) ([]*models.Engineer, error)
	List(ctx context.Context) ([]*models.Engineer, error)
}

// TimeMemoRepository defines time memo repository interface
type TimeMemoRepository interface {
	Create(ctx context.Context, memo *models.TimeMemo) error
	GetByUID(ctx context.Context, uid string) (*models.TimeMemo, error)
	List(ctx context.Context, engineerID, date string) ([]*models.TimeMemo, error)
	Update(ctx context.Context, memo *models.TimeMemo) error
	Delete(ctx context.Context, uid string) (bool, error)
}
