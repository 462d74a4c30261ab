package repositories

import (
	"context"

	"ma-helper/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordIndexExpr computes a record's position within its equipment (insertion
// order). Soft-deleted rows are counted so positions never shift.
const recordIndexExpr = `(SELECT COUNT(*) FROM maintenance_records r2
	WHERE r2.equipment_ref = r.equipment_ref AND r2.id < r.id) AS record_index`

// maintenanceRepository implements MaintenanceRepository interface
type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

// EnsureEquipment returns the (client, name) equipment row, creating it when absent.
// Concurrent creators race on the unique index; the loser's insert is a no-op.
func (r *maintenanceRepository) EnsureEquipment(ctx context.Context, clientRef uint, name string) (*models.Equipment, error) {
	db := r.db.WithContext(ctx)

	candidate := models.Equipment{ClientRef: clientRef, Name: name}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&candidate).Error; err != nil {
		return nil, err
	}

	var equipment models.Equipment
	err := db.Where("client_ref = ? AND name = ?", clientRef, name).First(&equipment).Error
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

// Append inserts one record at the end of its equipment
func (r *maintenanceRepository) Append(ctx context.Context, record *models.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// IndexOf returns the record's position within its equipment
func (r *maintenanceRepository) IndexOf(ctx context.Context, record *models.MaintenanceRecord) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.MaintenanceRecord{}).
		Where("equipment_ref = ? AND id < ?", record.EquipmentRef, record.ID).
		Count(&count).Error
	return int(count), err
}

// rows starts a located-record query over maintenance_records joined with equipments
func (r *maintenanceRepository) rows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("maintenance_records AS r").
		Select("r.*, e.client_ref AS client_ref, e.name AS equipment_name, " + recordIndexExpr).
		Joins("JOIN equipments e ON e.id = r.equipment_ref")
}

// FindByUID locates a record by its generated id
func (r *maintenanceRepository) FindByUID(ctx context.Context, uid string) (*models.EngineerRecordRow, error) {
	var rows []*models.EngineerRecordRow
	err := r.rows(ctx).Where("r.uid = ? AND r.deleted_at IS NULL", uid).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return rows[0], nil
}

// FindAt locates the index-th record of a client's equipment. Positions include
// soft-deleted rows; a position whose record was deleted is not found.
func (r *maintenanceRepository) FindAt(ctx context.Context, clientLoginID, equipment string, index int) (*models.EngineerRecordRow, error) {
	var rows []*models.EngineerRecordRow
	err := r.rows(ctx).
		Joins("JOIN clients c ON c.id = e.client_ref").
		Where("c.login_id = ? AND e.name = ?", clientLoginID, equipment).
		Order("r.id ASC").
		Offset(index).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return rows[0], nil
}

// UpdateIfDate applies updates only while the record still carries expectedDate
func (r *maintenanceRepository) UpdateIfDate(ctx context.Context, id uint, expectedDate string, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.MaintenanceRecord{}).
		Where("id = ? AND date = ?", id, expectedDate).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteIfDate soft-deletes the record only while it still carries expectedDate
func (r *maintenanceRepository) DeleteIfDate(ctx context.Context, id uint, expectedDate string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND date = ?", id, expectedDate).
		Delete(&models.MaintenanceRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListForEngineer lists records attributed to an engineer, in storage order
// (client, equipment, insertion). Records written before engineer references
// existed fall back to matching the manager name.
func (r *maintenanceRepository) ListForEngineer(ctx context.Context, engineerID, name string) ([]*models.EngineerRecordRow, error) {
	var rows []*models.EngineerRecordRow
	err := r.rows(ctx).
		Where("r.deleted_at IS NULL").
		Where("r.engineer_id = ? OR (r.engineer_id = '' AND r.manager = ?)", engineerID, name).
		Order("e.client_ref ASC, e.id ASC, r.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
