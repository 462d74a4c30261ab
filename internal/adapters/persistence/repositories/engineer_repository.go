package repositories

import (
	"context"

	"ma-helper/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// engineerRepository implements EngineerRepository interface
type engineerRepository struct {
	db *gorm.DB
}

// NewEngineerRepository creates a new engineer repository
func NewEngineerRepository(db *gorm.DB) EngineerRepository {
	return &engineerRepository{db: db}
}

// CreateBatch inserts engineers in one transaction
func (r *engineerRepository) CreateBatch(ctx context.Context, engineers []*models.Engineer) error {
	if len(engineers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(engineers, 100).Error
	})
}

// Count counts all engineers
func (r *engineerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Engineer{}).Count(&count).Error
	return count, err
}

// GetByLoginID gets an engineer by login id
func (r *engineerRepository) GetByLoginID(ctx context.Context, loginID string) (*models.Engineer, error) {
	var engineer models.Engineer
	err := r.db.WithContext(ctx).Where("login_id = ?", loginID).First(&engineer).Error
	if err != nil {
		return nil, err
	}
	return &engineer, nil
}

// FindByName finds every engineer carrying the given name
func (r *engineerRepository) FindByName(ctx context.Context, name string) ([]*models.Engineer, error) {
	var engineers []*models.Engineer
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").Find(&engineers).Error
	if err != nil {
		return nil, err
	}
	return engineers, nil
}

// List lists all engineers
func (r *engineerRepository) List(ctx context.Context) ([]*models.Engineer, error) {
	var engineers []*models.Engineer
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&engineers).Error; err != nil {
		return nil, err
	}
	return engineers, nil
}
