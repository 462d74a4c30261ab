package repositories

import (
	"context"

	"ma-helper/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// timeMemoRepository implements TimeMemoRepository interface
type timeMemoRepository struct {
	db *gorm.DB
}

// NewTimeMemoRepository creates a new time memo repository
func NewTimeMemoRepository(db *gorm.DB) TimeMemoRepository {
	return &timeMemoRepository{db: db}
}

// Create creates a memo
func (r *timeMemoRepository) Create(ctx context.Context, memo *models.TimeMemo) error {
	return r.db.WithContext(ctx).Create(memo).Error
}

// GetByUID gets a memo by its generated id
func (r *timeMemoRepository) GetByUID(ctx context.Context, uid string) (*models.TimeMemo, error) {
	var memo models.TimeMemo
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&memo).Error
	if err != nil {
		return nil, err
	}
	return &memo, nil
}

// List lists an engineer's memos, optionally for one date, ordered by date then time
func (r *timeMemoRepository) List(ctx context.Context, engineerID, date string) ([]*models.TimeMemo, error) {
	var memos []*models.TimeMemo
	query := r.db.WithContext(ctx).Where("engineer_id = ?", engineerID)
	if date != "" {
		query = query.Where("date = ?", date)
	}
	if err := query.Order("date ASC, time ASC, id ASC").Find(&memos).Error; err != nil {
		return nil, err
	}
	return memos, nil
}

// Update saves the memo's time and text
func (r *timeMemoRepository) Update(ctx context.Context, memo *models.TimeMemo) error {
	return r.db.WithContext(ctx).
		Model(&models.TimeMemo{}).
		Where("id = ?", memo.ID).
		Updates(map[string]interface{}{"time": memo.Time, "text": memo.Text}).Error
}

// Delete deletes a memo by its generated id
func (r *timeMemoRepository) Delete(ctx context.Context, uid string) (bool, error) {
	result := r.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.TimeMemo{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
