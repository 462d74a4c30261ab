package repositories

import (
	"context"

	"ma-helper/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// clientRepository implements ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create creates a client with nested equipments and records in one transaction
func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(client).Error
	})
}

// Count counts all clients
func (r *clientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&count).Error
	return count, err
}

// GetByLoginID gets a client document by login id
func (r *clientRepository) GetByLoginID(ctx context.Context, loginID string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Preload("Equipments", func(db *gorm.DB) *gorm.DB {
			return db.Order("equipments.id ASC")
		}).
		Preload("Equipments.Records", func(db *gorm.DB) *gorm.DB {
			return db.Order("maintenance_records.id ASC")
		}).
		Where("login_id = ?", loginID).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetProfileByLoginID gets a client row without its maintenance history
func (r *clientRepository) GetProfileByLoginID(ctx context.Context, loginID string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("login_id = ?", loginID).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByName finds every client carrying the given display name
func (r *clientRepository) FindByName(ctx context.Context, name string) ([]*models.Client, error) {
	var clients []*models.Client
	err := r.db.WithContext(ctx).Where("client_name = ?", name).Order("id ASC").Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// GetByIDs gets client rows by primary key
func (r *clientRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Client, error) {
	var clients []*models.Client
	if len(ids) == 0 {
		return clients, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// List lists clients with pagination
func (r *clientRepository) List(ctx context.Context, offset, limit int) ([]*models.Client, int64, error) {
	var clients []*models.Client
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}
