package models

import (
	"time"

	"ma-helper/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Clients & maintenance history
// A client document is spread over three tables so that appending a
// record is a single INSERT instead of a whole-document rewrite.
// ============================================================

// Client represents clients table
type Client struct {
	ID           uint                `gorm:"primaryKey" json:"-"`
	LoginID      string              `gorm:"column:login_id;uniqueIndex;size:100;not null" json:"id"`
	ClientName   string              `gorm:"size:200;index;not null" json:"client_name"`
	Password     string              `gorm:"size:255;not null" json:"-"`
	BusinessInfo domain.BusinessInfo `gorm:"serializer:json;type:text" json:"business_info"`
	Equipments   []Equipment         `gorm:"foreignKey:ClientRef" json:"-"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// ToDomain converts the row (with preloaded equipments) into a domain client
func (c *Client) ToDomain() *domain.Client {
	client := &domain.Client{
		ID:           c.LoginID,
		ClientName:   c.ClientName,
		Password:     c.Password,
		BusinessInfo: c.BusinessInfo,
		Equipments:   make([]domain.Equipment, 0, len(c.Equipments)),
	}
	for i := range c.Equipments {
		client.Equipments = append(client.Equipments, c.Equipments[i].ToDomain())
	}
	return client
}

// Equipment represents equipments table; one row per (client, name)
type Equipment struct {
	ID        uint                `gorm:"primaryKey"`
	ClientRef uint                `gorm:"not null;uniqueIndex:idx_equipment_client_name,priority:1"`
	Name      string              `gorm:"size:200;not null;uniqueIndex:idx_equipment_client_name,priority:2"`
	Records   []MaintenanceRecord `gorm:"foreignKey:EquipmentRef"`
	CreatedAt time.Time           `gorm:"autoCreateTime"`
}

func (Equipment) TableName() string {
	return "equipments"
}

// ToDomain converts the row (with preloaded records) into domain equipment
func (e *Equipment) ToDomain() domain.Equipment {
	eq := domain.Equipment{
		Name:    e.Name,
		Records: make([]domain.MaintenanceRecord, 0, len(e.Records)),
	}
	for i := range e.Records {
		eq.Records = append(eq.Records, e.Records[i].ToDomain())
	}
	return eq
}

// MaintenanceRecord represents maintenance_records table.
// Insertion order within an equipment is the auto-increment ID order.
type MaintenanceRecord struct {
	ID            uint      `gorm:"primaryKey"`
	UID           string    `gorm:"column:uid;size:36;uniqueIndex;not null"`
	EquipmentRef  uint      `gorm:"index;not null"`
	Date          string    `gorm:"size:10;index;not null"`
	Cycle         string    `gorm:"size:50;not null"`
	Content       string    `gorm:"type:text;not null"`
	ContentSimple *string   `gorm:"type:text"`
	Manager       string    `gorm:"size:100;index;not null"`
	EngineerID    string    `gorm:"size:100;index"`
	Status        *string   `gorm:"size:20"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	// Deleted rows keep their slot so legacy ids of later records stay valid
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}

// ToDomain converts the row into a domain record
func (r *MaintenanceRecord) ToDomain() domain.MaintenanceRecord {
	return domain.MaintenanceRecord{
		ID:            r.UID,
		Date:          r.Date,
		Cycle:         r.Cycle,
		Content:       r.Content,
		ContentSimple: r.ContentSimple,
		Manager:       r.Manager,
		EngineerID:    r.EngineerID,
		Status:        r.Status,
		Timestamp:     r.CreatedAt,
	}
}

// NewMaintenanceRecord builds a row from a domain record
func NewMaintenanceRecord(equipmentRef uint, r *domain.MaintenanceRecord) *MaintenanceRecord {
	return &MaintenanceRecord{
		UID:           r.ID,
		EquipmentRef:  equipmentRef,
		Date:          r.Date,
		Cycle:         r.Cycle,
		Content:       r.Content,
		ContentSimple: r.ContentSimple,
		Manager:       r.Manager,
		EngineerID:    r.EngineerID,
		Status:        r.Status,
	}
}

// EngineerRecordRow is the projection returned by the engineer cross-reference query
type EngineerRecordRow struct {
	MaintenanceRecord
	ClientRef     uint
	EquipmentName string
	RecordIndex   int
}

// ============================================================
// Engineers & memos
// ============================================================

// Engineer represents engineers table
type Engineer struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	LoginID     string    `gorm:"column:login_id;uniqueIndex;size:100;not null" json:"id"`
	Password    string    `gorm:"size:255" json:"-"`
	Name        string    `gorm:"size:100;index;not null" json:"name"`
	Role        string    `gorm:"size:20;not null" json:"role"`
	Gender      string    `gorm:"size:20" json:"gender"`
	Position    string    `gorm:"size:50" json:"position"`
	Experience  string    `gorm:"size:50" json:"experience"`
	Photo       string    `gorm:"size:255" json:"photo"`
	Team        string    `gorm:"size:100" json:"team"`
	Assignments []string  `gorm:"serializer:json;type:text" json:"assignments"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Engineer) TableName() string {
	return "engineers"
}

// ToDomain converts the row into a domain engineer
func (e *Engineer) ToDomain() *domain.Engineer {
	assignments := e.Assignments
	if assignments == nil {
		assignments = []string{}
	}
	return &domain.Engineer{
		ID:          e.LoginID,
		Password:    e.Password,
		Name:        e.Name,
		Role:        domain.Role(e.Role),
		Gender:      e.Gender,
		Position:    e.Position,
		Experience:  e.Experience,
		Photo:       e.Photo,
		Team:        e.Team,
		Assignments: assignments,
	}
}

// TimeMemo represents time_memos table
type TimeMemo struct {
	ID         uint      `gorm:"primaryKey"`
	UID        string    `gorm:"column:uid;size:36;uniqueIndex;not null"`
	EngineerID string    `gorm:"size:100;not null;index:idx_memo_engineer_date,priority:1"`
	Date       string    `gorm:"size:10;not null;index:idx_memo_engineer_date,priority:2"`
	Time       string    `gorm:"size:5;not null"`
	Text       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (TimeMemo) TableName() string {
	return "time_memos"
}

// ToDomain converts the row into a domain memo
func (m *TimeMemo) ToDomain() *domain.TimeMemo {
	return &domain.TimeMemo{
		ID:         m.UID,
		EngineerID: m.EngineerID,
		Date:       m.Date,
		Time:       m.Time,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
	}
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Client{},
		&Equipment{},
		&MaintenanceRecord{},
		&Engineer{},
		&TimeMemo{},
	)
}
