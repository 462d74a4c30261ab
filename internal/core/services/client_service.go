package services

import (
	"context"
	"errors"
	"fmt"

	"ma-helper/internal/adapters/persistence/models"
	"ma-helper/internal/adapters/persistence/repositories"
	"ma-helper/internal/config"
	"ma-helper/internal/core/domain"
	"ma-helper/internal/pkg/logger"
	"ma-helper/internal/pkg/metrics"
	"ma-helper/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientFacingRecord is what a client sees of a maintenance record. Content
// carries the summary; detailed notes stay internal.
type ClientFacingRecord struct {
	Date    string  `json:"date"`
	Cycle   string  `json:"cycle"`
	Content *string `json:"content,omitempty"`
	Manager string  `json:"manager"`
}

// AppendMaintenanceInput represents a maintenance record added from the admin side
type AppendMaintenanceInput struct {
	Equipment     string  `json:"equipment"`
	Date          string  `json:"date"`
	Cycle         string  `json:"cycle"`
	Content       string  `json:"content"`
	ContentSimple *string `json:"content_simple,omitempty"`
	Manager       string  `json:"manager"`
}

// Validate checks required fields and formats
func (in *AppendMaintenanceInput) Validate() error {
	v := &domain.Validator{}
	v.Require("equipment", in.Equipment).
		Require("date", in.Date).
		Require("cycle", in.Cycle).
		Require("content", in.Content).
		Require("manager", in.Manager)
	if in.Date != "" {
		v.Check("date", domain.ValidDate(in.Date))
	}
	return v.Err()
}

// AppendMaintenanceResult is returned after an admin append
type AppendMaintenanceResult struct {
	Message         string                 `json:"message"`
	MaintenanceData domain.MaintenanceData `json:"maintenance_data"`
}

// ClientList is a page of client summaries
type ClientList struct {
	Message string                 `json:"message"`
	Count   int                    `json:"count"`
	Clients []domain.ClientSummary `json:"clients"`
	Meta    *pagination.Meta       `json:"meta"`
}

// ClientService handles client documents and their maintenance history
type ClientService struct {
	clientRepo      repositories.ClientRepository
	maintenanceRepo repositories.MaintenanceRepository
	engineerRepo    repositories.EngineerRepository
	cfg             *config.Config
	log             *logger.Logger
}

// NewClientService creates a new client service
func NewClientService(
	clientRepo repositories.ClientRepository,
	maintenanceRepo repositories.MaintenanceRepository,
	engineerRepo repositories.EngineerRepository,
	cfg *config.Config,
	log *logger.Logger,
) *ClientService {
	return &ClientService{
		clientRepo:      clientRepo,
		maintenanceRepo: maintenanceRepo,
		engineerRepo:    engineerRepo,
		cfg:             cfg,
		log:             log.Component("clients"),
	}
}

// GetClient returns the full client document
func (s *ClientService) GetClient(ctx context.Context, clientID string) (*domain.ClientDocument, error) {
	client, err := s.loadClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return client.Document(), nil
}

// GetClientFacingMaintenance returns the client's history with detailed notes
// replaced by their summaries. Records without a summary follow the configured
// fallback policy.
func (s *ClientService) GetClientFacingMaintenance(ctx context.Context, clientID string) (map[string][]ClientFacingRecord, error) {
	client, err := s.loadClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	fallback := s.cfg.FallbackToContent()
	view := make(map[string][]ClientFacingRecord, len(client.Equipments))
	for _, eq := range client.Equipments {
		records := make([]ClientFacingRecord, 0, len(eq.Records))
		for i := range eq.Records {
			r := &eq.Records[i]
			item := ClientFacingRecord{
				Date:    r.Date,
				Cycle:   r.Cycle,
				Content: r.ContentSimple,
				Manager: r.Manager,
			}
			if item.Content == nil && fallback {
				content := r.Content
				item.Content = &content
			}
			records = append(records, item)
		}
		view[eq.Name] = records
	}
	return view, nil
}

// AppendMaintenance adds one record to a client's equipment, creating the
// equipment when it does not exist yet.
func (s *ClientService) AppendMaintenance(ctx context.Context, clientID string, input *AppendMaintenanceInput) (*AppendMaintenanceResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.clientRepo.GetProfileByLoginID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("load client: %w", err)
	}

	equipment, err := s.maintenanceRepo.EnsureEquipment(ctx, profile.ID, domain.EquipmentKey(input.Equipment))
	if err != nil {
		return nil, fmt.Errorf("ensure equipment: %w", err)
	}

	record := &domain.MaintenanceRecord{
		ID:            uuid.NewString(),
		Date:          input.Date,
		Cycle:         input.Cycle,
		Content:       input.Content,
		ContentSimple: input.ContentSimple,
		Manager:       input.Manager,
	}
	if record.ContentSimple != nil && *record.ContentSimple == "" {
		record.ContentSimple = nil
	}
	// Free-text managers are allowed here; link only an unambiguous match
	if matches, err := s.engineerRepo.FindByName(ctx, input.Manager); err == nil && len(matches) == 1 {
		record.EngineerID = matches[0].LoginID
	}

	if err := s.maintenanceRepo.Append(ctx, models.NewMaintenanceRecord(equipment.ID, record)); err != nil {
		return nil, fmt.Errorf("append record: %w", err)
	}
	metrics.RecordAppended("admin")

	s.log.Ctx(ctx).Info().
		Str("client_id", clientID).
		Str("equipment", equipment.Name).
		Str("date", record.Date).
		Msg("📌 Maintenance record added")

	client, err := s.loadClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &AppendMaintenanceResult{
		Message:         "Maintenance record added",
		MaintenanceData: domain.ToMaintenanceData(client.Equipments),
	}, nil
}

// ListClients lists client summaries page by page
func (s *ClientService) ListClients(ctx context.Context, params *pagination.Params) (*ClientList, error) {
	rows, total, err := s.clientRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	summaries := make([]domain.ClientSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.ClientSummary{
			ID:          row.LoginID,
			ClientName:  row.ClientName,
			ProjectName: row.BusinessInfo.ProjectName,
		})
	}

	return &ClientList{
		Message: "Clients retrieved",
		Count:   len(summaries),
		Clients: summaries,
		Meta:    pagination.GetMeta(params, total),
	}, nil
}

func (s *ClientService) loadClient(ctx context.Context, clientID string) (*domain.Client, error) {
	row, err := s.clientRepo.GetByLoginID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("load client: %w", err)
	}
	return row.ToDomain(), nil
}
