package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"ma-helper/internal/adapters/persistence/models"
	"ma-helper/internal/adapters/persistence/repositories"
	"ma-helper/internal/core/domain"
	"ma-helper/internal/pkg/logger"
	"ma-helper/internal/pkg/metrics"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the engineer behind an authenticated request. A nil *Actor means
// the request carried no token and ownership is not checked.
type Actor struct {
	EngineerID string
	Name       string
}

// owns reports whether the actor may act on records attributed to engineerID,
// or, for unlinked records, written under the given manager name
func (a *Actor) owns(engineerID, manager string) bool {
	if a == nil {
		return true
	}
	if a.EngineerID == "" {
		return false
	}
	if engineerID != "" {
		return engineerID == a.EngineerID
	}
	return manager == a.Name
}

// EngineerRecordInput represents a record submitted by an engineer
type EngineerRecordInput struct {
	Manager       string `json:"manager"`
	Client        string `json:"client"`
	Project       string `json:"project"`
	Equipment     string `json:"equipment"`
	Date          string `json:"date"`
	Content       string `json:"content"`
	ContentSimple string `json:"content_simple"`
}

// Validate checks that all fields are present and the date is well formed
func (in *EngineerRecordInput) Validate() error {
	v := &domain.Validator{}
	v.Require("manager", in.Manager).
		Require("client", in.Client).
		Require("project", in.Project).
		Require("equipment", in.Equipment).
		Require("date", in.Date).
		Require("content", in.Content).
		Require("content_simple", in.ContentSimple)
	if in.Date != "" {
		v.Check("date", domain.ValidDate(in.Date))
	}
	return v.Err()
}

// RecordPatch holds the editable fields of a record. Empty fields are left unchanged.
type RecordPatch struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// EngineerRecordView is a record as listed for an engineer
type EngineerRecordView struct {
	ID            string  `json:"id"`
	LegacyID      string  `json:"legacy_id"`
	Project       string  `json:"project"`
	Client        string  `json:"client"`
	Equipment     string  `json:"equipment"`
	Date          string  `json:"date"`
	Performer     string  `json:"performer"`
	Content       string  `json:"content"`
	ContentSimple *string `json:"content_simple,omitempty"`
	Status        string  `json:"status"`
}

// UpdateRecordResult is returned after an edit
type UpdateRecordResult struct {
	Message       string              `json:"message"`
	UpdatedRecord *EngineerRecordView `json:"updatedRecord"`
}

// RecordService handles engineer-authored maintenance records
type RecordService struct {
	clientRepo      repositories.ClientRepository
	maintenanceRepo repositories.MaintenanceRepository
	engineerRepo    repositories.EngineerRepository
	log             *logger.Logger
}

// NewRecordService creates a new record service
func NewRecordService(
	clientRepo repositories.ClientRepository,
	maintenanceRepo repositories.MaintenanceRepository,
	engineerRepo repositories.EngineerRepository,
	log *logger.Logger,
) *RecordService {
	return &RecordService{
		clientRepo:      clientRepo,
		maintenanceRepo: maintenanceRepo,
		engineerRepo:    engineerRepo,
		log:             log.Component("records"),
	}
}

// ListEngineers returns every engineer
func (s *RecordService) ListEngineers(ctx context.Context) ([]*domain.Engineer, error) {
	rows, err := s.engineerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list engineers: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrEngineerNotFound
	}

	engineers := make([]*domain.Engineer, 0, len(rows))
	for _, row := range rows {
		engineers = append(engineers, row.ToDomain())
	}
	return engineers, nil
}

// AppendEngineerRecord stores a record written by an engineer under the
// client it names. The record starts in the registered state.
func (s *RecordService) AppendEngineerRecord(ctx context.Context, input *EngineerRecordInput, actor *Actor) (*EngineerRecordView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	client, err := s.resolveClient(ctx, input.Client)
	if err != nil {
		return nil, err
	}
	engineer, err := s.resolveEngineer(ctx, input.Manager)
	if err != nil {
		return nil, err
	}
	if !actor.owns(engineer.LoginID, engineer.Name) {
		return nil, domain.ErrForbidden
	}

	equipment, err := s.maintenanceRepo.EnsureEquipment(ctx, client.ID, domain.EquipmentKey(input.Equipment))
	if err != nil {
		return nil, fmt.Errorf("ensure equipment: %w", err)
	}

	summary := input.ContentSimple
	status := domain.StatusRegistered
	row := models.NewMaintenanceRecord(equipment.ID, &domain.MaintenanceRecord{
		ID:            uuid.NewString(),
		Date:          input.Date,
		Cycle:         domain.DefaultEngineerCycle,
		Content:       input.Content,
		ContentSimple: &summary,
		Manager:       engineer.Name,
		EngineerID:    engineer.LoginID,
		Status:        &status,
	})
	if err := s.maintenanceRepo.Append(ctx, row); err != nil {
		return nil, fmt.Errorf("append record: %w", err)
	}
	metrics.RecordAppended("engineer")

	index, err := s.maintenanceRepo.IndexOf(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("locate record: %w", err)
	}

	s.log.Ctx(ctx).Info().
		Str("manager", engineer.Name).
		Str("client", client.ClientName).
		Str("equipment", equipment.Name).
		Str("date", row.Date).
		Msg("📌 Engineer record saved")

	return buildView(&models.EngineerRecordRow{
		MaintenanceRecord: *row,
		ClientRef:         client.ID,
		EquipmentName:     equipment.Name,
		RecordIndex:       index,
	}, client), nil
}

// ListEngineerRecords lists every record attributed to the engineer, newest
// date first. Records sharing a date keep storage order.
func (s *RecordService) ListEngineerRecords(ctx context.Context, engineerID string, actor *Actor) ([]*EngineerRecordView, error) {
	engineer, err := s.engineerRepo.GetByLoginID(ctx, engineerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEngineerNotFound
		}
		return nil, fmt.Errorf("load engineer: %w", err)
	}
	if actor != nil && actor.EngineerID != engineer.LoginID {
		return nil, domain.ErrForbidden
	}

	rows, err := s.maintenanceRepo.ListForEngineer(ctx, engineer.LoginID, engineer.Name)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	clients, err := s.clientsByRef(ctx, rows)
	if err != nil {
		return nil, err
	}

	views := make([]*EngineerRecordView, 0, len(rows))
	for _, row := range rows {
		client, ok := clients[row.ClientRef]
		if !ok {
			continue
		}
		views = append(views, buildView(row, client))
	}

	// YYYY-MM-DD compares correctly as text
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Date > views[j].Date
	})
	return views, nil
}

// UpdateEngineerRecord edits a record's date and/or content. The record is
// addressed by its id or by a legacy composite id; a composite id whose date
// no longer matches the record is rejected as not found.
func (s *RecordService) UpdateEngineerRecord(ctx context.Context, recordID string, patch *RecordPatch, actor *Actor) (*UpdateRecordResult, error) {
	if patch.Date != "" && !domain.ValidDate(patch.Date) {
		return nil, &domain.ValidationError{Invalid: []string{"date"}}
	}

	row, err := s.locate(ctx, recordID)
	if err != nil {
		metrics.RecordEdited("update", "not_found")
		return nil, err
	}
	if !actor.owns(row.EngineerID, row.Manager) {
		return nil, domain.ErrForbidden
	}

	merged := RecordPatch{Date: row.Date, Content: row.Content}
	if err := mergo.Merge(&merged, *patch, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}

	ok, err := s.maintenanceRepo.UpdateIfDate(ctx, row.ID, row.Date, map[string]interface{}{
		"date":    merged.Date,
		"content": merged.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	if !ok {
		// Edited or deleted concurrently since it was located
		metrics.RecordEdited("update", "stale")
		return nil, domain.ErrRecordNotFound
	}
	metrics.RecordEdited("update", "ok")

	row.Date = merged.Date
	row.Content = merged.Content

	client, err := s.clientByRef(ctx, row.ClientRef)
	if err != nil {
		return nil, err
	}

	s.log.Ctx(ctx).Info().Str("record_id", row.UID).Str("date", row.Date).Msg("✏️ Engineer record updated")

	return &UpdateRecordResult{
		Message:       "Record updated",
		UpdatedRecord: buildView(row, client),
	}, nil
}

// DeleteEngineerRecord removes a record addressed the same way as UpdateEngineerRecord
func (s *RecordService) DeleteEngineerRecord(ctx context.Context, recordID string, actor *Actor) error {
	row, err := s.locate(ctx, recordID)
	if err != nil {
		metrics.RecordEdited("delete", "not_found")
		return err
	}
	if !actor.owns(row.EngineerID, row.Manager) {
		return domain.ErrForbidden
	}

	ok, err := s.maintenanceRepo.DeleteIfDate(ctx, row.ID, row.Date)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if !ok {
		metrics.RecordEdited("delete", "stale")
		return domain.ErrRecordNotFound
	}
	metrics.RecordEdited("delete", "ok")

	s.log.Ctx(ctx).Info().Str("record_id", row.UID).Msg("🗑️ Engineer record deleted")
	return nil
}

// locate resolves a record id or legacy composite id to its row
func (s *RecordService) locate(ctx context.Context, recordID string) (*models.EngineerRecordRow, error) {
	if _, err := uuid.Parse(recordID); err == nil {
		row, err := s.maintenanceRepo.FindByUID(ctx, recordID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrRecordNotFound
			}
			return nil, fmt.Errorf("find record: %w", err)
		}
		return row, nil
	}

	candidates, err := domain.ParseCompositeID(recordID)
	if err != nil {
		return nil, domain.ErrRecordNotFound
	}

	var found *models.EngineerRecordRow
	for _, cid := range candidates {
		row, err := s.maintenanceRepo.FindAt(ctx, cid.ClientID, cid.Equipment, cid.Index)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find record: %w", err)
		}
		// The position holds a record with another date
		if row.Date != cid.Date {
			continue
		}
		if found != nil {
			return nil, domain.ErrAmbiguousRecordID
		}
		found = row
	}
	if found == nil {
		return nil, domain.ErrRecordNotFound
	}
	return found, nil
}

func (s *RecordService) resolveClient(ctx context.Context, name string) (*models.Client, error) {
	matches, err := s.clientRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, domain.ErrClientNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, domain.ErrAmbiguousClient
	}
}

func (s *RecordService) resolveEngineer(ctx context.Context, name string) (*models.Engineer, error) {
	matches, err := s.engineerRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find engineer: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, domain.ErrEngineerNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, domain.ErrAmbiguousEngineer
	}
}

func (s *RecordService) clientByRef(ctx context.Context, ref uint) (*models.Client, error) {
	clients, err := s.clientRepo.GetByIDs(ctx, []uint{ref})
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	if len(clients) == 0 {
		return nil, domain.ErrClientNotFound
	}
	return clients[0], nil
}

func (s *RecordService) clientsByRef(ctx context.Context, rows []*models.EngineerRecordRow) (map[uint]*models.Client, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, row := range rows {
		if !seen[row.ClientRef] {
			seen[row.ClientRef] = true
			ids = append(ids, row.ClientRef)
		}
	}

	clients, err := s.clientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	byRef := make(map[uint]*models.Client, len(clients))
	for _, c := range clients {
		byRef[c.ID] = c
	}
	return byRef, nil
}

func buildView(row *models.EngineerRecordRow, client *models.Client) *EngineerRecordView {
	record := row.MaintenanceRecord.ToDomain()
	project := client.BusinessInfo.ProjectName
	if project == "" {
		project = row.EquipmentName
	}
	return &EngineerRecordView{
		ID: record.ID,
		LegacyID: domain.CompositeID{
			ClientID:  client.LoginID,
			Equipment: row.EquipmentName,
			Date:      record.Date,
			Index:     row.RecordIndex,
		}.String(),
		Project:       project,
		Client:        client.ClientName,
		Equipment:     row.EquipmentName,
		Date:          record.Date,
		Performer:     record.Manager,
		Content:       record.Content,
		ContentSimple: record.ContentSimple,
		Status:        record.EffectiveStatus(),
	}
}
