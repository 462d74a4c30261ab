package services

import (
	"context"
	"errors"
	"fmt"

	"ma-helper/internal/adapters/persistence/models"
	"ma-helper/internal/adapters/persistence/repositories"
	"ma-helper/internal/core/domain"
	"ma-helper/internal/pkg/logger"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMemoInput represents a new time memo
type CreateMemoInput struct {
	EngineerID string `json:"engineerId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Text       string `json:"text"`
}

// Validate checks required fields and formats
func (in *CreateMemoInput) Validate() error {
	v := &domain.Validator{}
	v.Require("engineerId", in.EngineerID).
		Require("date", in.Date).
		Require("time", in.Time).
		Require("text", in.Text)
	if in.Date != "" {
		v.Check("date", domain.ValidDate(in.Date))
	}
	if in.Time != "" {
		v.Check("time", domain.ValidClock(in.Time))
	}
	return v.Err()
}

// MemoPatch holds the editable memo fields. Empty fields are left unchanged.
type MemoPatch struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

// CreateMemoResult is returned after a memo is saved
type CreateMemoResult struct {
	Message string           `json:"message"`
	Memo    *domain.TimeMemo `json:"memo"`
}

// MemoService handles engineers' time memos
type MemoService struct {
	memoRepo     repositories.TimeMemoRepository
	engineerRepo repositories.EngineerRepository
	log          *logger.Logger
}

// NewMemoService creates a new memo service
func NewMemoService(memoRepo repositories.TimeMemoRepository, engineerRepo repositories.EngineerRepository, log *logger.Logger) *MemoService {
	return &MemoService{
		memoRepo:     memoRepo,
		engineerRepo: engineerRepo,
		log:          log.Component("memos"),
	}
}

// Create saves a memo for an existing engineer
func (s *MemoService) Create(ctx context.Context, input *CreateMemoInput, actor *Actor) (*CreateMemoResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if actor != nil && actor.EngineerID != input.EngineerID {
		return nil, domain.ErrForbidden
	}

	if _, err := s.engineerRepo.GetByLoginID(ctx, input.EngineerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEngineerNotFound
		}
		return nil, fmt.Errorf("load engineer: %w", err)
	}

	memo := &models.TimeMemo{
		UID:        uuid.NewString(),
		EngineerID: input.EngineerID,
		Date:       input.Date,
		Time:       input.Time,
		Text:       input.Text,
	}
	if err := s.memoRepo.Create(ctx, memo); err != nil {
		return nil, fmt.Errorf("create memo: %w", err)
	}

	s.log.Ctx(ctx).Debug().Str("engineer_id", memo.EngineerID).Str("date", memo.Date).Msg("memo saved")

	return &CreateMemoResult{Message: "Memo saved", Memo: memo.ToDomain()}, nil
}

// List returns an engineer's memos ordered by date and time, optionally for one date
func (s *MemoService) List(ctx context.Context, engineerID, date string, actor *Actor) ([]*domain.TimeMemo, error) {
	if date != "" && !domain.ValidDate(date) {
		return nil, &domain.ValidationError{Invalid: []string{"date"}}
	}
	if actor != nil && actor.EngineerID != engineerID {
		return nil, domain.ErrForbidden
	}

	rows, err := s.memoRepo.List(ctx, engineerID, date)
	if err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}

	memos := make([]*domain.TimeMemo, 0, len(rows))
	for _, row := range rows {
		memos = append(memos, row.ToDomain())
	}
	return memos, nil
}

// Update merges the provided fields into the memo
func (s *MemoService) Update(ctx context.Context, id string, patch *MemoPatch, actor *Actor) (*domain.TimeMemo, error) {
	if patch.Time != "" && !domain.ValidClock(patch.Time) {
		return nil, &domain.ValidationError{Invalid: []string{"time"}}
	}

	memo, err := s.get(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	merged := MemoPatch{Time: memo.Time, Text: memo.Text}
	if err := mergo.Merge(&merged, *patch, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	memo.Time = merged.Time
	memo.Text = merged.Text

	if err := s.memoRepo.Update(ctx, memo); err != nil {
		return nil, fmt.Errorf("update memo: %w", err)
	}
	return memo.ToDomain(), nil
}

// Delete removes a memo
func (s *MemoService) Delete(ctx context.Context, id string, actor *Actor) error {
	if _, err := s.get(ctx, id, actor); err != nil {
		return err
	}

	deleted, err := s.memoRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete memo: %w", err)
	}
	if !deleted {
		return domain.ErrMemoNotFound
	}
	return nil
}

func (s *MemoService) get(ctx context.Context, id string, actor *Actor) (*models.TimeMemo, error) {
	memo, err := s.memoRepo.GetByUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemoNotFound
		}
		return nil, fmt.Errorf("load memo: %w", err)
	}
	if actor != nil && actor.EngineerID != memo.EngineerID {
		return nil, domain.ErrForbidden
	}
	return memo, nil
}
