package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ma-helper/internal/config"
	"ma-helper/internal/pkg/logger"
	"ma-helper/internal/pkg/metrics"

	"github.com/go-resty/resty/v2"
	"github.com/robfig/cron/v3"
)

// CronService periodically calls the service's own liveness endpoint so that
// hosts which idle out inactive instances keep it awake.
type CronService struct {
	cron   *cron.Cron
	client *resty.Client
	cfg    *config.Config
	log    *logger.Logger
}

// NewCronService creates a new cron service
func NewCronService(cfg *config.Config, log *logger.Logger) *CronService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Ping.ServiceURL, "/")).
		SetTimeout(10 * time.Second)

	return &CronService{
		cron:   cron.New(),
		client: client,
		cfg:    cfg,
		log:    log.Component("cron"),
	}
}

// Start schedules the self ping
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Ping.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			s.log.Error().Err(err).Msg("❌ Self ping failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule self ping %q: %w", s.cfg.Ping.Schedule, err)
	}

	s.cron.Start()
	s.log.Info().
		Str("url", s.cfg.Ping.ServiceURL).
		Str("schedule", s.cfg.Ping.Schedule).
		Msg("🚀 Self ping scheduled")
	return nil
}

// Stop stops the scheduler and waits for a running ping to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("🛑 Cron service stopped")
}

// Ping calls GET /api/test once
func (s *CronService) Ping(ctx context.Context) error {
	resp, err := s.client.R().SetContext(ctx).Get("/api/test")
	if err != nil {
		metrics.SelfPing(false)
		return fmt.Errorf("ping request: %w", err)
	}
	if resp.IsError() {
		metrics.SelfPing(false)
		return fmt.Errorf("ping returned status %d", resp.StatusCode())
	}

	metrics.SelfPing(true)
	s.log.Debug().Int("status", resp.StatusCode()).Msg("self ping ok")
	return nil
}
