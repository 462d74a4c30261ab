package services

import (
	"context"
	"errors"
	"fmt"

	"ma-helper/internal/adapters/persistence/repositories"
	"ma-helper/internal/config"
	"ma-helper/internal/core/domain"
	"ma-helper/internal/pkg/jwt"
	"ma-helper/internal/pkg/logger"
	"ma-helper/internal/pkg/metrics"
	"ma-helper/internal/pkg/password"

	"gorm.io/gorm"
)

// LoginInput represents login input for both clients and engineers
type LoginInput struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// ClientLoginResult is the client document plus an access token
type ClientLoginResult struct {
	*domain.ClientDocument
	AccessToken string `json:"access_token"`
}

// EngineerLoginResult is the engineer profile plus an access token
type EngineerLoginResult struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	Team        string      `json:"team"`
	Assignments []string    `json:"assignments"`
	AccessToken string      `json:"access_token"`
}

// AuthService handles authentication business logic
type AuthService struct {
	clientRepo   repositories.ClientRepository
	engineerRepo repositories.EngineerRepository
	cfg          *config.Config
	log          *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	clientRepo repositories.ClientRepository,
	engineerRepo repositories.EngineerRepository,
	cfg *config.Config,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		clientRepo:   clientRepo,
		engineerRepo: engineerRepo,
		cfg:          cfg,
		log:          log.Component("auth"),
	}
}

// LoginClient authenticates a client. Unknown ids and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) LoginClient(ctx context.Context, input *LoginInput) (*ClientLoginResult, error) {
	if input.ID == "" || input.Password == "" {
		metrics.LoginAttempt(jwt.KindClient, false)
		return nil, domain.ErrUnauthorized
	}

	row, err := s.clientRepo.GetByLoginID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.LoginAttempt(jwt.KindClient, false)
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("load client: %w", err)
	}

	if !password.Verify(input.Password, row.Password) {
		metrics.LoginAttempt(jwt.KindClient, false)
		s.log.Ctx(ctx).Warn().Str("client_id", input.ID).Msg("⚠️ Client login rejected")
		return nil, domain.ErrUnauthorized
	}

	client := row.ToDomain()
	token, err := jwt.GenerateAccessToken(client.ID, jwt.KindClient, client.ClientName, "",
		s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	metrics.LoginAttempt(jwt.KindClient, true)
	s.log.Ctx(ctx).Info().Str("client_id", client.ID).Msg("✅ Client logged in")

	return &ClientLoginResult{ClientDocument: client.Document(), AccessToken: token}, nil
}

// LoginEngineer authenticates an engineer
func (s *AuthService) LoginEngineer(ctx context.Context, input *LoginInput) (*EngineerLoginResult, error) {
	if input.ID == "" || input.Password == "" {
		metrics.LoginAttempt(jwt.KindEngineer, false)
		return nil, domain.ErrUnauthorized
	}

	row, err := s.engineerRepo.GetByLoginID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.LoginAttempt(jwt.KindEngineer, false)
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("load engineer: %w", err)
	}

	if !password.Verify(input.Password, row.Password) {
		metrics.LoginAttempt(jwt.KindEngineer, false)
		s.log.Ctx(ctx).Warn().Str("engineer_id", input.ID).Msg("⚠️ Engineer login rejected")
		return nil, domain.ErrUnauthorized
	}

	engineer := row.ToDomain()
	token, err := jwt.GenerateAccessToken(engineer.ID, jwt.KindEngineer, engineer.Name, string(engineer.Role),
		s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	metrics.LoginAttempt(jwt.KindEngineer, true)
	s.log.Ctx(ctx).Info().Str("engineer_id", engineer.ID).Msg("✅ Engineer logged in")

	return &EngineerLoginResult{
		ID:          engineer.ID,
		Name:        engineer.Name,
		Role:        engineer.Role,
		Team:        engineer.Team,
		Assignments: engineer.Assignments,
		AccessToken: token,
	}, nil
}

// ValidateToken validates an access token
func (s *AuthService) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(tokenString, s.cfg.JWT.Secret)
}
