package config

import (
	"context"
	_ "embed"
	"fmt"

	"ma-helper/internal/adapters/persistence/models"
	"ma-helper/internal/adapters/persistence/repositories"
	"ma-helper/internal/core/domain"
	"ma-helper/internal/pkg/logger"
	"ma-helper/internal/pkg/password"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed fixtures/seed.yaml
var seedYAML []byte

// FixtureClient is one client entry of the seed file. MaintenanceData is left
// raw because historical entries mix several shapes.
type FixtureClient struct {
	Key             string              `yaml:"-"`
	ID              string              `yaml:"id"`
	ClientName      string              `yaml:"client_name"`
	Password        string              `yaml:"password"`
	BusinessInfo    domain.BusinessInfo `yaml:"business_info"`
	MaintenanceData map[string]any      `yaml:"maintenance_data"`
}

// FixtureEngineer is one engineer entry of the seed file
type FixtureEngineer struct {
	ID          string   `yaml:"id"`
	Password    string   `yaml:"password"`
	Name        string   `yaml:"name"`
	Role        string   `yaml:"role"`
	Gender      string   `yaml:"gender"`
	Position    string   `yaml:"position"`
	Experience  string   `yaml:"experience"`
	Photo       string   `yaml:"photo"`
	Team        string   `yaml:"team"`
	Assignments []string `yaml:"assignments"`
}

// Fixtures is the parsed seed file, clients in document order
type Fixtures struct {
	Clients   []FixtureClient
	Engineers []FixtureEngineer
}

// LoadFixtures parses the embedded seed file
func LoadFixtures() (*Fixtures, error) {
	return ParseFixtures(seedYAML)
}

// ParseFixtures parses a seed document. Clients are keyed by slot name.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var doc struct {
		Clients   yaml.Node         `yaml:"clients"`
		Engineers []FixtureEngineer `yaml:"engineers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed fixtures: %w", err)
	}

	fixtures := &Fixtures{Engineers: doc.Engineers}
	if doc.Clients.Kind == 0 {
		return fixtures, nil
	}
	if doc.Clients.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse seed fixtures: clients must be a mapping")
	}

	// Walk the mapping node directly to keep document order
	for i := 0; i+1 < len(doc.Clients.Content); i += 2 {
		var fc FixtureClient
		if err := doc.Clients.Content[i+1].Decode(&fc); err != nil {
			return nil, fmt.Errorf("parse seed client %q: %w", doc.Clients.Content[i].Value, err)
		}
		fc.Key = doc.Clients.Content[i].Value
		fixtures.Clients = append(fixtures.Clients, fc)
	}
	return fixtures, nil
}

// Seeder handles database seeding
type Seeder struct {
	clients    repositories.ClientRepository
	engineers  repositories.EngineerRepository
	log        *logger.Logger
	bcryptCost int
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, log *logger.Logger, bcryptCost int) *Seeder {
	return &Seeder{
		clients:    repositories.NewClientRepository(db),
		engineers:  repositories.NewEngineerRepository(db),
		log:        log.Component("seeder"),
		bcryptCost: bcryptCost,
	}
}

// Run seeds demo engineers and clients. Each collection is only seeded when
// its table is empty, so restarts never duplicate data.
func (s *Seeder) Run(ctx context.Context) error {
	fixtures, err := LoadFixtures()
	if err != nil {
		return err
	}
	return s.Seed(ctx, fixtures)
}

// Seed writes the given fixtures
func (s *Seeder) Seed(ctx context.Context, fixtures *Fixtures) error {
	s.log.Info().Msg("🌱 Running database seeders...")

	// Engineers first so records can be linked to their authors
	if err := s.seedEngineers(ctx, fixtures.Engineers); err != nil {
		return fmt.Errorf("seed engineers: %w", err)
	}
	if err := s.seedClients(ctx, fixtures.Clients); err != nil {
		return fmt.Errorf("seed clients: %w", err)
	}

	s.log.Info().Msg("✅ Database seeding completed")
	return nil
}

func (s *Seeder) seedEngineers(ctx context.Context, fixtures []FixtureEngineer) error {
	count, err := s.engineers.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Debug().Int64("count", count).Msg("engineers already present, skipping")
		return nil
	}

	rows := make([]*models.Engineer, 0, len(fixtures))
	for _, f := range fixtures {
		if f.ID == "" || f.Name == "" || !domain.Role(f.Role).Valid() {
			s.log.Warn().Str("id", f.ID).Msg("⚠️ Skipping malformed engineer fixture")
			continue
		}
		hashed, err := password.HashWithCost(f.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		rows = append(rows, &models.Engineer{
			LoginID:     f.ID,
			Password:    hashed,
			Name:        f.Name,
			Role:        f.Role,
			Gender:      f.Gender,
			Position:    f.Position,
			Experience:  f.Experience,
			Photo:       f.Photo,
			Team:        f.Team,
			Assignments: f.Assignments,
		})
	}
	if err := s.engineers.CreateBatch(ctx, rows); err != nil {
		return err
	}
	s.log.Info().Int("count", len(rows)).Msg("✅ Engineers seeded")
	return nil
}

func (s *Seeder) seedClients(ctx context.Context, fixtures []FixtureClient) error {
	count, err := s.clients.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Debug().Int64("count", count).Msg("clients already present, skipping")
		return nil
	}

	engineerIDs, err := s.engineerIDsByName(ctx)
	if err != nil {
		return err
	}

	seeded := 0
	for _, f := range fixtures {
		if f.ID == "" || f.ClientName == "" {
			s.log.Warn().Str("key", f.Key).Msg("⚠️ Skipping malformed client fixture")
			continue
		}
		client, err := s.buildClient(f, engineerIDs)
		if err != nil {
			return err
		}
		if err := s.clients.Create(ctx, client); err != nil {
			return fmt.Errorf("client %s: %w", f.ID, err)
		}
		seeded++
	}

	s.log.Info().Int("count", seeded).Msg("✅ Clients seeded")
	return nil
}

// buildClient converts a fixture into a client row with its equipment and
// records attached, ready for a single nested Create.
func (s *Seeder) buildClient(f FixtureClient, engineerIDs map[string]string) (*models.Client, error) {
	hashed, err := password.HashWithCost(f.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		LoginID:      f.ID,
		ClientName:   f.ClientName,
		Password:     hashed,
		BusinessInfo: f.BusinessInfo,
	}
	for _, eq := range domain.NormalizeMaintenanceData(f.MaintenanceData) {
		row := models.Equipment{Name: eq.Name}
		for i := range eq.Records {
			r := &eq.Records[i]
			r.ID = uuid.NewString()
			r.EngineerID = engineerIDs[r.Manager]
			row.Records = append(row.Records, *models.NewMaintenanceRecord(0, r))
		}
		client.Equipments = append(client.Equipments, row)
	}
	return client, nil
}

// engineerIDsByName maps each unambiguous engineer name to its login id
func (s *Seeder) engineerIDsByName(ctx context.Context) (map[string]string, error) {
	engineers, err := s.engineers.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(engineers))
	dup := make(map[string]bool)
	for _, e := range engineers {
		if _, ok := ids[e.Name]; ok {
			dup[e.Name] = true
		}
		ids[e.Name] = e.LoginID
	}
	for name := range dup {
		delete(ids, name)
	}
	return ids, nil
}
