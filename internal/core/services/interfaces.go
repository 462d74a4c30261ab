package services

import (
	"context"

	"ma-helper/internal/core/domain"
	"ma-helper/internal/pkg/jwt"
	"ma-helper/internal/pkg/pagination"
)

// Note: implementations live in auth_service.go, client_service.go,
// record_service.go and memo_service.go

// Authenticator defines login and token validation
type Authenticator interface {
	LoginClient(ctx context.Context, input *LoginInput) (*ClientLoginResult, error)
	LoginEngineer(ctx context.Context, input *LoginInput) (*EngineerLoginResult, error)
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// ClientHistory defines access to client documents and their maintenance history
type ClientHistory interface {
	GetClient(ctx context.Context, clientID string) (*domain.ClientDocument, error)
	GetClientFacingMaintenance(ctx context.Context, clientID string) (map[string][]ClientFacingRecord, error)
	AppendMaintenance(ctx context.Context, clientID string, input *AppendMaintenanceInput) (*AppendMaintenanceResult, error)
	ListClients(ctx context.Context, params *pagination.Params) (*ClientList, error)
}

// EngineerRecords defines the engineer-side record workflow
type EngineerRecords interface {
	ListEngineers(ctx context.Context) ([]*domain.Engineer, error)
	AppendEngineerRecord(ctx context.Context, input *EngineerRecordInput, actor *Actor) (*EngineerRecordView, error)
	ListEngineerRecords(ctx context.Context, engineerID string, actor *Actor) ([]*EngineerRecordView, error)
	UpdateEngineerRecord(ctx context.Context, recordID string, patch *RecordPatch, actor *Actor) (*UpdateRecordResult, error)
	DeleteEngineerRecord(ctx context.Context, recordID string, actor *Actor) error
}

// TimeMemos defines engineers' time memo operations
type TimeMemos interface {
	Create(ctx context.Context, input *CreateMemoInput, actor *Actor) (*CreateMemoResult, error)
	List(ctx context.Context, engineerID, date string, actor *Actor) ([]*domain.TimeMemo, error)
	Update(ctx context.Context, id string, patch *MemoPatch, actor *Actor) (*domain.TimeMemo, error)
	Delete(ctx context.Context, id string, actor *Actor) error
}

var (
	_ Authenticator   = (*AuthService)(nil)
	_ ClientHistory   = (*ClientService)(nil)
	_ EngineerRecords = (*RecordService)(nil)
	_ TimeMemos       = (*MemoService)(nil)
)
