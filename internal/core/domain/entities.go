package domain

import "time"

// Role represents an engineer's role in a team
type Role string

const (
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleLeader || r == RoleMember
}

// Record status tags. Absent status means approved.
const (
	StatusRegistered = "등록"
	StatusApproved   = "승인"
)

// DefaultEngineerCycle is the cycle label given to engineer-authored records
const DefaultEngineerCycle = "발생시"

// BusinessInfo holds free-form contract attributes of a client. All optional.
type BusinessInfo struct {
	ProjectName        string `json:"project_name,omitempty" yaml:"project_name"`
	DeliveredEquipment string `json:"delivered_equipment,omitempty" yaml:"delivered_equipment"`
	SalesPerson        string `json:"sales_person,omitempty" yaml:"sales_person"`
	Engineer           string `json:"engineer,omitempty" yaml:"engineer"`
	StartDate          string `json:"startDate,omitempty" yaml:"startDate"`
	EndDate            string `json:"endDate,omitempty" yaml:"endDate"`
	Logo               string `json:"logo,omitempty" yaml:"logo"`
}

// MaintenanceRecord is one dated service event on one piece of equipment
type MaintenanceRecord struct {
	ID            string    `json:"id,omitempty"`
	Date          string    `json:"date"`
	Cycle         string    `json:"cycle"`
	Content       string    `json:"content"`
	ContentSimple *string   `json:"content_simple,omitempty"`
	Manager       string    `json:"manager"`
	EngineerID    string    `json:"engineer_id,omitempty"`
	Status        *string   `json:"status,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// EffectiveStatus returns the record status, defaulting to approved
func (r *MaintenanceRecord) EffectiveStatus() string {
	if r.Status == nil || *r.Status == "" {
		return StatusApproved
	}
	return *r.Status
}

// Equipment is a named piece of hardware/software with its records in insertion order
type Equipment struct {
	Name    string              `json:"name"`
	Records []MaintenanceRecord `json:"records"`
}

// MaintenanceData maps equipment name to its records
type MaintenanceData map[string][]MaintenanceRecord

// ToMaintenanceData flattens an ordered equipment list into the wire map.
// Equipment without records maps to an empty, non-nil slice.
func ToMaintenanceData(equipments []Equipment) MaintenanceData {
	data := make(MaintenanceData, len(equipments))
	for _, e := range equipments {
		records := e.Records
		if records == nil {
			records = []MaintenanceRecord{}
		}
		data[e.Name] = records
	}
	return data
}

// Client represents a customer organization
type Client struct {
	ID           string       `json:"id"`
	ClientName   string       `json:"client_name"`
	Password     string       `json:"-"` // bcrypt hash
	BusinessInfo BusinessInfo `json:"business_info"`
	Equipments   []Equipment  `json:"-"`
}

// ProjectOr returns the project name or fallback when none is set
func (c *Client) ProjectOr(fallback string) string {
	if c.BusinessInfo.ProjectName != "" {
		return c.BusinessInfo.ProjectName
	}
	return fallback
}

// ClientDocument is the full client document as served over the API
type ClientDocument struct {
	ID              string          `json:"id"`
	ClientName      string          `json:"client_name"`
	BusinessInfo    BusinessInfo    `json:"business_info"`
	MaintenanceData MaintenanceData `json:"maintenance_data"`
}

// Document builds the API document for c
func (c *Client) Document() *ClientDocument {
	return &ClientDocument{
		ID:              c.ID,
		ClientName:      c.ClientName,
		BusinessInfo:    c.BusinessInfo,
		MaintenanceData: ToMaintenanceData(c.Equipments),
	}
}

// ClientSummary is the list view of a client
type ClientSummary struct {
	ID          string `json:"id"`
	ClientName  string `json:"client_name"`
	ProjectName string `json:"project_name,omitempty"`
}

// Engineer represents a field technician
type Engineer struct {
	ID          string   `json:"id"`
	Password    string   `json:"-"` // bcrypt hash
	Name        string   `json:"name"`
	Role        Role     `json:"role"`
	Gender      string   `json:"gender,omitempty"`
	Position    string   `json:"position,omitempty"`
	Experience  string   `json:"experience,omitempty"`
	Photo       string   `json:"photo,omitempty"`
	Team        string   `json:"team,omitempty"`
	Assignments []string `json:"assignments"`
}

// EngineerRecord is a maintenance record located in its client/equipment context
type EngineerRecord struct {
	Record     MaintenanceRecord
	ClientID   string
	ClientName string
	Project    string
	Equipment  string
	Position   int
}

// TimeMemo is a note an engineer attaches to a day/time slot
type TimeMemo struct {
	ID         string    `json:"_id"`
	EngineerID string    `json:"engineerId"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}
