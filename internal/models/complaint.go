package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint lifecycle states. A complaint only moves forward through them.
const (
	StatusPending       = "pending"
	StatusInvestigating = "investigating"
	StatusResolved      = "resolved"
	StatusClosed        = "closed"
)

// Complaint priorities. Submitters always get PriorityMedium.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Statuses lists the lifecycle states in order.
var Statuses = []string{StatusPending, StatusInvestigating, StatusResolved, StatusClosed}

// Priorities lists the accepted priorities from lowest to highest.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Complaint is a labour grievance submitted through the public intake form.
// Contact fields are nil for anonymous submissions.
type Complaint struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	ComplainantName  *string   `gorm:"type:text" json:"complainant_name"`
	ComplainantEmail *string   `gorm:"type:text" json:"complainant_email"`
	ComplainantPhone *string   `gorm:"type:text" json:"complainant_phone"`
	CompanyName      *string   `gorm:"type:text" json:"company_name"`
	ComplaintType    string    `gorm:"type:text;not null;index" json:"complaint_type"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	Status           string    `gorm:"type:text;not null;default:pending;index" json:"status"`
	Priority         string    `gorm:"type:text;not null;default:medium" json:"priority"`
	ReferenceNumber  string    `gorm:"type:varchar(16);not null;uniqueIndex" json:"reference_number"`
	AssignedTo       *string   `gorm:"type:text" json:"assigned_to"`
	CreatedAt        time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

// TableName pins the table name used by the website since launch.
func (Complaint) TableName() string {
	return "complaints"
}

// BeforeCreate generates a UUID for the complaint if ID is not set yet.
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// IsAnonymous reports whether the complaint carries no contact details.
func (c *Complaint) IsAnonymous() bool {
	return c.ComplainantName == nil && c.ComplainantEmail == nil && c.ComplainantPhone == nil
}

// PublicComplaint is what a submitter sees when tracking a reference number.
// It never includes contact details, the narrative, priority or assignee.
type PublicComplaint struct {
	ReferenceNumber string    `json:"reference_number"`
	ComplaintType   string    `json:"complaint_type"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Public projects the complaint onto its public tracking view.
func (c *Complaint) Public() PublicComplaint {
	return PublicComplaint{
		ReferenceNumber: c.ReferenceNumber,
		ComplaintType:   c.ComplaintType,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
