package models_test

import (
	"labourdesk/backend/internal/models"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestComplaintBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestComplaintBeforeCreate_GeneratesUUID(t *testing.T) {
	// Arrange
	c := &models.Complaint{
		ComplaintType:   "Workplace Safety",
		Description:     "Missing fire extinguishers",
		ReferenceNumber: "LC-12345678",
	}
	assert.Empty(t, c.ID, "Complaint ID should be empty before BeforeCreate")

	// Act - GORM would call this automatically
	err := c.BeforeCreate(nil)

	// Assert
	assert.NoError(t, err)
	parsed, parseErr := uuid.Parse(c.ID)
	assert.NoError(t, parseErr, "Complaint ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsed)
}

// TestComplaintBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestComplaintBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	c := &models.Complaint{ID: existingID}

	err := c.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, c.ID)
}

// TestComplaintStructTags guards the column constraints the intake flow relies on.
func TestComplaintStructTags(t *testing.T) {
	complaintType := reflect.TypeOf(models.Complaint{})

	ref, found := complaintType.FieldByName("ReferenceNumber")
	assert.True(t, found)
	assert.Contains(t, ref.Tag.Get("gorm"), "uniqueIndex", "reference numbers must be unique at the storage layer")

	id, found := complaintType.FieldByName("ID")
	assert.True(t, found)
	assert.Contains(t, id.Tag.Get("gorm"), "primaryKey")

	status, found := complaintType.FieldByName("Status")
	assert.True(t, found)
	assert.Contains(t, status.Tag.Get("gorm"), "default:pending")

	priority, found := complaintType.FieldByName("Priority")
	assert.True(t, found)
	assert.Contains(t, priority.Tag.Get("gorm"), "default:medium")
}

func TestComplaintPublic_HidesConfidentialFields(t *testing.T) {
	name, email, company, staff := "Ama", "ama@example.com", "Acme Ltd", "officer-7"
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := &models.Complaint{
		ID:               uuid.New().String(),
		ComplainantName:  &name,
		ComplainantEmail: &email,
		CompanyName:      &company,
		ComplaintType:    "Unfair Dismissal",
		Description:      "Dismissed without notice",
		Status:           models.StatusInvestigating,
		Priority:         models.PriorityHigh,
		ReferenceNumber:  "LC-00000042",
		AssignedTo:       &staff,
		CreatedAt:        created,
		UpdatedAt:        created.Add(time.Hour),
	}

	view := c.Public()

	assert.Equal(t, models.PublicComplaint{
		ReferenceNumber: "LC-00000042",
		ComplaintType:   "Unfair Dismissal",
		Status:          models.StatusInvestigating,
		CreatedAt:       created,
		UpdatedAt:       created.Add(time.Hour),
	}, view)
}

func TestComplaintIsAnonymous(t *testing.T) {
	phone := "0240000000"
	assert.True(t, (&models.Complaint{}).IsAnonymous())
	assert.False(t, (&models.Complaint{ComplainantPhone: &phone}).IsAnonymous())
}

func TestContactMessageBeforeCreate_DefaultsStatus(t *testing.T) {
	m := &models.ContactMessage{Name: "Kofi", Email: "kofi@example.com", Message: "Office hours?"}

	err := m.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, "new", m.Status)
	_, parseErr := uuid.Parse(m.ID)
	assert.NoError(t, parseErr)
}

func TestSubscriberTopicsUsesPostgresArray(t *testing.T) {
	field, found := reflect.TypeOf(models.Subscriber{}).FieldByName("Topics")
	assert.True(t, found)
	assert.Contains(t, field.Tag.Get("gorm"), "type:text[]")
}
