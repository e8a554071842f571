// Package storagetest provides an in-memory storage.Storage for tests of the
// services and HTTP handlers.
package storagetest

import (
	"context"
	"labourdesk/backend/internal/models"
	"labourdesk/backend/internal/storage"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Memory mimics the PostgreSQL storage: unique reference numbers and emails,
// newest-first listing and single-row atomic inserts.
type Memory struct {
	mu          sync.Mutex
	complaints  map[string]models.Complaint
	contacts    []models.ContactMessage
	subscribers map[string]models.Subscriber
	nextSubID   uint

	// PingErr is returned by Ping when set.
	PingErr error
}

var _ storage.Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		complaints:  make(map[string]models.Complaint),
		subscribers: make(map[string]models.Subscriber),
	}
}

func (m *Memory) CreateComplaint(_ context.Context, c *models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.complaints {
		if existing.ReferenceNumber == c.ReferenceNumber {
			return storage.ErrDuplicate
		}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if _, ok := m.complaints[c.ID]; ok {
		return storage.ErrDuplicate
	}
	m.complaints[c.ID] = *c
	return nil
}

func (m *Memory) ListComplaints(_ context.Context, f storage.ComplaintFilter) ([]models.Complaint, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Complaint
	for _, c := range m.complaints {
		if f.Status == "" || c.Status == f.Status {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	page := make([]models.Complaint, 0)
	if f.Offset < len(matched) {
		end := len(matched)
		if f.Limit > 0 && f.Offset+f.Limit < end {
			end = f.Offset + f.Limit
		}
		page = append(page, matched[f.Offset:end]...)
	}
	return page, total, nil
}

func (m *Memory) GetComplaintByReference(_ context.Context, reference string) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.complaints {
		if c.ReferenceNumber == reference {
			found := c
			return &found, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *Memory) UpdateComplaint(_ context.Context, c *models.Complaint, prev storage.ComplaintVersion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.complaints[c.ID]
	if !ok || current.Status != prev.Status || !current.UpdatedAt.Equal(prev.UpdatedAt) {
		return storage.ErrConflict
	}
	current.Status = c.Status
	current.Priority = c.Priority
	current.AssignedTo = c.AssignedTo
	current.UpdatedAt = c.UpdatedAt
	m.complaints[c.ID] = current
	return nil
}

func (m *Memory) CreateContactMessage(_ context.Context, msg *models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Status == "" {
		msg.Status = "new"
	}
	m.contacts = append(m.contacts, *msg)
	return nil
}

func (m *Memory) GetSubscriberByEmail(_ context.Context, email string) (*models.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.subscribers[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &sub, nil
}

func (m *Memory) SaveSubscriber(_ context.Context, sub *models.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sub.ID == 0 {
		if _, taken := m.subscribers[sub.Email]; taken {
			return storage.ErrDuplicate
		}
		m.nextSubID++
		sub.ID = m.nextSubID
	}
	m.subscribers[sub.Email] = *sub
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return m.PingErr
}

// Complaints returns a snapshot of every stored complaint.
func (m *Memory) Complaints() []models.Complaint {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Complaint, 0, len(m.complaints))
	for _, c := range m.complaints {
		out = append(out, c)
	}
	return out
}

// ContactMessages returns a snapshot of every stored contact message.
func (m *Memory) ContactMessages() []models.ContactMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.ContactMessage(nil), m.contacts...)
}
