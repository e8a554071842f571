package complaint_test

import (
	"context"
	"labourdesk/backend/internal/models"
	"labourdesk/backend/internal/notify"
	"labourdesk/backend/internal/storage"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockStorage) ListComplaints(ctx context.Context, filter storage.ComplaintFilter) ([]models.Complaint, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) GetComplaintByReference(ctx context.Context, reference string) (*models.Complaint, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) UpdateComplaint(ctx context.Context, complaint *models.Complaint, prev storage.ComplaintVersion) error {
	args := m.Called(ctx, complaint, prev)
	return args.Error(0)
}

func (m *MockStorage) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStorage) GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}

func (m *MockStorage) SaveSubscriber(ctx context.Context, sub *models.Subscriber) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingNotifier collects dispatched jobs; Async delivers from another
// goroutine, so reads go through jobs().
type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Job
	err  error
}

func (r *recordingNotifier) Dispatch(_ context.Context, job notify.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, job)
	return r.err
}

func (r *recordingNotifier) jobs() []notify.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Job(nil), r.sent...)
}
