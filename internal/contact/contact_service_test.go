package contact_test

import (
	"context"
	"labourdesk/backend/internal/apperr"
	"labourdesk/backend/internal/contact"
	"labourdesk/backend/internal/notify"
	"labourdesk/backend/internal/storage/storagetest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Job
}

func (r *recordingNotifier) Dispatch(_ context.Context, job notify.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, job)
	return nil
}

func (r *recordingNotifier) jobs() []notify.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Job(nil), r.sent...)
}

func TestSubmit_StoresMessageAndAlertsStaff(t *testing.T) {
	// Arrange
	mem := storagetest.NewMemory()
	rec := &recordingNotifier{}
	svc := contact.NewService(mem, rec, zap.NewNop())

	// Act
	id, err := svc.Submit(context.Background(), contact.Input{
		Name:    "Kwame Asante",
		Email:   " kwame@example.com ",
		Subject: "Job centre hours",
		Message: "When is the Kumasi job centre open?",
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stored := mem.ContactMessages()
	require.Len(t, stored, 1)
	assert.Equal(t, id, stored[0].ID)
	assert.Equal(t, "kwame@example.com", stored[0].Email)
	assert.Equal(t, "new", stored[0].Status)
	assert.Nil(t, stored[0].Phone)

	require.Eventually(t, func() bool { return len(rec.jobs()) == 1 }, time.Second, 10*time.Millisecond)
	job := rec.jobs()[0]
	assert.Equal(t, notify.ChannelStaff, job.Channel)
	assert.Equal(t, notify.TemplateNewContact, job.Template)
	assert.Equal(t, "Job centre hours", job.Data["subject"])
}

func TestSubmit_Rejections(t *testing.T) {
	tests := []struct {
		name string
		in   contact.Input
	}{
		{"missing name", contact.Input{Email: "a@example.com", Message: "hi"}},
		{"missing message", contact.Input{Name: "A", Email: "a@example.com"}},
		{"invalid email", contact.Input{Name: "A", Email: "a@", Message: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storagetest.NewMemory()
			svc := contact.NewService(mem, nil, zap.NewNop())

			_, err := svc.Submit(context.Background(), tt.in)

			_, ok := apperr.AsValidation(err)
			assert.True(t, ok)
			assert.Empty(t, mem.ContactMessages())
		})
	}
}
