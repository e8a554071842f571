// Package notify delivers best-effort notifications (complainant emails and
// staff alerts) off the request path. Jobs are either pushed to a Redis list
// consumed by a Worker, or delivered on a detached goroutine when Redis is not
// configured. A failed notification never fails the request that caused it.
package notify

import (
	"context"
	"fmt"
	"labourdesk/backend/internal/apperr"
	"labourdesk/backend/internal/config"

	"go.uber.org/zap"
)

// Channel selects the Sender a job is delivered through.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelStaff Channel = "staff"
)

// Templates understood by the senders.
const (
	TemplateComplaintReceived      = "complaint_received"
	TemplateComplaintStatusChanged = "complaint_status_changed"
	TemplateNewComplaint           = "new_complaint"
	TemplateNewContact             = "new_contact"
)

// Job is one notification. It is JSON encoded when queued in Redis.
type Job struct {
	Channel  Channel           `json:"channel"`
	Template string            `json:"template"`
	To       string            `json:"to,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
	Attempts int               `json:"attempts"`
}

// Dispatcher hands a job over for delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, job Job) error
}

// Sender delivers a job through one channel.
type Sender interface {
	Send(ctx context.Context, job Job) error
}

// Senders routes jobs to the sender registered for their channel.
type Senders map[Channel]Sender

// Deliver sends job through its channel's sender.
func (s Senders) Deliver(ctx context.Context, job Job) error {
	sender, ok := s[job.Channel]
	if !ok || sender == nil {
		return fmt.Errorf("no sender for channel %q", job.Channel)
	}
	return sender.Send(ctx, job)
}

// InlineDispatcher delivers immediately through Senders. It is used when no
// Redis queue is configured.
type InlineDispatcher struct {
	Senders Senders
}

func (d *InlineDispatcher) Dispatch(ctx context.Context, job Job) error {
	return d.Senders.Deliver(ctx, job)
}

// Async dispatches jobs on a detached goroutine. Cancellation of ctx (the
// request finishing) does not abort the dispatch; failures are logged as
// NotificationError.
func Async(ctx context.Context, d Dispatcher, logger *zap.Logger, jobs ...Job) {
	if d == nil || len(jobs) == 0 {
		return
	}
	detached := context.WithoutCancel(ctx)

	go DispatchAll(detached, d, logger, jobs...)
}

// DispatchAll dispatches jobs in order on the calling goroutine, bounded by
// NotifyDispatchWindow. Failures are logged as NotificationError and do not
// stop the remaining jobs. It returns the number of jobs that failed.
func DispatchAll(ctx context.Context, d Dispatcher, logger *zap.Logger, jobs ...Job) int {
	if d == nil || len(jobs) == 0 {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, config.NotifyDispatchWindow)
	defer cancel()

	failed := 0
	for _, job := range jobs {
		if err := d.Dispatch(ctx, job); err != nil {
			failed++
			nerr := &apperr.NotificationError{Channel: string(job.Channel), Err: err}
			logger.Warn("notification dispatch failed",
				zap.Error(nerr),
				zap.String("template", job.Template),
			)
		}
	}
	return failed
}
