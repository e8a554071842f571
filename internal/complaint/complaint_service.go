// Package complaint implements the complaint intake and tracking workflow:
// validating submissions, assigning reference numbers, listing for staff and
// moving complaints through their lifecycle.
package complaint

import (
	"context"
	"errors"
	"labourdesk/backend/internal/analysis"
	"labourdesk/backend/internal/apperr"
	"labourdesk/backend/internal/config"
	"labourdesk/backend/internal/models"
	"labourdesk/backend/internal/notify"
	"labourdesk/backend/internal/storage"
	"labourdesk/backend/internal/validation"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("complaint-service")

var errReferencesExhausted = errors.New("could not allocate a unique reference number")

// Service handles the business logic for complaints.
type Service struct {
	Storage      storage.Storage
	Notifier     notify.Dispatcher
	Logger       *zap.Logger
	NewReference ReferenceGenerator
	Now          func() time.Time
	// SyncNotify dispatches notifications before returning instead of on a
	// background goroutine. Short-lived processes such as the admin CLI set it.
	SyncNotify bool
}

// NewService creates a new complaint service. notifier may be nil, in which
// case no notifications are sent.
func NewService(s storage.Storage, notifier notify.Dispatcher, logger *zap.Logger) *Service {
	return &Service{
		Storage:      s,
		Notifier:     notifier,
		Logger:       logger,
		NewReference: DefaultReferenceGenerator,
		Now:          time.Now,
	}
}

// SubmitInput is the payload of the public intake form. Status and priority
// are deliberately absent: submitters cannot set them.
type SubmitInput struct {
	ComplainantName  string `json:"complainant_name"`
	ComplainantEmail string `json:"complainant_email"`
	ComplainantPhone string `json:"complainant_phone"`
	CompanyName      string `json:"company_name"`
	ComplaintType    string `json:"complaint_type"`
	Description      string `json:"description"`
	Anonymous        bool   `json:"anonymous"`
}

type SubmitResult struct {
	ReferenceNumber string
	ComplaintID     string
}

// Submit validates and stores a new complaint in the pending state, then
// queues the confirmation email and staff alert.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	ctx, span := tracer.Start(ctx, "complaint.Submit")
	defer span.End()

	if err := validateSubmission(in); err != nil {
		return nil, err
	}

	now := s.Now()
	c := &models.Complaint{
		CompanyName:   validation.Optional(in.CompanyName),
		ComplaintType: in.ComplaintType,
		Description:   in.Description,
		Status:        models.StatusPending,
		Priority:      models.PriorityMedium,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !in.Anonymous {
		c.ComplainantName = validation.Optional(in.ComplainantName)
		c.ComplainantEmail = validation.Optional(in.ComplainantEmail)
		c.ComplainantPhone = validation.Optional(in.ComplainantPhone)
	}

	if err := s.create(ctx, c); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create complaint")
		return nil, err
	}
	span.SetAttributes(attribute.String("complaint.reference", c.ReferenceNumber))

	s.Logger.Info("complaint submitted",
		zap.String("reference", c.ReferenceNumber),
		zap.String("complaint_type", c.ComplaintType),
		zap.Bool("anonymous", in.Anonymous),
	)
	s.notify(ctx, submittedJobs(c)...)

	return &SubmitResult{ReferenceNumber: c.ReferenceNumber, ComplaintID: c.ID}, nil
}

func validateSubmission(in SubmitInput) error {
	if !validation.Present(in.ComplaintType) || !validation.Present(in.Description) {
		return apperr.Validation("missing required fields")
	}
	if !in.Anonymous && (!validation.Present(in.ComplainantName) || !validation.Present(in.ComplainantEmail)) {
		return apperr.Validation("missing contact info for non-anonymous complaint")
	}
	if !validation.OneOf(in.ComplaintType, config.ComplaintTypes) {
		return apperr.FieldValidation("complaint_type", "unknown complaint type")
	}
	if !in.Anonymous && !validation.IsValidEmail(strings.TrimSpace(in.ComplainantEmail)) {
		return apperr.FieldValidation("complainant_email", "invalid email address")
	}
	return nil
}

// create inserts c, drawing a fresh reference number whenever the previous
// one collided with an existing complaint. Other storage failures are not
// retried so a complaint is never stored twice.
func (s *Service) create(ctx context.Context, c *models.Complaint) error {
	for attempt := 0; attempt < config.ReferenceMaxAttempts; attempt++ {
		c.ReferenceNumber = s.NewReference(attempt)

		err := s.Storage.CreateComplaint(ctx, c)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrDuplicate) {
			s.Logger.Error("failed to save complaint", zap.Error(err))
			return &apperr.StorageError{Op: "create complaint", Err: err}
		}
		s.Logger.Warn("reference number collision",
			zap.String("reference", c.ReferenceNumber),
			zap.Int("attempt", attempt+1),
		)
	}
	s.Logger.Error("failed to save complaint", zap.Error(errReferencesExhausted))
	return &apperr.StorageError{Op: "create complaint", Err: errReferencesExhausted}
}

func submittedJobs(c *models.Complaint) []notify.Job {
	company := "-"
	if c.CompanyName != nil {
		company = *c.CompanyName
	}
	anonymous := "no"
	if c.IsAnonymous() {
		anonymous = "yes"
	}

	jobs := []notify.Job{{
		Channel:  notify.ChannelStaff,
		Template: notify.TemplateNewComplaint,
		Data: map[string]string{
			"reference":          c.ReferenceNumber,
			"complaint_type":     c.ComplaintType,
			"suggested_priority": analysis.SuggestedPriority(c.ComplaintType),
			"company":            company,
			"anonymous":          anonymous,
		},
	}}

	if c.ComplainantEmail != nil {
		jobs = append(jobs, notify.Job{
			Channel:  notify.ChannelEmail,
			Template: notify.TemplateComplaintReceived,
			To:       strings.TrimSpace(*c.ComplainantEmail),
			Data: map[string]string{
				"name":           deref(c.ComplainantName),
				"reference":      c.ReferenceNumber,
				"complaint_type": c.ComplaintType,
			},
		})
	}
	return jobs
}

// ListFilter selects a page of complaints. Zero values mean "no filter",
// the default limit and the first page.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

type ListResult struct {
	Complaints []models.Complaint
	Total      int64
	Limit      int
	Offset     int
}

// List returns complaints newest first. An empty page is not an error.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	ctx, span := tracer.Start(ctx, "complaint.List")
	defer span.End()

	if f.Status != "" && !validation.OneOf(f.Status, models.Statuses) {
		return nil, apperr.FieldValidation("status", "unknown status")
	}
	if f.Limit <= 0 {
		f.Limit = config.DefaultListLimit
	}
	if f.Limit > config.MaxListLimit {
		f.Limit = config.MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	complaints, total, err := s.Storage.ListComplaints(ctx, storage.ComplaintFilter{
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
	if err != nil {
		span.RecordError(err)
		s.Logger.Error("failed to list complaints", zap.Error(err))
		return nil, &apperr.StorageError{Op: "list complaints", Err: err}
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}

	return &ListResult{Complaints: complaints, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// Track returns the public view of a complaint for its submitter.
func (s *Service) Track(ctx context.Context, reference string) (*models.PublicComplaint, error) {
	c, err := s.get(ctx, reference)
	if err != nil {
		return nil, err
	}
	view := c.Public()
	return &view, nil
}

func (s *Service) get(ctx context.Context, reference string) (*models.Complaint, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if !ValidReference(reference) {
		return nil, apperr.FieldValidation("reference_number", "invalid reference number")
	}
	c, err := s.Storage.GetComplaintByReference(ctx, reference)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		s.Logger.Error("failed to load complaint", zap.String("reference", reference), zap.Error(err))
		return nil, &apperr.StorageError{Op: "get complaint", Err: err}
	}
	return c, nil
}

// UpdateInput carries back-office changes; nil fields are left alone.
type UpdateInput struct {
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	AssignedTo *string `json:"assigned_to"`
}

// Update applies staff changes to a complaint in one write. Status changes
// must follow the lifecycle and notify the complainant when an email is on
// file.
func (s *Service) Update(ctx context.Context, reference string, in UpdateInput) (*models.Complaint, error) {
	if in.Status == nil && in.Priority == nil && in.AssignedTo == nil {
		return nil, apperr.Validation("nothing to update")
	}

	c, err := s.get(ctx, reference)
	if err != nil {
		return nil, err
	}
	prev := storage.VersionOf(c)

	statusChanged := false
	if in.Status != nil {
		if err := checkTransition(c.Status, *in.Status); err != nil {
			return nil, err
		}
		c.Status = *in.Status
		statusChanged = true
	}
	if in.Priority != nil {
		if !validation.OneOf(*in.Priority, models.Priorities) {
			return nil, apperr.FieldValidation("priority", "unknown priority")
		}
		c.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		if !validation.Present(*in.AssignedTo) {
			return nil, apperr.FieldValidation("assigned_to", "assignee is required")
		}
		staff := strings.TrimSpace(*in.AssignedTo)
		c.AssignedTo = &staff
	}
	// Postgres keeps microseconds; the version check compares stored values.
	c.UpdatedAt = s.Now().Truncate(time.Microsecond)
	if !c.UpdatedAt.After(prev.UpdatedAt) {
		c.UpdatedAt = prev.UpdatedAt.Add(time.Microsecond)
	}

	err = s.Storage.UpdateComplaint(ctx, c, prev)
	if errors.Is(err, storage.ErrConflict) {
		s.Logger.Warn("complaint changed during update", zap.String("reference", c.ReferenceNumber))
		return nil, apperr.ErrConflict
	}
	if err != nil {
		s.Logger.Error("failed to update complaint", zap.String("reference", c.ReferenceNumber), zap.Error(err))
		return nil, &apperr.StorageError{Op: "update complaint", Err: err}
	}

	s.Logger.Info("complaint updated",
		zap.String("reference", c.ReferenceNumber),
		zap.String("status", c.Status),
		zap.String("priority", c.Priority),
	)
	if statusChanged && c.ComplainantEmail != nil {
		s.notify(ctx, notify.Job{
			Channel:  notify.ChannelEmail,
			Template: notify.TemplateComplaintStatusChanged,
			To:       strings.TrimSpace(*c.ComplainantEmail),
			Data: map[string]string{
				"name":      deref(c.ComplainantName),
				"reference": c.ReferenceNumber,
				"status":    c.Status,
			},
		})
	}
	return c, nil
}

func (s *Service) notify(ctx context.Context, jobs ...notify.Job) {
	if s.SyncNotify {
		notify.DispatchAll(ctx, s.Notifier, s.Logger, jobs...)
		return
	}
	notify.Async(ctx, s.Notifier, s.Logger, jobs...)
}

// UpdateStatus moves a complaint to the next lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, reference, status string) (*models.Complaint, error) {
	return s.Update(ctx, reference, UpdateInput{Status: &status})
}

// Assign hands a complaint to a staff member.
func (s *Service) Assign(ctx context.Context, reference, staff string) (*models.Complaint, error) {
	return s.Update(ctx, reference, UpdateInput{AssignedTo: &staff})
}

// SetPriority changes a complaint's priority.
func (s *Service) SetPriority(ctx context.Context, reference, priority string) (*models.Complaint, error) {
	return s.Update(ctx, reference, UpdateInput{Priority: &priority})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
