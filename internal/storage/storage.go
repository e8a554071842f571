package storage

import (
	"context"
	"errors"
	"fmt"
	"labourdesk/backend/internal/config"
	"labourdesk/backend/internal/models"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict is returned by UpdateComplaint when the row no longer
	// matches the version the caller read.
	ErrConflict = errors.New("record changed since it was read")
)

// ComplaintFilter selects a page of complaints. Status is an exact match when
// non-empty.
type ComplaintFilter struct {
	Status string
	Limit  int
	Offset int
}

// ComplaintVersion identifies the state of a complaint an update was computed
// from. Every mutation bumps UpdatedAt.
type ComplaintVersion struct {
	Status    string
	UpdatedAt time.Time
}

// VersionOf returns the current version of c.
func VersionOf(c *models.Complaint) ComplaintVersion {
	return ComplaintVersion{Status: c.Status, UpdatedAt: c.UpdatedAt}
}

type Storage interface {
	CreateComplaint(ctx context.Context, complaint *models.Complaint) error
	ListComplaints(ctx context.Context, filter ComplaintFilter) ([]models.Complaint, int64, error)
	GetComplaintByReference(ctx context.Context, reference string) (*models.Complaint, error)
	UpdateComplaint(ctx context.Context, complaint *models.Complaint, prev ComplaintVersion) error

	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error

	GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	SaveSubscriber(ctx context.Context, sub *models.Subscriber) error

	Ping(ctx context.Context) error
}

// Service is the PostgreSQL (and optional Redis) backed Storage. One instance
// is created at startup and shared by every request handler.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

var _ Storage = (*Service)(nil)

// NewStorageService Constructor. rdb may be nil when Redis is not configured.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
	}
}

// OpenPostgres connects gorm to PostgreSQL. TranslateError makes unique
// violations surface as gorm.ErrDuplicatedKey.
func OpenPostgres(cfg config.Database) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect PostgreSQL: %w", err)
	}
	return db, nil
}

// OpenRedis returns nil when no Redis address is configured.
func OpenRedis(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect Redis: %w", err)
	}
	return rdb, nil
}

// AutoMigrate creates or updates every table the backend owns.
func (s *Service) AutoMigrate() error {
	return s.DB.AutoMigrate(
		&models.Complaint{},
		&models.ContactMessage{},
		&models.Subscriber{},
	)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

// CreateComplaint inserts a single complaint row.
func (s *Service) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	return translate(createComplaintQuery(s.DB.WithContext(ctx), complaint).Error)
}

func createComplaintQuery(db *gorm.DB, complaint *models.Complaint) *gorm.DB {
	return db.Create(complaint)
}

// complaintsByStatus restricts a query to one status when status is set.
func complaintsByStatus(status string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status != "" {
			return db.Where("status = ?", status)
		}
		return db
	}
}

func countComplaintsQuery(db *gorm.DB, filter ComplaintFilter, total *int64) *gorm.DB {
	return db.Model(&models.Complaint{}).Scopes(complaintsByStatus(filter.Status)).Count(total)
}

func listComplaintsQuery(db *gorm.DB, filter ComplaintFilter, out *[]models.Complaint) *gorm.DB {
	return db.
		Scopes(complaintsByStatus(filter.Status)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(out)
}

func complaintByReferenceQuery(db *gorm.DB, reference string, out *models.Complaint) *gorm.DB {
	return db.Where("reference_number = ?", reference).First(out)
}

// updateComplaintQuery writes the staff-editable columns only if the row is
// still at version prev.
func updateComplaintQuery(db *gorm.DB, c *models.Complaint, prev ComplaintVersion) *gorm.DB {
	return db.Model(&models.Complaint{}).
		Where("id = ? AND status = ? AND updated_at = ?", c.ID, prev.Status, prev.UpdatedAt).
		Updates(map[string]interface{}{
			"status":      c.Status,
			"priority":    c.Priority,
			"assigned_to": c.AssignedTo,
			"updated_at":  c.UpdatedAt,
		})
}

// ListComplaints returns one page ordered newest first together with the total
// number of rows matching the filter.
func (s *Service) ListComplaints(ctx context.Context, filter ComplaintFilter) ([]models.Complaint, int64, error) {
	var total int64
	if err := countComplaintsQuery(s.DB.WithContext(ctx), filter, &total).Error; err != nil {
		return nil, 0, translate(err)
	}

	complaints := make([]models.Complaint, 0, filter.Limit)
	if err := listComplaintsQuery(s.DB.WithContext(ctx), filter, &complaints).Error; err != nil {
		return nil, 0, translate(err)
	}
	return complaints, total, nil
}

func (s *Service) GetComplaintByReference(ctx context.Context, reference string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := complaintByReferenceQuery(s.DB.WithContext(ctx), reference, &complaint).Error; err != nil {
		return nil, translate(err)
	}
	return &complaint, nil
}

// UpdateComplaint persists status, priority, assignee and UpdatedAt. It
// returns ErrConflict when another writer changed the row after prev was read.
func (s *Service) UpdateComplaint(ctx context.Context, complaint *models.Complaint, prev ComplaintVersion) error {
	res := updateComplaintQuery(s.DB.WithContext(ctx), complaint, prev)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *Service) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	return translate(s.DB.WithContext(ctx).Create(msg).Error)
}

func (s *Service) GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (s *Service) SaveSubscriber(ctx context.Context, sub *models.Subscriber) error {
	return translate(s.DB.WithContext(ctx).Save(sub).Error)
}

// Ping is the single connectivity check: the SQL pool first, then Redis when
// it is configured.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	}
	return nil
}
