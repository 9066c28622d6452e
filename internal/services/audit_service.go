package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
)

// Audit actions recorded by the authentication and authorization paths.
const (
	AuditActionLogin            = "auth.login"
	AuditActionPermissionDenied = "authz.denied"
)

// Audit results.
const (
	AuditResultSuccess = "success"
	AuditResultFailure = "failure"
	AuditResultDenied  = "denied"
)

// AuditEntry captures a single audit event to persist.
type AuditEntry struct {
	UserID    *uint
	Email     string
	Action    string
	Resource  string
	Result    string
	IPAddress string
	RequestID string
}

// AuditFilters narrows audit queries.
type AuditFilters struct {
	Email    string
	Action   string
	Result   string
	Resource string
	Since    *time.Time
	Until    *time.Time
}

// AuditListOptions controls pagination and filtering for audit queries.
type AuditListOptions struct {
	Page     int
	PageSize int
	Filters  AuditFilters
}

// AuditService persists and retrieves audit log entries.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService constructs an AuditService using the provided database handle.
func NewAuditService(db *gorm.DB) (*AuditService, error) {
	if db == nil {
		return nil, errors.New("audit service: db is required")
	}
	return &AuditService{db: db}, nil
}

// Log stores an audit entry.
func (s *AuditService) Log(ctx context.Context, entry AuditEntry) error {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(entry.Action) == "" {
		return errors.New("audit service: action is required")
	}
	if strings.TrimSpace(entry.Result) == "" {
		return errors.New("audit service: result is required")
	}

	log := models.AuditLog{
		UserID:    entry.UserID,
		Email:     strings.ToLower(strings.TrimSpace(entry.Email)),
		Action:    strings.TrimSpace(entry.Action),
		Resource:  strings.TrimSpace(entry.Resource),
		Result:    strings.TrimSpace(entry.Result),
		IPAddress: strings.TrimSpace(entry.IPAddress),
		RequestID: strings.TrimSpace(entry.RequestID),
	}

	return s.db.WithContext(ctx).Create(&log).Error
}

// LogDenial records an authorization denial. Failures are swallowed: the
// denial response must go out regardless.
func (s *AuditService) LogDenial(ctx context.Context, email, resource, action, ip, requestID string) {
	_ = s.Log(ctx, AuditEntry{
		Email:     email,
		Action:    AuditActionPermissionDenied,
		Resource:  resource + ":" + action,
		Result:    AuditResultDenied,
		IPAddress: ip,
		RequestID: requestID,
	})
}

// List returns paginated audit logs ordered by creation time descending.
func (s *AuditService) List(ctx context.Context, opts AuditListOptions) ([]models.AuditLog, int64, error) {
	ctx = ensureContext(ctx)

	page, perPage := pageWindow(opts.Page, opts.PageSize)

	query := applyAuditFilters(s.db.WithContext(ctx).Model(&models.AuditLog{}), opts.Filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("audit service: count logs: %w", err)
	}

	var logs []models.AuditLog
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("audit service: list logs: %w", err)
	}

	return logs, total, nil
}

// PruneOlderThan deletes entries created before the cutoff and reports how
// many rows were removed. The maintenance cleaner calls this on a schedule.
func (s *AuditService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.AuditLog{})
	if res.Error != nil {
		return 0, fmt.Errorf("audit service: prune logs: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func applyAuditFilters(query *gorm.DB, filters AuditFilters) *gorm.DB {
	if email := strings.ToLower(strings.TrimSpace(filters.Email)); email != "" {
		query = query.Where("email = ?", email)
	}
	if action := strings.TrimSpace(filters.Action); action != "" {
		query = query.Where("action = ?", action)
	}
	if result := strings.TrimSpace(filters.Result); result != "" {
		query = query.Where("result = ?", result)
	}
	if resource := strings.TrimSpace(filters.Resource); resource != "" {
		query = query.Where("resource = ?", resource)
	}
	if filters.Since != nil {
		query = query.Where("created_at >= ?", *filters.Since)
	}
	if filters.Until != nil {
		query = query.Where("created_at <= ?", *filters.Until)
	}
	return query
}

// recordAudit logs the supplied entry while tolerating audit failures: an
// audit write must never fail the request it describes.
func recordAudit(audit *AuditService, ctx context.Context, entry AuditEntry) {
	if audit == nil {
		return
	}
	_ = audit.Log(ctx, entry)
}
