package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
	apperrors "github.com/dnc-ph/clinic-backend/pkg/errors"
)

var (
	// ErrDentalServiceNotFound indicates the requested service offering does not exist.
	ErrDentalServiceNotFound = apperrors.New("DENTAL_SERVICE_NOT_FOUND", "Dental service not found", http.StatusNotFound)
	// ErrCapabilityNotFound indicates the requested capability does not exist.
	ErrCapabilityNotFound = apperrors.New("CLINIC_CAPABILITY_NOT_FOUND", "Clinic capability not found", http.StatusNotFound)
)

// LookupInput carries the writable fields shared by the simple lookup
// tables (dental services and clinic capabilities).
type LookupInput struct {
	Name        string
	Description string
	Active      *bool
	Actor       string
}

// ListLookupOptions controls pagination and filtering for lookup listing.
type ListLookupOptions struct {
	Page     int
	PageSize int
	Query    string
	Active   *bool
}

// DentalServiceService manages the billable service catalog.
type DentalServiceService struct {
	db *gorm.DB
}

// NewDentalServiceService constructs a DentalServiceService.
func NewDentalServiceService(db *gorm.DB) (*DentalServiceService, error) {
	if db == nil {
		return nil, errors.New("dental service service: db is required")
	}
	return &DentalServiceService{db: db}, nil
}

// Create registers a new service offering.
func (s *DentalServiceService) Create(ctx context.Context, input LookupInput) (*models.DentalService, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}

	svc := &models.DentalService{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Active:      true,
	}
	if input.Active != nil {
		svc.Active = *input.Active
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		svc.LastModifiedBy = actor
	}

	if err := s.db.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, fmt.Errorf("dental service service: create: %w", err)
	}
	return svc, nil
}

// GetByID loads a service offering.
func (s *DentalServiceService) GetByID(ctx context.Context, id uint) (*models.DentalService, error) {
	ctx = ensureContext(ctx)

	var svc models.DentalService
	err := s.db.WithContext(ctx).Take(&svc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDentalServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dental service service: get: %w", err)
	}
	return &svc, nil
}

// List retrieves service offerings matching the filters with pagination.
func (s *DentalServiceService) List(ctx context.Context, opts ListLookupOptions) ([]models.DentalService, int64, error) {
	ctx = ensureContext(ctx)
	page, perPage := pageWindow(opts.Page, opts.PageSize)

	query := applyLookupFilters(s.db.WithContext(ctx).Model(&models.DentalService{}), opts)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("dental service service: count: %w", err)
	}

	var services []models.DentalService
	if err := query.
		Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&services).Error; err != nil {
		return nil, 0, fmt.Errorf("dental service service: list: %w", err)
	}

	return services, total, nil
}

// Update persists changed fields on a service offering.
func (s *DentalServiceService) Update(ctx context.Context, id uint, input LookupInput) (*models.DentalService, error) {
	ctx = ensureContext(ctx)

	var svc models.DentalService
	err := s.db.WithContext(ctx).Take(&svc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDentalServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dental service service: load: %w", err)
	}

	updates := lookupUpdates(input, svc.Name, svc.Description)
	if len(updates) == 0 {
		return &svc, nil
	}

	if err := s.db.WithContext(ctx).Model(&svc).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("dental service service: update: %w", err)
	}
	if err := s.db.WithContext(ctx).Take(&svc, id).Error; err != nil {
		return nil, fmt.Errorf("dental service service: reload: %w", err)
	}
	return &svc, nil
}

// Delete removes a service offering.
func (s *DentalServiceService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.DentalService{}, id)
	if res.Error != nil {
		return fmt.Errorf("dental service service: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDentalServiceNotFound
	}
	return nil
}

// CapabilityService manages the clinic capability catalog.
type CapabilityService struct {
	db *gorm.DB
}

// NewCapabilityService constructs a CapabilityService.
func NewCapabilityService(db *gorm.DB) (*CapabilityService, error) {
	if db == nil {
		return nil, errors.New("capability service: db is required")
	}
	return &CapabilityService{db: db}, nil
}

// Create registers a new capability.
func (s *CapabilityService) Create(ctx context.Context, input LookupInput) (*models.ClinicCapability, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}

	capability := &models.ClinicCapability{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Active:      true,
	}
	if input.Active != nil {
		capability.Active = *input.Active
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		capability.LastModifiedBy = actor
	}

	if err := s.db.WithContext(ctx).Create(capability).Error; err != nil {
		return nil, fmt.Errorf("capability service: create: %w", err)
	}
	return capability, nil
}

// GetByID loads a capability.
func (s *CapabilityService) GetByID(ctx context.Context, id uint) (*models.ClinicCapability, error) {
	ctx = ensureContext(ctx)

	var capability models.ClinicCapability
	err := s.db.WithContext(ctx).Take(&capability, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCapabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("capability service: get: %w", err)
	}
	return &capability, nil
}

// List retrieves capabilities matching the filters with pagination.
func (s *CapabilityService) List(ctx context.Context, opts ListLookupOptions) ([]models.ClinicCapability, int64, error) {
	ctx = ensureContext(ctx)
	page, perPage := pageWindow(opts.Page, opts.PageSize)

	query := applyLookupFilters(s.db.WithContext(ctx).Model(&models.ClinicCapability{}), opts)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("capability service: count: %w", err)
	}

	var caps []models.ClinicCapability
	if err := query.
		Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&caps).Error; err != nil {
		return nil, 0, fmt.Errorf("capability service: list: %w", err)
	}

	return caps, total, nil
}

// Update persists changed capability fields.
func (s *CapabilityService) Update(ctx context.Context, id uint, input LookupInput) (*models.ClinicCapability, error) {
	ctx = ensureContext(ctx)

	var capability models.ClinicCapability
	err := s.db.WithContext(ctx).Take(&capability, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCapabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("capability service: load: %w", err)
	}

	updates := lookupUpdates(input, capability.Name, capability.Description)
	if len(updates) == 0 {
		return &capability, nil
	}

	if err := s.db.WithContext(ctx).Model(&capability).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("capability service: update: %w", err)
	}
	if err := s.db.WithContext(ctx).Take(&capability, id).Error; err != nil {
		return nil, fmt.Errorf("capability service: reload: %w", err)
	}
	return &capability, nil
}

// Delete removes a capability.
func (s *CapabilityService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.ClinicCapability{}, id)
	if res.Error != nil {
		return fmt.Errorf("capability service: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCapabilityNotFound
	}
	return nil
}

func applyLookupFilters(query *gorm.DB, opts ListLookupOptions) *gorm.DB {
	if opts.Active != nil {
		query = query.Where("active = ?", *opts.Active)
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return query
}

func lookupUpdates(input LookupInput, currentName, currentDescription string) map[string]any {
	updates := map[string]any{}
	if v := strings.TrimSpace(input.Name); v != "" && v != currentName {
		updates["name"] = v
	}
	if v := strings.TrimSpace(input.Description); v != currentDescription {
		updates["description"] = v
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if len(updates) == 0 {
		return updates
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		updates["last_modified_by"] = actor
	}
	return updates
}
