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

// ErrClinicNotFound indicates the requested clinic does not exist.
var ErrClinicNotFound = apperrors.New("CLINIC_NOT_FOUND", "Dental clinic not found", http.StatusNotFound)

// ClinicInput carries the writable clinic fields.
type ClinicInput struct {
	Name           string
	OwnerName      string
	Address        string
	ZipCode        string
	Schedule       string
	ContactNumbers string
	Email          string
	Remarks        string
	Active         *bool
	Actor          string
}

// ListClinicOptions controls pagination and filtering for clinic listing.
type ListClinicOptions struct {
	Page     int
	PageSize int
	Query    string
	Active   *bool
}

// ClinicService manages the accredited clinic registry.
type ClinicService struct {
	db *gorm.DB
}

// NewClinicService constructs a ClinicService.
func NewClinicService(db *gorm.DB) (*ClinicService, error) {
	if db == nil {
		return nil, errors.New("clinic service: db is required")
	}
	return &ClinicService{db: db}, nil
}

// Create registers a new clinic.
func (s *ClinicService) Create(ctx context.Context, input ClinicInput) (*models.DentalClinic, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}

	clinic := &models.DentalClinic{
		Name:           name,
		OwnerName:      strings.TrimSpace(input.OwnerName),
		Address:        strings.TrimSpace(input.Address),
		ZipCode:        strings.TrimSpace(input.ZipCode),
		Schedule:       strings.TrimSpace(input.Schedule),
		ContactNumbers: strings.TrimSpace(input.ContactNumbers),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Remarks:        strings.TrimSpace(input.Remarks),
		Active:         true,
	}
	if input.Active != nil {
		clinic.Active = *input.Active
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		clinic.LastModifiedBy = actor
	}

	if err := s.db.WithContext(ctx).Create(clinic).Error; err != nil {
		return nil, fmt.Errorf("clinic service: create: %w", err)
	}
	return clinic, nil
}

// GetByID loads a clinic.
func (s *ClinicService) GetByID(ctx context.Context, id uint) (*models.DentalClinic, error) {
	ctx = ensureContext(ctx)

	var clinic models.DentalClinic
	err := s.db.WithContext(ctx).Take(&clinic, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClinicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("clinic service: get: %w", err)
	}
	return &clinic, nil
}

// List retrieves clinics matching the filters with pagination.
func (s *ClinicService) List(ctx context.Context, opts ListClinicOptions) ([]models.DentalClinic, int64, error) {
	ctx = ensureContext(ctx)
	page, perPage := pageWindow(opts.Page, opts.PageSize)

	query := s.db.WithContext(ctx).Model(&models.DentalClinic{})
	if opts.Active != nil {
		query = query.Where("active = ?", *opts.Active)
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(owner_name) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("clinic service: count: %w", err)
	}

	var clinics []models.DentalClinic
	if err := query.
		Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&clinics).Error; err != nil {
		return nil, 0, fmt.Errorf("clinic service: list: %w", err)
	}

	return clinics, total, nil
}

// Update persists changed clinic fields.
func (s *ClinicService) Update(ctx context.Context, id uint, input ClinicInput) (*models.DentalClinic, error) {
	ctx = ensureContext(ctx)

	var clinic models.DentalClinic
	err := s.db.WithContext(ctx).Take(&clinic, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClinicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("clinic service: load: %w", err)
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(input.Name); v != "" && v != clinic.Name {
		updates["name"] = v
	}
	if v := strings.TrimSpace(input.OwnerName); v != clinic.OwnerName {
		updates["owner_name"] = v
	}
	if v := strings.TrimSpace(input.Address); v != clinic.Address {
		updates["address"] = v
	}
	if v := strings.TrimSpace(input.ZipCode); v != clinic.ZipCode {
		updates["zip_code"] = v
	}
	if v := strings.TrimSpace(input.Schedule); v != clinic.Schedule {
		updates["schedule"] = v
	}
	if v := strings.TrimSpace(input.ContactNumbers); v != clinic.ContactNumbers {
		updates["contact_numbers"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(input.Email)); v != clinic.Email {
		updates["email"] = v
	}
	if v := strings.TrimSpace(input.Remarks); v != clinic.Remarks {
		updates["remarks"] = v
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	if len(updates) == 0 {
		return &clinic, nil
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		updates["last_modified_by"] = actor
	}

	if err := s.db.WithContext(ctx).Model(&clinic).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("clinic service: update: %w", err)
	}
	if err := s.db.WithContext(ctx).Take(&clinic, id).Error; err != nil {
		return nil, fmt.Errorf("clinic service: reload: %w", err)
	}
	return &clinic, nil
}

// Delete removes a clinic.
func (s *ClinicService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.DentalClinic{}, id)
	if res.Error != nil {
		return fmt.Errorf("clinic service: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrClinicNotFound
	}
	return nil
}
