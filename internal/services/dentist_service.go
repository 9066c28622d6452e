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

// ErrDentistNotFound indicates the requested dentist does not exist.
var ErrDentistNotFound = apperrors.New("DENTIST_NOT_FOUND", "Dentist not found", http.StatusNotFound)

// DentistInput carries the writable dentist fields.
type DentistInput struct {
	LastName      string
	GivenName     string
	MiddleInitial string
	Email         string
	RetainerFee   string
	Active        *bool
	Actor         string
}

// ListDentistOptions controls pagination and filtering for dentist listing.
type ListDentistOptions struct {
	Page     int
	PageSize int
	Query    string
	Active   *bool
}

// DentistService manages the accredited practitioner registry.
type DentistService struct {
	db *gorm.DB
}

// NewDentistService constructs a DentistService.
func NewDentistService(db *gorm.DB) (*DentistService, error) {
	if db == nil {
		return nil, errors.New("dentist service: db is required")
	}
	return &DentistService{db: db}, nil
}

// Create registers a new dentist.
func (s *DentistService) Create(ctx context.Context, input DentistInput) (*models.Dentist, error) {
	ctx = ensureContext(ctx)

	lastName := strings.TrimSpace(input.LastName)
	givenName := strings.TrimSpace(input.GivenName)
	if lastName == "" {
		return nil, apperrors.NewBadRequest("last_name is required")
	}
	if givenName == "" {
		return nil, apperrors.NewBadRequest("given_name is required")
	}

	dentist := &models.Dentist{
		LastName:      lastName,
		GivenName:     givenName,
		MiddleInitial: strings.TrimSpace(input.MiddleInitial),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		RetainerFee:   strings.TrimSpace(input.RetainerFee),
		Active:        true,
	}
	if input.Active != nil {
		dentist.Active = *input.Active
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		dentist.LastModifiedBy = actor
	}

	if err := s.db.WithContext(ctx).Create(dentist).Error; err != nil {
		return nil, fmt.Errorf("dentist service: create: %w", err)
	}
	return dentist, nil
}

// GetByID loads a dentist.
func (s *DentistService) GetByID(ctx context.Context, id uint) (*models.Dentist, error) {
	ctx = ensureContext(ctx)

	var dentist models.Dentist
	err := s.db.WithContext(ctx).Take(&dentist, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDentistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dentist service: get: %w", err)
	}
	return &dentist, nil
}

// List retrieves dentists matching the filters with pagination, ordered by
// surname.
func (s *DentistService) List(ctx context.Context, opts ListDentistOptions) ([]models.Dentist, int64, error) {
	ctx = ensureContext(ctx)
	page, perPage := pageWindow(opts.Page, opts.PageSize)

	query := s.db.WithContext(ctx).Model(&models.Dentist{})
	if opts.Active != nil {
		query = query.Where("active = ?", *opts.Active)
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(last_name) LIKE ? OR LOWER(given_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("dentist service: count: %w", err)
	}

	var dentists []models.Dentist
	if err := query.
		Order("last_name ASC, given_name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&dentists).Error; err != nil {
		return nil, 0, fmt.Errorf("dentist service: list: %w", err)
	}

	return dentists, total, nil
}

// Update persists changed dentist fields.
func (s *DentistService) Update(ctx context.Context, id uint, input DentistInput) (*models.Dentist, error) {
	ctx = ensureContext(ctx)

	var dentist models.Dentist
	err := s.db.WithContext(ctx).Take(&dentist, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDentistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dentist service: load: %w", err)
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(input.LastName); v != "" && v != dentist.LastName {
		updates["last_name"] = v
	}
	if v := strings.TrimSpace(input.GivenName); v != "" && v != dentist.GivenName {
		updates["given_name"] = v
	}
	if v := strings.TrimSpace(input.MiddleInitial); v != dentist.MiddleInitial {
		updates["middle_initial"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(input.Email)); v != dentist.Email {
		updates["email"] = v
	}
	if v := strings.TrimSpace(input.RetainerFee); v != dentist.RetainerFee {
		updates["retainer_fee"] = v
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	if len(updates) == 0 {
		return &dentist, nil
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		updates["last_modified_by"] = actor
	}

	if err := s.db.WithContext(ctx).Model(&dentist).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("dentist service: update: %w", err)
	}
	if err := s.db.WithContext(ctx).Take(&dentist, id).Error; err != nil {
		return nil, fmt.Errorf("dentist service: reload: %w", err)
	}
	return &dentist, nil
}

// Delete removes a dentist.
func (s *DentistService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.Dentist{}, id)
	if res.Error != nil {
		return fmt.Errorf("dentist service: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDentistNotFound
	}
	return nil
}
