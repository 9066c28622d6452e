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

// ErrHMONotFound indicates the requested HMO does not exist.
var ErrHMONotFound = apperrors.New("HMO_NOT_FOUND", "HMO not found", http.StatusNotFound)

// HMOInput carries the writable HMO fields.
type HMOInput struct {
	ShortName        string
	LongName         string
	Address          string
	TaxAccountNumber string
	ContactNos       string
	Active           *bool
	Actor            string
}

// ListHMOOptions controls pagination and filtering for HMO listing.
type ListHMOOptions struct {
	Page     int
	PageSize int
	Query    string
	Active   *bool
}

// HMOService manages the HMO registry.
type HMOService struct {
	db *gorm.DB
}

// NewHMOService constructs an HMOService.
func NewHMOService(db *gorm.DB) (*HMOService, error) {
	if db == nil {
		return nil, errors.New("hmo service: db is required")
	}
	return &HMOService{db: db}, nil
}

// Create registers a new HMO.
func (s *HMOService) Create(ctx context.Context, input HMOInput) (*models.HMO, error) {
	ctx = ensureContext(ctx)

	shortName := strings.TrimSpace(input.ShortName)
	longName := strings.TrimSpace(input.LongName)
	if shortName == "" {
		return nil, apperrors.NewBadRequest("short_name is required")
	}
	if longName == "" {
		return nil, apperrors.NewBadRequest("long_name is required")
	}

	hmo := &models.HMO{
		ShortName:        shortName,
		LongName:         longName,
		Address:          strings.TrimSpace(input.Address),
		TaxAccountNumber: strings.TrimSpace(input.TaxAccountNumber),
		ContactNos:       strings.TrimSpace(input.ContactNos),
		Active:           true,
	}
	if input.Active != nil {
		hmo.Active = *input.Active
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		hmo.LastModifiedBy = actor
	}

	if err := s.db.WithContext(ctx).Create(hmo).Error; err != nil {
		return nil, fmt.Errorf("hmo service: create: %w", err)
	}
	return hmo, nil
}

// GetByID loads an HMO.
func (s *HMOService) GetByID(ctx context.Context, id uint) (*models.HMO, error) {
	ctx = ensureContext(ctx)

	var hmo models.HMO
	err := s.db.WithContext(ctx).Take(&hmo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHMONotFound
	}
	if err != nil {
		return nil, fmt.Errorf("hmo service: get: %w", err)
	}
	return &hmo, nil
}

// List retrieves HMOs matching the filters with pagination.
func (s *HMOService) List(ctx context.Context, opts ListHMOOptions) ([]models.HMO, int64, error) {
	ctx = ensureContext(ctx)
	page, perPage := pageWindow(opts.Page, opts.PageSize)

	query := s.db.WithContext(ctx).Model(&models.HMO{})
	if opts.Active != nil {
		query = query.Where("active = ?", *opts.Active)
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(short_name) LIKE ? OR LOWER(long_name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("hmo service: count: %w", err)
	}

	var hmos []models.HMO
	if err := query.
		Order("short_name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&hmos).Error; err != nil {
		return nil, 0, fmt.Errorf("hmo service: list: %w", err)
	}

	return hmos, total, nil
}

// Update persists changed HMO fields.
func (s *HMOService) Update(ctx context.Context, id uint, input HMOInput) (*models.HMO, error) {
	ctx = ensureContext(ctx)

	var hmo models.HMO
	err := s.db.WithContext(ctx).Take(&hmo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHMONotFound
	}
	if err != nil {
		return nil, fmt.Errorf("hmo service: load: %w", err)
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(input.ShortName); v != "" && v != hmo.ShortName {
		updates["short_name"] = v
	}
	if v := strings.TrimSpace(input.LongName); v != "" && v != hmo.LongName {
		updates["long_name"] = v
	}
	if v := strings.TrimSpace(input.Address); v != hmo.Address {
		updates["address"] = v
	}
	if v := strings.TrimSpace(input.TaxAccountNumber); v != hmo.TaxAccountNumber {
		updates["tax_account_number"] = v
	}
	if v := strings.TrimSpace(input.ContactNos); v != hmo.ContactNos {
		updates["contact_nos"] = v
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	if len(updates) == 0 {
		return &hmo, nil
	}
	if actor := strings.TrimSpace(input.Actor); actor != "" {
		updates["last_modified_by"] = actor
	}

	if err := s.db.WithContext(ctx).Model(&hmo).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("hmo service: update: %w", err)
	}
	if err := s.db.WithContext(ctx).Take(&hmo, id).Error; err != nil {
		return nil, fmt.Errorf("hmo service: reload: %w", err)
	}
	return &hmo, nil
}

// Delete removes an HMO.
func (s *HMOService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.HMO{}, id)
	if res.Error != nil {
		return fmt.Errorf("hmo service: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrHMONotFound
	}
	return nil
}
