package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
	apperrors "github.com/dnc-ph/clinic-backend/pkg/errors"
)

// Data object names are stable external keys referenced by route guards, so
// they are restricted to snake_case identifiers.
var dataObjectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// DataObjectView pairs a catalog entry with its permission rows.
type DataObjectView struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Permissions []models.Permission `json:"permissions"`
}

// DataObjectService manages the protected-resource catalog. Registering a
// resource provisions its full permission set so grants can be activated
// without a separate step.
type DataObjectService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewDataObjectService constructs a DataObjectService.
func NewDataObjectService(db *gorm.DB, audit *AuditService) (*DataObjectService, error) {
	if db == nil {
		return nil, errors.New("data object service: db is required")
	}
	return &DataObjectService{db: db, audit: audit}, nil
}

// List returns the catalog with permissions, ordered by name.
func (s *DataObjectService) List(ctx context.Context) ([]DataObjectView, error) {
	ctx = ensureContext(ctx)

	var objects []models.DataObject
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&objects).Error; err != nil {
		return nil, fmt.Errorf("data object service: list catalog: %w", err)
	}

	views := make([]DataObjectView, 0, len(objects))
	for _, obj := range objects {
		var perms []models.Permission
		if err := s.db.WithContext(ctx).
			Where("data_object_id = ?", obj.ID).
			Order("action ASC").
			Find(&perms).Error; err != nil {
			return nil, fmt.Errorf("data object service: load permissions: %w", err)
		}
		views = append(views, DataObjectView{ID: obj.ID, Name: obj.Name, Permissions: perms})
	}

	return views, nil
}

// Register adds a resource to the catalog together with one permission per
// action. Registration is idempotent on the name.
func (s *DataObjectService) Register(ctx context.Context, name, actor string) (*DataObjectView, error) {
	ctx = ensureContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}
	if !dataObjectNamePattern.MatchString(name) {
		return nil, apperrors.NewBadRequest("name must be a snake_case identifier")
	}

	var view DataObjectView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		obj := models.DataObject{Name: name}
		if err := tx.Where(&obj).FirstOrCreate(&obj).Error; err != nil {
			return fmt.Errorf("data object service: create object: %w", err)
		}

		perms := make([]models.Permission, 0, len(models.AllActions()))
		for _, action := range models.AllActions() {
			perm := models.Permission{DataObjectID: obj.ID, Action: action}
			if err := tx.Where(&perm).FirstOrCreate(&perm).Error; err != nil {
				return fmt.Errorf("data object service: create permission: %w", err)
			}
			perms = append(perms, perm)
		}

		view = DataObjectView{ID: obj.ID, Name: obj.Name, Permissions: perms}
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordAudit(s.audit, ctx, AuditEntry{
		Email:    actor,
		Action:   "data_object.register",
		Resource: name,
		Result:   AuditResultSuccess,
	})

	return &view, nil
}
