package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
	apperrors "github.com/dnc-ph/clinic-backend/pkg/errors"
)

// ErrPermissionNotFound indicates the (resource, action) pair is not in the
// permission catalog.
var ErrPermissionNotFound = apperrors.New("PERMISSION_NOT_FOUND", "Permission not found", http.StatusNotFound)

// GrantRef names one capability by its external key.
type GrantRef struct {
	Resource string        `json:"resource"`
	Action   models.Action `json:"action"`
}

// GrantView is one row of a role's grant sheet: every catalog permission
// appears exactly once, active or not. Permissions with no edge row read as
// inactive.
type GrantView struct {
	PermissionID   uint          `json:"permission_id"`
	Resource       string        `json:"resource"`
	Action         models.Action `json:"action"`
	Active         bool          `json:"active"`
	LastModifiedBy string        `json:"last_modified_by,omitempty"`
	LastModifiedOn *time.Time    `json:"last_modified_on,omitempty"`
}

// GrantService manages the role-permission edges. Revocation clears the
// active flag; edge rows are never deleted while the role exists, so the
// grant history keeps its modifier trail.
type GrantService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewGrantService constructs a GrantService.
func NewGrantService(db *gorm.DB, audit *AuditService) (*GrantService, error) {
	if db == nil {
		return nil, errors.New("grant service: db is required")
	}
	return &GrantService{db: db, audit: audit}, nil
}

// ListForRole returns the role's full grant sheet ordered by resource then
// action.
func (s *GrantService) ListForRole(ctx context.Context, roleID uint) ([]GrantView, error) {
	ctx = ensureContext(ctx)

	if err := s.db.WithContext(ctx).Take(&models.Role{}, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("grant service: load role: %w", err)
	}

	var views []GrantView
	err := s.db.WithContext(ctx).
		Model(&models.Permission{}).
		Select(`permissions.id AS permission_id,
			data_objects.name AS resource,
			permissions.action AS action,
			COALESCE(role_permissions.active, false) AS active,
			COALESCE(role_permissions.last_modified_by, '') AS last_modified_by,
			role_permissions.last_modified_on AS last_modified_on`).
		Joins("JOIN data_objects ON data_objects.id = permissions.data_object_id").
		Joins("LEFT JOIN role_permissions ON role_permissions.permission_id = permissions.id AND role_permissions.role_id = ?", roleID).
		Order("data_objects.name ASC, permissions.action ASC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("grant service: list grants: %w", err)
	}

	return views, nil
}

// SetGrant activates or deactivates a single grant, creating the edge row if
// it does not exist yet.
func (s *GrantService) SetGrant(ctx context.Context, roleID uint, ref GrantRef, active bool, actor string) error {
	ctx = ensureContext(ctx)

	if err := s.db.WithContext(ctx).Take(&models.Role{}, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("grant service: load role: %w", err)
	}

	permID, err := s.resolvePermission(ctx, s.db, ref)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.upsertEdge(tx, roleID, permID, active, actor); err != nil {
			return err
		}
		recordAudit(s.audit, ctx, AuditEntry{
			Email:    actor,
			Action:   "grant.set",
			Resource: strings.TrimSpace(ref.Resource),
			Result:   AuditResultSuccess,
		})
		return nil
	})
}

// ReplaceGrants rewrites a role's entire grant sheet in one transaction:
// every referenced permission becomes active, every other catalog permission
// the role has an edge for becomes inactive. A failure partway leaves the
// previous sheet intact.
func (s *GrantService) ReplaceGrants(ctx context.Context, roleID uint, refs []GrantRef, actor string) error {
	ctx = ensureContext(ctx)

	if err := s.db.WithContext(ctx).Take(&models.Role{}, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("grant service: load role: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wanted := make(map[uint]struct{}, len(refs))
		for _, ref := range refs {
			permID, err := s.resolvePermission(ctx, tx, ref)
			if err != nil {
				return err
			}
			wanted[permID] = struct{}{}
		}

		// Deactivate edges falling out of the new sheet.
		deactivate := tx.Model(&models.RolePermission{}).
			Where("role_id = ? AND active = ?", roleID, true)
		if len(wanted) > 0 {
			ids := make([]uint, 0, len(wanted))
			for id := range wanted {
				ids = append(ids, id)
			}
			deactivate = deactivate.Where("permission_id NOT IN ?", ids)
		}
		updates := map[string]any{"active": false}
		if a := strings.TrimSpace(actor); a != "" {
			updates["last_modified_by"] = a
		}
		if err := deactivate.Updates(updates).Error; err != nil {
			return fmt.Errorf("grant service: deactivate grants: %w", err)
		}

		for permID := range wanted {
			if err := s.upsertEdge(tx, roleID, permID, true, actor); err != nil {
				return err
			}
		}

		recordAudit(s.audit, ctx, AuditEntry{
			Email:    actor,
			Action:   "grant.replace",
			Resource: "role_permission",
			Result:   AuditResultSuccess,
		})
		return nil
	})
}

func (s *GrantService) resolvePermission(ctx context.Context, tx *gorm.DB, ref GrantRef) (uint, error) {
	resource := strings.TrimSpace(ref.Resource)
	if resource == "" {
		return 0, apperrors.NewBadRequest("resource is required")
	}
	if !ref.Action.Valid() {
		return 0, apperrors.NewBadRequest(fmt.Sprintf("unknown action %q", ref.Action))
	}

	var perm models.Permission
	err := tx.WithContext(ctx).
		Joins("JOIN data_objects ON data_objects.id = permissions.data_object_id").
		Where("data_objects.name = ? AND permissions.action = ?", resource, ref.Action).
		Take(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrPermissionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("grant service: resolve permission: %w", err)
	}
	return perm.ID, nil
}

func (s *GrantService) upsertEdge(tx *gorm.DB, roleID, permID uint, active bool, actor string) error {
	edge := models.RolePermission{RoleID: roleID, PermissionID: permID}
	if err := tx.Where(&edge).FirstOrCreate(&edge).Error; err != nil {
		return fmt.Errorf("grant service: ensure edge: %w", err)
	}

	updates := map[string]any{"active": active}
	if a := strings.TrimSpace(actor); a != "" {
		updates["last_modified_by"] = a
	}
	if err := tx.Model(&models.RolePermission{}).Where("id = ?", edge.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("grant service: update edge: %w", err)
	}
	return nil
}
