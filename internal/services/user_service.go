package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/pkg/crypto"
	apperrors "github.com/dnc-ph/clinic-backend/pkg/errors"
)

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperrors.New("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	// ErrRoleNotFound indicates the referenced role does not exist.
	ErrRoleNotFound = apperrors.New("ROLE_NOT_FOUND", "Role not found", http.StatusNotFound)
)

// CreateUserInput describes the fields accepted when creating a user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	RoleID   uint
	Active   *bool
}

// UpdateUserInput enumerates mutable user attributes. Password changes go
// through SetPassword so the hash never transits this path.
type UpdateUserInput struct {
	Name   *string
	Email  *string
	RoleID *uint
	Active *bool
}

// UserFilters captures listing filters.
type UserFilters struct {
	Active *bool
	RoleID uint
	Query  string
}

// ListUsersOptions controls pagination for user listing.
type ListUsersOptions struct {
	Page     int
	PageSize int
	Filters  UserFilters
}

// UserService manages the account lifecycle: provisioning, role assignment,
// activation, and password rotation.
type UserService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewUserService constructs a UserService instance.
func NewUserService(db *gorm.DB, audit *AuditService) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db, audit: audit}, nil
}

// Create provisions a new account with an Argon2id-hashed password. The
// referenced role must already exist.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}
	if email == "" {
		return nil, apperrors.NewBadRequest("email is required")
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, apperrors.NewBadRequest("password is required")
	}
	if input.RoleID == 0 {
		return nil, apperrors.NewBadRequest("role_id is required")
	}

	if err := s.db.WithContext(ctx).Take(&models.Role{}, input.RoleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("user service: load role: %w", err)
	}

	hashed, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		RoleID:   input.RoleID,
		Active:   true,
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewBadRequest("email already exists")
		}
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	recordAudit(s.audit, ctx, AuditEntry{
		UserID:   &user.ID,
		Email:    user.Email,
		Action:   "user.create",
		Resource: "user",
		Result:   AuditResultSuccess,
	})

	return user, nil
}

// GetByID loads a user and their role.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).Preload("Role").Take(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: get user: %w", err)
	}
	return &user, nil
}

// List retrieves users matching the supplied filters with pagination.
func (s *UserService) List(ctx context.Context, opts ListUsersOptions) ([]models.User, int64, error) {
	ctx = ensureContext(ctx)

	page, perPage := pageWindow(opts.Page, opts.PageSize)

	query := s.db.WithContext(ctx).Model(&models.User{})
	if opts.Filters.Active != nil {
		query = query.Where("active = ?", *opts.Filters.Active)
	}
	if opts.Filters.RoleID != 0 {
		query = query.Where("role_id = ?", opts.Filters.RoleID)
	}
	if q := strings.TrimSpace(opts.Filters.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("user service: count users: %w", err)
	}

	var users []models.User
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Preload("Role").
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("user service: list users: %w", err)
	}

	return users, total, nil
}

// Update persists mutable attributes for an existing user.
func (s *UserService) Update(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).Take(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: load user: %w", err)
	}

	updates := map[string]any{}
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" && name != user.Name {
			updates["name"] = name
		}
	}
	if input.Email != nil {
		if email := strings.ToLower(strings.TrimSpace(*input.Email)); email != "" && email != user.Email {
			updates["email"] = email
		}
	}
	if input.RoleID != nil && *input.RoleID != 0 && *input.RoleID != user.RoleID {
		if err := s.db.WithContext(ctx).Take(&models.Role{}, *input.RoleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoleNotFound
			}
			return nil, fmt.Errorf("user service: load role: %w", err)
		}
		updates["role_id"] = *input.RoleID
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	if len(updates) == 0 {
		return &user, nil
	}

	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewBadRequest("email already exists")
		}
		return nil, fmt.Errorf("user service: update user: %w", err)
	}

	if err := s.db.WithContext(ctx).Preload("Role").Take(&user, id).Error; err != nil {
		return nil, fmt.Errorf("user service: reload user: %w", err)
	}

	recordAudit(s.audit, ctx, AuditEntry{
		UserID:   &user.ID,
		Email:    user.Email,
		Action:   "user.update",
		Resource: "user",
		Result:   AuditResultSuccess,
	})

	return &user, nil
}

// SetPassword replaces the stored hash for the given account.
func (s *UserService) SetPassword(ctx context.Context, id uint, password string) error {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(password) == "" {
		return apperrors.NewBadRequest("password is required")
	}

	var user models.User
	err := s.db.WithContext(ctx).Take(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("user service: load user: %w", err)
	}

	hashed, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("user service: hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("user service: set password: %w", err)
	}

	recordAudit(s.audit, ctx, AuditEntry{
		UserID:   &user.ID,
		Email:    user.Email,
		Action:   "user.password_change",
		Resource: "user",
		Result:   AuditResultSuccess,
	})

	return nil
}

// Delete removes the account entirely. Deactivation via Update is the
// preferred path; deletion exists for provisioning mistakes.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("user service: delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
