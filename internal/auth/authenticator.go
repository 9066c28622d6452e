package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/internal/permissions"
	"github.com/dnc-ph/clinic-backend/pkg/crypto"
)

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike; callers must not let a client tell them apart.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrAccountDisabled signals that the user has been deactivated.
	ErrAccountDisabled = errors.New("auth: account disabled")
	// ErrRoleIntegrity signals a dangling role foreign key. This is a
	// provisioning fault, never user-caused; it is logged and alerted on,
	// not retried.
	ErrRoleIntegrity = errors.New("auth: user role missing")
)

// Session is the successful login result: the signed bearer token, the
// resolved identity, and the freshly computed menu activation map. The map
// travels beside the token, not inside it, so the token stays small and the
// map never goes stale inside a signed payload.
type Session struct {
	UserID   uint                          `json:"user_id"`
	Name     string                        `json:"name"`
	Email    string                        `json:"email"`
	RoleID   uint                          `json:"role_id"`
	RoleName string                        `json:"role_name"`
	Token    string                        `json:"token"`
	MenuMap  permissions.MenuActivationMap `json:"menu_activation_map"`
}

// Authenticator verifies credentials and issues session tokens.
type Authenticator struct {
	db         *gorm.DB
	tokens     *TokenService
	authorizer *permissions.Authorizer
}

// NewAuthenticator builds an authenticator from its collaborators.
func NewAuthenticator(db *gorm.DB, tokens *TokenService, authorizer *permissions.Authorizer) (*Authenticator, error) {
	if db == nil {
		return nil, errors.New("authenticator: db is required")
	}
	if tokens == nil {
		return nil, errors.New("authenticator: token service is required")
	}
	if authorizer == nil {
		return nil, errors.New("authenticator: authorizer is required")
	}
	return &Authenticator{db: db, tokens: tokens, authorizer: authorizer}, nil
}

// Authenticate verifies the email/password pair and, on success, returns a
// session carrying a signed token and the role's menu activation map. The
// whole flow is a pure read plus cryptographic issuance: nothing is
// persisted.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	err := a.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticator: query user: %w", err)
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	if !crypto.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	var role models.Role
	err = a.db.WithContext(ctx).Take(&role, user.RoleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d references role %d", ErrRoleIntegrity, user.ID, user.RoleID)
	}
	if err != nil {
		return nil, fmt.Errorf("authenticator: query role: %w", err)
	}

	token, err := a.tokens.Issue(user.ID, user.Email, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("authenticator: issue token: %w", err)
	}

	menu, err := a.authorizer.BuildMenuActivationMap(ctx, role.ID)
	if err != nil {
		return nil, fmt.Errorf("authenticator: build menu map: %w", err)
	}

	return &Session{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		RoleID:   user.RoleID,
		RoleName: role.Name,
		Token:    token,
		MenuMap:  menu,
	}, nil
}
