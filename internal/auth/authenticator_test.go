package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/database"
	"github.com/dnc-ph/clinic-backend/internal/database/testutil"
	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/internal/permissions"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *gorm.DB, *TokenService) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())

	tokens, err := NewTokenService(TokenConfig{Secret: "test-secret", Issuer: "dnc"})
	require.NoError(t, err)

	authorizer, err := permissions.NewAuthorizer(db)
	require.NoError(t, err)

	authn, err := NewAuthenticator(db, tokens, authorizer)
	require.NoError(t, err)

	return authn, db, tokens
}

func TestAuthenticateAdminSucceeds(t *testing.T) {
	authn, db, tokens := newTestAuthenticator(t)

	session, err := authn.Authenticate(context.Background(), database.DefaultAdminEmail, database.DefaultAdminPassword)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", database.DefaultAdminEmail).Take(&user).Error)

	require.Equal(t, user.ID, session.UserID)
	require.Equal(t, user.Email, session.Email)
	require.Equal(t, user.RoleID, session.RoleID)
	require.Equal(t, database.RoleAdministrator, session.RoleName)
	require.NotEmpty(t, session.Token)

	claims, err := tokens.Validate(session.Token)
	require.NoError(t, err)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, user.RoleID, claims.RoleID)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestAuthenticateEmbedsFreshMenuMap(t *testing.T) {
	authn, _, _ := newTestAuthenticator(t)

	session, err := authn.Authenticate(context.Background(), database.DefaultAdminEmail, database.DefaultAdminPassword)
	require.NoError(t, err)

	require.Len(t, session.MenuMap, len(database.CatalogResources))
	for _, resource := range database.CatalogResources {
		require.Equal(t, permissions.MenuEnabled, session.MenuMap[resource])
	}
}

func TestAuthenticateBadPasswordLooksLikeUnknownEmail(t *testing.T) {
	authn, _, _ := newTestAuthenticator(t)

	for _, attempt := range []struct{ email, password string }{
		{database.DefaultAdminEmail, "wrong-password"},
		{database.DefaultAdminEmail, "passwor"},
		{database.DefaultAdminEmail, ""},
		{"nobody@dnc.com.ph", database.DefaultAdminPassword},
		{"", database.DefaultAdminPassword},
	} {
		_, err := authn.Authenticate(context.Background(), attempt.email, attempt.password)
		require.ErrorIs(t, err, ErrInvalidCredentials, "attempt %q/%q", attempt.email, attempt.password)
	}
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	authn, db, _ := newTestAuthenticator(t)

	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", database.DefaultAdminEmail).
		Update("active", false).Error)

	_, err := authn.Authenticate(context.Background(), database.DefaultAdminEmail, database.DefaultAdminPassword)
	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthenticateDanglingRoleIsIntegrityFault(t *testing.T) {
	authn, db, _ := newTestAuthenticator(t)

	// Point the user at a role id that does not exist. Foreign keys are
	// bypassed deliberately to simulate a provisioning bug.
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", database.DefaultAdminEmail).
		Update("role_id", 9999).Error)

	_, err := authn.Authenticate(context.Background(), database.DefaultAdminEmail, database.DefaultAdminPassword)
	require.ErrorIs(t, err, ErrRoleIntegrity)
	require.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestTokenIssuedBeforeRevocationStillAuthenticates(t *testing.T) {
	authn, db, tokens := newTestAuthenticator(t)

	session, err := authn.Authenticate(context.Background(), database.DefaultAdminEmail, database.DefaultAdminPassword)
	require.NoError(t, err)

	// Revoke every grant after the token was minted.
	require.NoError(t, db.Model(&models.RolePermission{}).
		Where("role_id = ?", session.RoleID).
		Update("active", false).Error)

	// The bearer token remains valid: validity is cryptographic, not stored.
	claims, err := tokens.Validate(session.Token)
	require.NoError(t, err)
	require.Equal(t, session.RoleID, claims.RoleID)

	// But the next authorization check sees the revocation.
	authorizer, err := permissions.NewAuthorizer(db)
	require.NoError(t, err)
	ok, err := authorizer.RoleHasPermission(context.Background(), claims.RoleID, "user", models.ActionRead)
	require.NoError(t, err)
	require.False(t, ok)
}
