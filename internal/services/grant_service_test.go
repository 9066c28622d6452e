package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/database"
	"github.com/dnc-ph/clinic-backend/internal/database/testutil"
	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/internal/permissions"
)

func seededGrantService(t *testing.T) (*GrantService, *permissions.Authorizer, *gorm.DB) {
	t.Helper()
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := NewGrantService(db, nil)
	require.NoError(t, err)
	authorizer, err := permissions.NewAuthorizer(db)
	require.NoError(t, err)
	return svc, authorizer, db
}

func TestGrantServiceListForRoleCoversCatalog(t *testing.T) {
	svc, _, db := seededGrantService(t)
	ctx := context.Background()

	adminID := seededRoleID(t, db, database.RoleAdministrator)
	sheet, err := svc.ListForRole(ctx, adminID)
	require.NoError(t, err)
	require.Len(t, sheet, len(database.CatalogResources)*len(models.AllActions()))
	for _, row := range sheet {
		require.True(t, row.Active, "administrator grant for %s:%s should be active", row.Resource, row.Action)
	}

	noPermsID := seededRoleID(t, db, database.RoleNoPerms)
	sheet, err = svc.ListForRole(ctx, noPermsID)
	require.NoError(t, err)
	require.Len(t, sheet, len(database.CatalogResources)*len(models.AllActions()))
	for _, row := range sheet {
		require.False(t, row.Active, "noperms grant for %s:%s should be inactive", row.Resource, row.Action)
	}

	_, err = svc.ListForRole(ctx, 9999)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestGrantServiceSetGrantTogglesDecision(t *testing.T) {
	svc, authorizer, db := seededGrantService(t)
	ctx := context.Background()

	noPermsID := seededRoleID(t, db, database.RoleNoPerms)
	ref := GrantRef{Resource: "dentist", Action: models.ActionRead}

	allowed, err := authorizer.RoleHasPermission(ctx, noPermsID, "dentist", models.ActionRead)
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, svc.SetGrant(ctx, noPermsID, ref, true, "admin@dnc.com.ph"))

	allowed, err = authorizer.RoleHasPermission(ctx, noPermsID, "dentist", models.ActionRead)
	require.NoError(t, err)
	require.True(t, allowed)

	// Revocation clears the flag but keeps the edge row.
	require.NoError(t, svc.SetGrant(ctx, noPermsID, ref, false, "admin@dnc.com.ph"))

	allowed, err = authorizer.RoleHasPermission(ctx, noPermsID, "dentist", models.ActionRead)
	require.NoError(t, err)
	require.False(t, allowed)

	var edges int64
	require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ?", noPermsID).Count(&edges).Error)
	require.EqualValues(t, 1, edges)

	var edge models.RolePermission
	require.NoError(t, db.Where("role_id = ?", noPermsID).Take(&edge).Error)
	require.Equal(t, "admin@dnc.com.ph", edge.LastModifiedBy)
}

func TestGrantServiceSetGrantValidation(t *testing.T) {
	svc, _, db := seededGrantService(t)
	ctx := context.Background()
	noPermsID := seededRoleID(t, db, database.RoleNoPerms)

	require.ErrorIs(t,
		svc.SetGrant(ctx, 9999, GrantRef{Resource: "dentist", Action: models.ActionRead}, true, ""),
		ErrRoleNotFound)
	require.ErrorIs(t,
		svc.SetGrant(ctx, noPermsID, GrantRef{Resource: "battleship", Action: models.ActionRead}, true, ""),
		ErrPermissionNotFound)
	require.Error(t,
		svc.SetGrant(ctx, noPermsID, GrantRef{Resource: "dentist", Action: "explode"}, true, ""))
}

func TestGrantServiceReplaceGrants(t *testing.T) {
	svc, authorizer, db := seededGrantService(t)
	ctx := context.Background()

	adminID := seededRoleID(t, db, database.RoleAdministrator)

	// Shrink the administrator sheet down to read-only on two resources.
	refs := []GrantRef{
		{Resource: "dentist", Action: models.ActionRead},
		{Resource: "hmo", Action: models.ActionRead},
	}
	require.NoError(t, svc.ReplaceGrants(ctx, adminID, refs, "admin@dnc.com.ph"))

	allowed, err := authorizer.RoleHasPermission(ctx, adminID, "dentist", models.ActionRead)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = authorizer.RoleHasPermission(ctx, adminID, "dentist", models.ActionDelete)
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, err = authorizer.RoleHasPermission(ctx, adminID, "user", models.ActionRead)
	require.NoError(t, err)
	require.False(t, allowed)

	// Edge rows survive deactivation.
	var edges int64
	require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ?", adminID).Count(&edges).Error)
	require.EqualValues(t, len(database.CatalogResources)*len(models.AllActions()), edges)
}

func TestGrantServiceReplaceGrantsIsAtomic(t *testing.T) {
	svc, authorizer, db := seededGrantService(t)
	ctx := context.Background()

	adminID := seededRoleID(t, db, database.RoleAdministrator)

	// One bad reference rolls back the whole rewrite.
	refs := []GrantRef{
		{Resource: "dentist", Action: models.ActionRead},
		{Resource: "battleship", Action: models.ActionRead},
	}
	require.ErrorIs(t, svc.ReplaceGrants(ctx, adminID, refs, ""), ErrPermissionNotFound)

	allowed, err := authorizer.RoleHasPermission(ctx, adminID, "user", models.ActionDelete)
	require.NoError(t, err)
	require.True(t, allowed, "failed rewrite must leave the previous sheet intact")
}
