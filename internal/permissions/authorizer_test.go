package permissions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/database"
	"github.com/dnc-ph/clinic-backend/internal/database/testutil"
	"github.com/dnc-ph/clinic-backend/internal/models"
)

func seededAuthorizer(t *testing.T) (*Authorizer, *gorm.DB) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	authorizer, err := NewAuthorizer(db)
	require.NoError(t, err)
	return authorizer, db
}

func roleByName(t *testing.T, db *gorm.DB, name string) models.Role {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where("name = ?", name).Take(&role).Error)
	return role
}

func grantEdge(t *testing.T, db *gorm.DB, roleID uint, resource string, action models.Action) models.RolePermission {
	t.Helper()

	var perm models.Permission
	require.NoError(t, db.
		Joins("JOIN data_objects ON data_objects.id = permissions.data_object_id").
		Where("data_objects.name = ? AND permissions.action = ?", resource, action).
		Take(&perm).Error)

	var edge models.RolePermission
	require.NoError(t, db.Where("role_id = ? AND permission_id = ?", roleID, perm.ID).Take(&edge).Error)
	return edge
}

func TestAdministratorHoldsEveryGrant(t *testing.T) {
	authorizer, db := seededAuthorizer(t)
	admin := roleByName(t, db, database.RoleAdministrator)

	for _, resource := range database.CatalogResources {
		for _, action := range models.AllActions() {
			ok, err := authorizer.RoleHasPermission(context.Background(), admin.ID, resource, action)
			require.NoError(t, err)
			require.True(t, ok, "expected admin grant on %s.%s", resource, action)
		}
	}
}

func TestNoPermsRoleIsDeniedEverything(t *testing.T) {
	authorizer, db := seededAuthorizer(t)
	noPerms := roleByName(t, db, database.RoleNoPerms)

	for _, resource := range database.CatalogResources {
		for _, action := range models.AllActions() {
			ok, err := authorizer.RoleHasPermission(context.Background(), noPerms.ID, resource, action)
			require.NoError(t, err)
			require.False(t, ok, "expected denial on %s.%s", resource, action)
		}
	}
}

func TestTogglingActiveFlipsTheDecision(t *testing.T) {
	authorizer, db := seededAuthorizer(t)
	admin := roleByName(t, db, database.RoleAdministrator)

	ok, err := authorizer.RoleHasPermission(context.Background(), admin.ID, "user", models.ActionCreate)
	require.NoError(t, err)
	require.True(t, ok)

	edge := grantEdge(t, db, admin.ID, "user", models.ActionCreate)
	require.NoError(t, db.Model(&edge).Update("active", false).Error)

	ok, err = authorizer.RoleHasPermission(context.Background(), admin.ID, "user", models.ActionCreate)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, db.Model(&edge).Update("active", true).Error)

	ok, err = authorizer.RoleHasPermission(context.Background(), admin.ID, "user", models.ActionCreate)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRoleHasPermissionIsIdempotent(t *testing.T) {
	authorizer, db := seededAuthorizer(t)
	admin := roleByName(t, db, database.RoleAdministrator)

	for i := 0; i < 5; i++ {
		ok, err := authorizer.RoleHasPermission(context.Background(), admin.ID, "hmo", models.ActionRead)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestUnknownResourceIsDeniedNotErrored(t *testing.T) {
	authorizer, db := seededAuthorizer(t)
	admin := roleByName(t, db, database.RoleAdministrator)

	ok, err := authorizer.RoleHasPermission(context.Background(), admin.ID, "no_such_object", models.ActionRead)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestInvalidInputsAreRejected(t *testing.T) {
	authorizer, db := seededAuthorizer(t)
	admin := roleByName(t, db, database.RoleAdministrator)

	_, err := authorizer.RoleHasPermission(context.Background(), admin.ID, "", models.ActionRead)
	require.Error(t, err)

	_, err = authorizer.RoleHasPermission(context.Background(), admin.ID, "user", models.Action("write"))
	require.Error(t, err)
}

func TestMenuMapMatchesReadGrantsExactly(t *testing.T) {
	authorizer, db := seededAuthorizer(t)
	admin := roleByName(t, db, database.RoleAdministrator)

	// Revoke one read grant so the map has something to exclude.
	edge := grantEdge(t, db, admin.ID, "dentist", models.ActionRead)
	require.NoError(t, db.Model(&edge).Update("active", false).Error)

	menu, err := authorizer.BuildMenuActivationMap(context.Background(), admin.ID)
	require.NoError(t, err)

	for name, state := range menu {
		require.Equal(t, MenuEnabled, state)
		ok, err := authorizer.RoleHasPermission(context.Background(), admin.ID, name, models.ActionRead)
		require.NoError(t, err)
		require.True(t, ok, "menu entry %q must hold a read grant", name)
	}

	for _, resource := range database.CatalogResources {
		ok, err := authorizer.RoleHasPermission(context.Background(), admin.ID, resource, models.ActionRead)
		require.NoError(t, err)
		_, inMenu := menu[resource]
		require.Equal(t, ok, inMenu, "menu membership for %q must equal the read grant", resource)
	}

	require.NotContains(t, menu, "dentist")
}

func TestMenuMapForNoPermsRoleIsEmpty(t *testing.T) {
	authorizer, db := seededAuthorizer(t)
	noPerms := roleByName(t, db, database.RoleNoPerms)

	menu, err := authorizer.BuildMenuActivationMap(context.Background(), noPerms.ID)
	require.NoError(t, err)
	require.Empty(t, menu)
}
