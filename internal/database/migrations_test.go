package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/pkg/crypto"
)

func openSeededDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:migrations_%s?mode=memory&cache=shared&_foreign_keys=1", t.Name())
	db, err := Open(Config{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, AutoMigrateAndSeed(db))
	return db
}

func TestSeedProvisionsFullPermissionCatalog(t *testing.T) {
	db := openSeededDB(t)

	var objects int64
	require.NoError(t, db.Model(&models.DataObject{}).Count(&objects).Error)
	require.EqualValues(t, len(CatalogResources), objects)

	var perms int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&perms).Error)
	require.EqualValues(t, len(CatalogResources)*len(models.AllActions()), perms)
}

func TestSeedGrantsEverythingToAdministratorOnly(t *testing.T) {
	db := openSeededDB(t)

	var admin, noPerms models.Role
	require.NoError(t, db.Where("name = ?", RoleAdministrator).Take(&admin).Error)
	require.NoError(t, db.Where("name = ?", RoleNoPerms).Take(&noPerms).Error)

	var total, adminGrants, noPermGrants int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&total).Error)
	require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ? AND active = ?", admin.ID, true).Count(&adminGrants).Error)
	require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ?", noPerms.ID).Count(&noPermGrants).Error)

	require.Equal(t, total, adminGrants)
	require.Zero(t, noPermGrants)
}

func TestSeedCreatesAdminUserWithHashedPassword(t *testing.T) {
	db := openSeededDB(t)

	var user models.User
	require.NoError(t, db.Where("email = ?", DefaultAdminEmail).Take(&user).Error)

	require.NotEqual(t, DefaultAdminPassword, user.Password)
	require.True(t, crypto.VerifyPassword(user.Password, DefaultAdminPassword))
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openSeededDB(t)

	require.NoError(t, SeedData(db))

	var perms, users int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&perms).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)

	require.EqualValues(t, len(CatalogResources)*len(models.AllActions()), perms)
	require.EqualValues(t, 1, users)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
}
