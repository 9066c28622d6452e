package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/pkg/crypto"
)

// CatalogResources lists every protected resource kind. The permission
// catalog is provisioned as the cross product of this list and the action
// enumeration; adding a resource here is the only step needed to make it
// authorizable.
var CatalogResources = []string{
	"dataobject",
	"permission",
	"user",
	"role",
	"role_permission",
	"dental_service",
	"clinic_capability",
	"hmo",
	"dental_clinic",
	"dentist",
}

// Seed role names. Administrator holds every grant; NoPerms holds none and
// exists to exercise the deny path end to end.
const (
	RoleAdministrator = "Administrator"
	RoleNoPerms       = "NoPerms"
)

// DefaultAdminEmail and DefaultAdminPassword identify the bootstrap account
// created on first start. The password must be rotated after provisioning.
const (
	DefaultAdminEmail    = "admin@dnc.com.ph"
	DefaultAdminPassword = "password"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.DataObject{},
		&models.Permission{},
		&models.Role{},
		&models.RolePermission{},
		&models.User{},
		&models.AuditLog{},
		&models.DentalService{},
		&models.ClinicCapability{},
		&models.HMO{},
		&models.DentalClinic{},
		&models.Dentist{},
	)
}

// SeedData provisions the permission catalog, the seed roles, the
// administrator grant set, and the bootstrap admin user. Every insert is
// idempotent so the helper can run on each start-up.
func SeedData(db *gorm.DB) error {
	if err := seedCatalog(db); err != nil {
		return err
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	if err := seedAdminGrants(db); err != nil {
		return err
	}

	return seedAdminUser(db)
}

func seedCatalog(db *gorm.DB) error {
	for _, name := range CatalogResources {
		var object models.DataObject
		if err := db.Where(models.DataObject{Name: name}).FirstOrCreate(&object).Error; err != nil {
			return fmt.Errorf("seed data object %q: %w", name, err)
		}

		for _, action := range models.AllActions() {
			perm := models.Permission{DataObjectID: object.ID, Action: action}
			if err := db.Where(perm).FirstOrCreate(&models.Permission{}).Error; err != nil {
				return fmt.Errorf("seed permission %s.%s: %w", name, action, err)
			}
		}
	}
	return nil
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: RoleAdministrator, Description: "Administrator Role", Active: true},
		{Name: RoleNoPerms, Description: "No Permissions Role", Active: true},
	}

	for _, role := range roles {
		if err := db.Where(models.Role{Name: role.Name}).Attrs(role).FirstOrCreate(&models.Role{}).Error; err != nil {
			return fmt.Errorf("seed role %q: %w", role.Name, err)
		}
	}
	return nil
}

func seedAdminGrants(db *gorm.DB) error {
	var admin models.Role
	if err := db.Where("name = ?", RoleAdministrator).Take(&admin).Error; err != nil {
		return fmt.Errorf("load administrator role: %w", err)
	}

	var perms []models.Permission
	if err := db.Find(&perms).Error; err != nil {
		return fmt.Errorf("load permission catalog: %w", err)
	}

	for _, perm := range perms {
		edge := models.RolePermission{RoleID: admin.ID, PermissionID: perm.ID}
		if err := db.Where(edge).Attrs(models.RolePermission{Active: true}).FirstOrCreate(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("seed admin grant for permission %d: %w", perm.ID, err)
		}
	}
	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", DefaultAdminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	var admin models.Role
	if err := db.Where("name = ?", RoleAdministrator).Take(&admin).Error; err != nil {
		return fmt.Errorf("load administrator role: %w", err)
	}

	hashed, err := crypto.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := models.User{
		Name:     "Admin",
		Email:    DefaultAdminEmail,
		Password: hashed,
		RoleID:   admin.ID,
		Active:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}
