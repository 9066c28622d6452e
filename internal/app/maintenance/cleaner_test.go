package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dnc-ph/clinic-backend/internal/database/testutil"
	"github.com/dnc-ph/clinic-backend/internal/models"
	"github.com/dnc-ph/clinic-backend/internal/services"
)

func TestCleanerRunOncePrunesAgedEntries(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	audit, err := services.NewAuditService(db)
	require.NoError(t, err)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	aged := models.AuditLog{
		Action:    services.AuditActionLogin,
		Result:    services.AuditResultSuccess,
		CreatedAt: now.Add(-100 * 24 * time.Hour),
	}
	fresh := models.AuditLog{
		Action:    services.AuditActionLogin,
		Result:    services.AuditResultSuccess,
		CreatedAt: now.Add(-24 * time.Hour),
	}
	require.NoError(t, db.Create(&aged).Error)
	require.NoError(t, db.Create(&fresh).Error)

	cleaner := NewCleaner(audit,
		WithNow(func() time.Time { return now }),
		WithRetention(90*24*time.Hour),
	)
	require.NoError(t, cleaner.RunOnce(context.Background()))

	var remaining []models.AuditLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, fresh.ID, remaining[0].ID)
}

func TestCleanerWithoutAuditServiceIsNoop(t *testing.T) {
	cleaner := NewCleaner(nil)
	require.NoError(t, cleaner.Start())
	require.NoError(t, cleaner.RunOnce(context.Background()))
	cleaner.Stop()
}

func TestCleanerRejectsBadSchedule(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	audit, err := services.NewAuditService(db)
	require.NoError(t, err)

	cleaner := NewCleaner(audit, WithSchedule("not a cron spec"))
	require.Error(t, cleaner.Start())
}
