package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dnc-ph/clinic-backend/internal/database/testutil"
	"github.com/dnc-ph/clinic-backend/internal/models"
)

func TestAuditServiceLogAndList(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewAuditService(db)
	require.NoError(t, err)

	ctx := context.Background()
	userID := uint(7)

	require.NoError(t, svc.Log(ctx, AuditEntry{
		UserID:    &userID,
		Email:     "Admin@DNC.com.ph",
		Action:    AuditActionLogin,
		Result:    AuditResultSuccess,
		IPAddress: "10.0.0.1",
		RequestID: "req-1",
	}))
	require.NoError(t, svc.Log(ctx, AuditEntry{
		Email:  "intruder@example.com",
		Action: AuditActionLogin,
		Result: AuditResultFailure,
	}))
	require.NoError(t, svc.Log(ctx, AuditEntry{
		Email:    "admin@dnc.com.ph",
		Action:   AuditActionPermissionDenied,
		Resource: "dentist",
		Result:   AuditResultDenied,
	}))

	logs, total, err := svc.List(ctx, AuditListOptions{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, logs, 3)

	// Email is normalised to lower case on write.
	logs, total, err = svc.List(ctx, AuditListOptions{Filters: AuditFilters{Email: "admin@dnc.com.ph"}})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	logs, total, err = svc.List(ctx, AuditListOptions{Filters: AuditFilters{Result: AuditResultFailure}})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "intruder@example.com", logs[0].Email)

	logs, _, err = svc.List(ctx, AuditListOptions{Filters: AuditFilters{Action: AuditActionPermissionDenied}})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "dentist", logs[0].Resource)
}

func TestAuditServiceRequiresActionAndResult(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewAuditService(db)
	require.NoError(t, err)

	require.Error(t, svc.Log(context.Background(), AuditEntry{Result: AuditResultSuccess}))
	require.Error(t, svc.Log(context.Background(), AuditEntry{Action: AuditActionLogin}))
}

func TestAuditServicePruneOlderThan(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewAuditService(db)
	require.NoError(t, err)

	ctx := context.Background()
	old := models.AuditLog{
		Action:    AuditActionLogin,
		Result:    AuditResultSuccess,
		CreatedAt: time.Now().Add(-90 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, svc.Log(ctx, AuditEntry{Action: AuditActionLogin, Result: AuditResultSuccess}))

	removed, err := svc.PruneOlderThan(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	var remaining int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&remaining).Error)
	require.EqualValues(t, 1, remaining)
}
