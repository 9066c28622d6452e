package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnc-ph/clinic-backend/internal/database/testutil"
)

func TestHMOServiceLifecycle(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewHMOService(db)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = svc.Create(ctx, HMOInput{LongName: "Maxicare Healthcare Corp."})
	require.Error(t, err, "short_name is required")

	hmo, err := svc.Create(ctx, HMOInput{
		ShortName:  "Maxicare",
		LongName:   "Maxicare Healthcare Corp.",
		Address:    "Makati City",
		ContactNos: "8582-1900",
		Actor:      "admin@dnc.com.ph",
	})
	require.NoError(t, err)
	require.True(t, hmo.Active)
	require.Equal(t, "admin@dnc.com.ph", hmo.LastModifiedBy)

	_, err = svc.Create(ctx, HMOInput{ShortName: "Intellicare", LongName: "Asalus Corporation"})
	require.NoError(t, err)

	hmos, total, err := svc.List(ctx, ListHMOOptions{Query: "maxi"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, hmo.ID, hmos[0].ID)

	inactive := false
	updated, err := svc.Update(ctx, hmo.ID, HMOInput{Active: &inactive, Actor: "admin@dnc.com.ph"})
	require.NoError(t, err)
	require.False(t, updated.Active)

	active := true
	_, total, err = svc.List(ctx, ListHMOOptions{Active: &active})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	require.NoError(t, svc.Delete(ctx, hmo.ID))
	_, err = svc.GetByID(ctx, hmo.ID)
	require.ErrorIs(t, err, ErrHMONotFound)
}

func TestDentistServiceListOrdersBySurname(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewDentistService(db)
	require.NoError(t, err)

	ctx := context.Background()
	for _, d := range []DentistInput{
		{LastName: "Santos", GivenName: "Maria", Email: "MSantos@dnc.com.ph"},
		{LastName: "Reyes", GivenName: "Jose"},
		{LastName: "Cruz", GivenName: "Ana"},
	} {
		_, err := svc.Create(ctx, d)
		require.NoError(t, err)
	}

	dentists, total, err := svc.List(ctx, ListDentistOptions{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Equal(t, "Cruz", dentists[0].LastName)
	require.Equal(t, "Reyes", dentists[1].LastName)
	require.Equal(t, "Santos", dentists[2].LastName)

	// Email is normalised to lower case.
	dentists, _, err = svc.List(ctx, ListDentistOptions{Query: "msantos"})
	require.NoError(t, err)
	require.Len(t, dentists, 1)
	require.Equal(t, "msantos@dnc.com.ph", dentists[0].Email)
}

func TestClinicServiceLifecycle(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewClinicService(db)
	require.NoError(t, err)

	ctx := context.Background()
	clinic, err := svc.Create(ctx, ClinicInput{
		Name:      "Smile Studio Katipunan",
		OwnerName: "Dr. Santos",
		Address:   "Katipunan Ave, Quezon City",
		ZipCode:   "1108",
		Email:     "Hello@SmileStudio.ph",
	})
	require.NoError(t, err)
	require.Equal(t, "hello@smilestudio.ph", clinic.Email)

	remarks := ClinicInput{Remarks: "Closed on holidays"}
	updated, err := svc.Update(ctx, clinic.ID, remarks)
	require.NoError(t, err)
	require.Equal(t, "Closed on holidays", updated.Remarks)

	clinics, total, err := svc.List(ctx, ListClinicOptions{Query: "quezon"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, clinic.ID, clinics[0].ID)

	_, err = svc.Update(ctx, 9999, remarks)
	require.ErrorIs(t, err, ErrClinicNotFound)
}

func TestLookupServicesLifecycle(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	ctx := context.Background()

	servicesSvc, err := NewDentalServiceService(db)
	require.NoError(t, err)

	offering, err := servicesSvc.Create(ctx, LookupInput{Name: "Prophylaxis", Description: "Oral cleaning"})
	require.NoError(t, err)
	require.True(t, offering.Active)

	_, err = servicesSvc.Create(ctx, LookupInput{Description: "missing name"})
	require.Error(t, err)

	results, total, err := servicesSvc.List(ctx, ListLookupOptions{Query: "cleaning"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, offering.ID, results[0].ID)

	capsSvc, err := NewCapabilityService(db)
	require.NoError(t, err)

	capability, err := capsSvc.Create(ctx, LookupInput{Name: "Panoramic X-Ray"})
	require.NoError(t, err)

	inactive := false
	updatedCap, err := capsSvc.Update(ctx, capability.ID, LookupInput{Active: &inactive, Actor: "admin@dnc.com.ph"})
	require.NoError(t, err)
	require.False(t, updatedCap.Active)
	require.Equal(t, "admin@dnc.com.ph", updatedCap.LastModifiedBy)

	require.NoError(t, capsSvc.Delete(ctx, capability.ID))
	require.ErrorIs(t, capsSvc.Delete(ctx, capability.ID), ErrCapabilityNotFound)
}

func TestDataObjectServiceRegister(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := NewDataObjectService(db, nil)
	require.NoError(t, err)

	ctx := context.Background()

	catalog, err := svc.List(ctx)
	require.NoError(t, err)
	initial := len(catalog)
	require.NotZero(t, initial)
	for _, entry := range catalog {
		require.Len(t, entry.Permissions, 4)
	}

	view, err := svc.Register(ctx, "patient_record", "admin@dnc.com.ph")
	require.NoError(t, err)
	require.Len(t, view.Permissions, 4)

	// Registration is idempotent on the name.
	again, err := svc.Register(ctx, "patient_record", "admin@dnc.com.ph")
	require.NoError(t, err)
	require.Equal(t, view.ID, again.ID)

	catalog, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, initial+1)

	_, err = svc.Register(ctx, "Patient Record", "")
	require.Error(t, err)
}
