package service

import (
	"context"
	"testing"

	"eventreg/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAllocatorStartsYearSequence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := &models.Attendee{Email: "first@example.com"}
	var assigned bool
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		assigned, err = f.ids.Assign(ctx, tx, a)
		return err
	})
	require.NoError(t, err)
	assert.True(t, assigned)
	assert.Equal(t, "DWR-2601", *a.RegistrationID)
}

func TestAllocatorContinuesFromStoredID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	prev := "DWR-0005"
	require.NoError(t, f.attendees.Create(ctx, &models.Attendee{
		Email: "prev@example.com", FirstName: "P", LastName: "Q", Phone: "08011111111",
		Department: "Law", LevelOfStudy: 100, Category: "beginner", RegistrationID: &prev, Paid: true,
	}))

	a := &models.Attendee{}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		_, err := f.ids.Assign(ctx, tx, a)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "DWR-0006", *a.RegistrationID)
}

func TestAllocatorFallsBackOnMalformedID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	prev := "DWR0005"
	require.NoError(t, f.attendees.Create(ctx, &models.Attendee{
		Email: "prev@example.com", FirstName: "P", LastName: "Q", Phone: "08011111111",
		Department: "Law", LevelOfStudy: 100, Category: "beginner", RegistrationID: &prev,
	}))

	a := &models.Attendee{}
	_, err := f.ids.Assign(ctx, f.db, a)
	require.NoError(t, err)
	assert.Equal(t, "DWR-2601", *a.RegistrationID)
}

func TestAllocatorKeepsExistingID(t *testing.T) {
	f := newFixture(t)
	id := "DWR-0042"
	a := &models.Attendee{RegistrationID: &id}

	assigned, err := f.ids.Assign(context.Background(), f.db, a)
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Equal(t, "DWR-0042", *a.RegistrationID)
}
