package service

import (
	"context"
	"testing"

	"eventreg/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonateOpensCheckoutInMinorUnits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.donations.Donate(ctx, DonorInput{FirstName: "Musa", LastName: "Ade", Email: "Musa@Example.com", Phone: "08021234567", Amount: 5000})
	require.NoError(t, err)
	assert.False(t, res.Donor.Donated)
	assert.Equal(t, "musa@example.com", res.Donor.Email)
	require.Equal(t, 1, f.gateway.count())
	assert.Equal(t, int64(500000), f.gateway.calls[0].AmountMinor)
	assert.Equal(t, "donation", f.gateway.calls[0].Metadata["kind"])

	list, total, err := f.donations.ListDonations(ctx, domain.PaymentInitialized, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.NotNil(t, list[0].Donor)
	assert.Equal(t, res.Donor.ID, list[0].Donor.ID)
}

func TestDonateRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	_, err := f.donations.Donate(context.Background(), DonorInput{FirstName: "Musa", Email: "m@example.com", Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 0, f.gateway.count())
}

func TestDonorAdminLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.donations.Donate(ctx, DonorInput{FirstName: "Musa", LastName: "Ade", Email: "musa@example.com", Phone: "08021234567", Amount: 5000})
	require.NoError(t, err)
	id := res.Donor.ID

	updated, err := f.donations.Update(ctx, id, DonorInput{FirstName: "Musa", LastName: "Adeyemi", Email: "musa@example.com", Phone: "08021234567", Amount: 7000})
	require.NoError(t, err)
	assert.Equal(t, "Adeyemi", updated.LastName)
	assert.Equal(t, int64(7000), updated.Amount)

	list, total, err := f.donations.List(ctx, "Adeyemi", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	require.NoError(t, f.donations.Delete(ctx, id))
	_, err = f.donations.Get(ctx, id)
	assert.ErrorIs(t, err, ErrDonorNotFound)
	assert.ErrorIs(t, f.donations.Delete(ctx, id), ErrDonorNotFound)
	_, err = f.donations.Update(ctx, id, DonorInput{Amount: 1})
	assert.ErrorIs(t, err, ErrDonorNotFound)
}
