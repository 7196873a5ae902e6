package service

import (
	"context"
	"errors"
	"strings"

	"eventreg/internal/models"
	"eventreg/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type DonorInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Amount    int64 // major units
}

type DonationResult struct {
	Donor    *models.Donor
	Checkout *Checkout
}

type DonationService struct {
	donors        *repository.DonorRepository
	payments      *repository.PaymentRepository
	checkout      *PaymentService
	minorPerMajor int64
	log           *zerolog.Logger
}

func NewDonationService(
	donors *repository.DonorRepository,
	payments *repository.PaymentRepository,
	checkout *PaymentService,
	minorPerMajor int64,
	log *zerolog.Logger,
) *DonationService {
	if minorPerMajor <= 0 {
		minorPerMajor = 100
	}
	return &DonationService{donors: donors, payments: payments, checkout: checkout, minorPerMajor: minorPerMajor, log: log}
}

// Donate stores the pledge and opens a checkout for it.
func (s *DonationService) Donate(ctx context.Context, in DonorInput) (*DonationResult, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	d := &models.Donor{}
	in.apply(d)
	if err := s.donors.Create(ctx, d); err != nil {
		return nil, err
	}
	checkout, err := s.checkout.InitDonationPayment(ctx, d, d.Amount*s.minorPerMajor, "")
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("donor_id", d.ID).Str("reference", checkout.Reference).Msg("donation checkout opened")
	return &DonationResult{Donor: d, Checkout: checkout}, nil
}

func (s *DonationService) List(ctx context.Context, search string, page, limit int) ([]models.Donor, int64, error) {
	return s.donors.List(ctx, search, page, limit)
}

func (s *DonationService) Get(ctx context.Context, id uint) (*models.Donor, error) {
	d, err := s.donors.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDonorNotFound
	}
	return d, err
}

// Update replaces the donor's details. The donated flag is owned by payment
// reconciliation and is left untouched.
func (s *DonationService) Update(ctx context.Context, id uint, in DonorInput) (*models.Donor, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(d)
	if err := s.donors.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DonationService) Delete(ctx context.Context, id uint) error {
	err := s.donors.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDonorNotFound
	}
	return err
}

func (s *DonationService) ListDonations(ctx context.Context, status string, page, limit int) ([]models.Donation, int64, error) {
	return s.payments.ListDonations(ctx, status, page, limit)
}

func (in DonorInput) apply(d *models.Donor) {
	d.FirstName = strings.TrimSpace(in.FirstName)
	d.LastName = strings.TrimSpace(in.LastName)
	d.Email = normalizeEmail(in.Email)
	d.Phone = strings.TrimSpace(in.Phone)
	d.Amount = in.Amount
}
