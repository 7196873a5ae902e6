package service

import (
	"context"
	"time"

	"eventreg/internal/domain"
	"eventreg/internal/models"
	"eventreg/internal/repository"

	"gorm.io/gorm"
)

// RegistrationIDAllocator issues sequential registration IDs. Allocation is
// serialised on the prefix's sequence row, so it must run inside the
// transaction that persists the attendee.
type RegistrationIDAllocator struct {
	prefix    string
	attendees *repository.AttendeeRepository
	sequences *repository.SequenceRepository
	now       func() time.Time
}

func NewRegistrationIDAllocator(prefix string, attendees *repository.AttendeeRepository, sequences *repository.SequenceRepository) *RegistrationIDAllocator {
	return &RegistrationIDAllocator{prefix: prefix, attendees: attendees, sequences: sequences, now: time.Now}
}

// Assign sets a.RegistrationID when it is still empty and reports whether it
// did. The attendee is not saved.
func (g *RegistrationIDAllocator) Assign(ctx context.Context, tx *gorm.DB, a *models.Attendee) (bool, error) {
	if a.Registered() {
		return false, nil
	}
	attendees := g.attendees.WithTx(tx)
	id, err := g.sequences.WithTx(tx).Advance(ctx, g.prefix,
		func() (string, error) { return attendees.LastRegistrationID(ctx) },
		func(last string) string { return domain.NextRegistrationID(g.prefix, last, g.now()) },
	)
	if err != nil {
		return false, err
	}
	a.RegistrationID = &id
	return true, nil
}
