package repository

import (
	"context"
	"errors"

	"eventreg/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceRepository serialises registration ID allocation on a per-prefix
// counter row. Its methods must run inside a transaction.
type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

func (r *SequenceRepository) WithTx(tx *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: tx}
}

// Advance locks the counter for prefix, computes the next value from the last
// one and stores it. A missing counter is created from seed first.
func (r *SequenceRepository) Advance(ctx context.Context, prefix string, seed func() (string, error), next func(last string) string) (string, error) {
	db := r.db.WithContext(ctx)
	seq, err := r.lock(db, prefix)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		last, serr := seed()
		if serr != nil {
			return "", serr
		}
		row := models.RegistrationSequence{Prefix: prefix, LastValue: last}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return "", err
		}
		seq, err = r.lock(db, prefix)
	}
	if err != nil {
		return "", err
	}
	value := next(seq.LastValue)
	err = db.Model(&models.RegistrationSequence{}).Where("prefix = ?", prefix).
		Update("last_value", value).Error
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SequenceRepository) lock(db *gorm.DB, prefix string) (*models.RegistrationSequence, error) {
	var seq models.RegistrationSequence
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("prefix = ?", prefix).First(&seq).Error
	if err != nil {
		return nil, err
	}
	return &seq, nil
}
