package repository

import (
	"context"

	"eventreg/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DonorRepository struct {
	db *gorm.DB
}

func NewDonorRepository(db *gorm.DB) *DonorRepository {
	return &DonorRepository{db: db}
}

func (r *DonorRepository) WithTx(tx *gorm.DB) *DonorRepository {
	return &DonorRepository{db: tx}
}

func (r *DonorRepository) Create(ctx context.Context, d *models.Donor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DonorRepository) GetByID(ctx context.Context, id uint) (*models.Donor, error) {
	var d models.Donor
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonorRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Donor, error) {
	var d models.Donor
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonorRepository) Update(ctx context.Context, d *models.Donor) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DonorRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Donor{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns donors newest first.
func (r *DonorRepository) List(ctx context.Context, search string, page, limit int) ([]models.Donor, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Donor{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Donor
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
