package models

import (
	"time"

	"gorm.io/gorm"
)

type Donor struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FirstName string         `gorm:"size:50;not null" json:"first_name"`
	LastName  string         `gorm:"size:50;not null" json:"last_name"`
	Email     string         `gorm:"size:100;not null;index" json:"email"`
	Phone     string         `gorm:"size:15;not null" json:"phone"`
	Amount    int64          `gorm:"not null" json:"amount"` // pledged, major units
	Donated   bool           `gorm:"not null;default:false" json:"donated"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Donor) TableName() string {
	return "donors"
}

func (d *Donor) FullName() string {
	return d.FirstName + " " + d.LastName
}
