package model

import "time"

// Device represents a product in the catalog. CreatedAt is set when the
// device is first persisted and never updated afterwards.
type Device struct {
	ID          int64     `gorm:"primaryKey"`
	BrandID     int64     `gorm:"index;not null"`
	Model       string    `gorm:"size:255;not null"`
	Type        string    `gorm:"size:255;not null"`
	Description string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"<-:create"`

	// Associations
	Brand Brand `gorm:"constraint:OnDelete:CASCADE"`
}
