package model

import "time"

// Brand represents a device manufacturer.
type Brand struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Devices []Device `gorm:"foreignKey:BrandID"`
}
