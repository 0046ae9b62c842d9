package model

import "time"

// Customer represents a company that bought access to the catalog API.
// Its employees are User records.
type Customer struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CanUseAPI bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	Users []User `gorm:"foreignKey:CustomerID" json:"-"`
}
