package model

import "time"

// User is an employee of a Customer. Users authenticate against the API
// with their email address and password.
type User struct {
	ID         int64  `gorm:"primaryKey"`
	Email      string `gorm:"uniqueIndex;size:180;not null"`
	Fullname   string `gorm:"size:255;not null"`
	Password   string `gorm:"size:255;not null"` // bcrypt hash, never serialized
	CustomerID int64  `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Associations
	Customer Customer `gorm:"constraint:OnDelete:CASCADE"`
}
