package store

import (
	"context"

	"gorm.io/gorm"

	"bilemo-backend/internal/model"
	"bilemo-backend/internal/pagination"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Brands
	FindBrandPage(ctx context.Context, p pagination.Pagination) ([]model.Brand, int64, error)
	FindBrandByID(ctx context.Context, id int64) (*model.Brand, error)
	CountDevicesByBrand(ctx context.Context) (map[int64]int64, error)
	DeleteBrand(ctx context.Context, id int64) error

	// Devices
	FindDevicePage(ctx context.Context, p pagination.Pagination, brandNames, types []string) ([]model.Device, int64, error)
	FindBrandDevicePage(ctx context.Context, brandID int64, p pagination.Pagination, types []string) ([]model.Device, int64, error)
	FindDeviceByID(ctx context.Context, id int64) (*model.Device, error)

	// Users
	FindUserPage(ctx context.Context, customerID int64, p pagination.Pagination) ([]model.User, int64, error)
	FindUserByID(ctx context.Context, id int64) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	CreateUser(ctx context.Context, user *model.User) error
	SaveUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, user *model.User) error

	// Customers
	FindCustomerByID(ctx context.Context, id int64) (*model.Customer, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// FindCustomerByID returns the customer with the given ID.
func (s *gormStore) FindCustomerByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
