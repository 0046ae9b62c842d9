// Package service holds the business operations of the API, free of any
// HTTP coupling. Services orchestrate store calls and entity mutation;
// persistence of built entities stays with the caller where noted.
package service

import (
	"context"

	"bilemo-backend/internal/model"
	"bilemo-backend/internal/pagination"
	"bilemo-backend/internal/store"
)

// BrandService exposes read and delete operations on brands.
type BrandService struct {
	store store.Store
}

// NewBrandService creates a BrandService backed by the given store.
func NewBrandService(s store.Store) *BrandService {
	return &BrandService{store: s}
}

// FindPage returns one page of brands and the total brand count.
func (s *BrandService) FindPage(ctx context.Context, p pagination.Pagination) ([]model.Brand, int64, error) {
	return s.store.FindBrandPage(ctx, p)
}

// FindByID returns a brand with its devices.
func (s *BrandService) FindByID(ctx context.Context, id int64) (*model.Brand, error) {
	return s.store.FindBrandByID(ctx, id)
}

// DeviceCounts returns the device count of every brand, keyed by brand ID.
func (s *BrandService) DeviceCounts(ctx context.Context) (map[int64]int64, error) {
	return s.store.CountDevicesByBrand(ctx)
}

// FindDevices returns one page of a brand's devices, optionally filtered
// by type, and the filtered total.
func (s *BrandService) FindDevices(ctx context.Context, brandID int64, p pagination.Pagination, types []string) ([]model.Device, int64, error) {
	return s.store.FindBrandDevicePage(ctx, brandID, p, types)
}

// Delete removes a brand together with all of its devices.
func (s *BrandService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteBrand(ctx, id)
}
