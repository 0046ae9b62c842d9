package service

import (
	"context"

	"bilemo-backend/internal/model"
	"bilemo-backend/internal/pagination"
	"bilemo-backend/internal/store"
)

// DeviceService exposes read operations on the device catalog.
type DeviceService struct {
	store store.Store
}

// NewDeviceService creates a DeviceService backed by the given store.
func NewDeviceService(s store.Store) *DeviceService {
	return &DeviceService{store: s}
}

// FindPage returns one page of devices, optionally filtered by brand name
// and type, and the filtered total.
func (s *DeviceService) FindPage(ctx context.Context, p pagination.Pagination, brandNames, types []string) ([]model.Device, int64, error) {
	return s.store.FindDevicePage(ctx, p, brandNames, types)
}

// FindByID returns a device with its brand.
func (s *DeviceService) FindByID(ctx context.Context, id int64) (*model.Device, error) {
	return s.store.FindDeviceByID(ctx, id)
}
