package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"bilemo-backend/internal/model"
	"bilemo-backend/internal/pagination"
)

// deviceQuery builds the filtered device predicate shared by the count
// and the page fetch. Brand names and types are matched case-insensitively
// against the already-lowercased filter values.
func (s *gormStore) deviceQuery(ctx context.Context, brandNames, types []string) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&model.Device{})
	if len(brandNames) > 0 {
		query = query.
			Joins("JOIN brands ON brands.id = devices.brand_id").
			Where("LOWER(brands.name) IN ?", brandNames)
	}
	if len(types) > 0 {
		query = query.Where("LOWER(devices.type) IN ?", types)
	}
	return query
}

// FindDevicePage returns one page of devices ordered by ID, optionally
// filtered by brand name and device type, along with the filtered total.
func (s *gormStore) FindDevicePage(ctx context.Context, p pagination.Pagination, brandNames, types []string) ([]model.Device, int64, error) {
	var total int64
	if err := s.deviceQuery(ctx, brandNames, types).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count devices: %w", err)
	}

	var devices []model.Device
	err := s.deviceQuery(ctx, brandNames, types).
		Preload("Brand").
		Order("devices.id ASC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&devices).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch device page: %w", err)
	}
	return devices, total, nil
}

// brandDeviceQuery builds the predicate for devices owned by one brand.
func (s *gormStore) brandDeviceQuery(ctx context.Context, brandID int64, types []string) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&model.Device{}).Where("brand_id = ?", brandID)
	if len(types) > 0 {
		query = query.Where("LOWER(devices.type) IN ?", types)
	}
	return query
}

// FindBrandDevicePage returns one page of a brand's devices ordered by ID,
// optionally filtered by type, along with the filtered total.
func (s *gormStore) FindBrandDevicePage(ctx context.Context, brandID int64, p pagination.Pagination, types []string) ([]model.Device, int64, error) {
	var total int64
	if err := s.brandDeviceQuery(ctx, brandID, types).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count devices of brand %d: %w", brandID, err)
	}

	var devices []model.Device
	err := s.brandDeviceQuery(ctx, brandID, types).
		Order("devices.id ASC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&devices).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch device page of brand %d: %w", brandID, err)
	}
	return devices, total, nil
}

// FindDeviceByID returns the device with the given ID, brand included.
func (s *gormStore) FindDeviceByID(ctx context.Context, id int64) (*model.Device, error) {
	var device model.Device
	if err := s.db.WithContext(ctx).Preload("Brand").First(&device, id).Error; err != nil {
		return nil, err
	}
	return &device, nil
}
