package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"bilemo-backend/internal/model"
	"bilemo-backend/internal/pagination"
)

// FindBrandPage returns one page of brands ordered by ID, along with the
// total brand count.
func (s *gormStore) FindBrandPage(ctx context.Context, p pagination.Pagination) ([]model.Brand, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Brand{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	var brands []model.Brand
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&brands).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch brand page: %w", err)
	}
	return brands, total, nil
}

// FindBrandByID returns the brand with the given ID, devices included.
func (s *gormStore) FindBrandByID(ctx context.Context, id int64) (*model.Brand, error) {
	var brand model.Brand
	err := s.db.WithContext(ctx).
		Preload("Devices", func(db *gorm.DB) *gorm.DB { return db.Order("devices.id ASC") }).
		First(&brand, id).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// CountDevicesByBrand aggregates the device count of every brand in one
// query. Brands without devices are absent from the map.
func (s *gormStore) CountDevicesByBrand(ctx context.Context) (map[int64]int64, error) {
	type aggRow struct {
		BrandID     int64
		DeviceCount int64
	}
	var aggs []aggRow
	err := s.db.WithContext(ctx).
		Model(&model.Device{}).
		Select("brand_id as brand_id, COUNT(*) as device_count").
		Group("brand_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate devices per brand: %w", err)
	}

	counts := make(map[int64]int64, len(aggs))
	for _, a := range aggs {
		counts[a.BrandID] = a.DeviceCount
	}
	return counts, nil
}

// DeleteBrand removes a brand and every device it owns in one transaction.
// The devices go first so a failure never leaves them orphaned.
func (s *gormStore) DeleteBrand(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("brand_id = ?", id).Delete(&model.Device{}).Error; err != nil {
			return fmt.Errorf("failed to delete devices of brand %d: %w", id, err)
		}
		if err := tx.Delete(&model.Brand{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete brand %d: %w", id, err)
		}
		return nil
	})
}
