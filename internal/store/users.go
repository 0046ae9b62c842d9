package store

import (
	"context"
	"fmt"

	"bilemo-backend/internal/model"
	"bilemo-backend/internal/pagination"
)

// FindUserPage returns one page of a customer's users ordered by ID, along
// with the customer's total user count. Cross-customer listing is not
// expressible here: the customer scope is always applied.
func (s *gormStore) FindUserPage(ctx context.Context, customerID int64, p pagination.Pagination) ([]model.User, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("customer_id = ?", customerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users of customer %d: %w", customerID, err)
	}

	var users []model.User
	err = s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch user page of customer %d: %w", customerID, err)
	}
	return users, total, nil
}

// FindUserByID returns the user with the given ID, customer included.
func (s *gormStore) FindUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Preload("Customer").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail returns the user with the given email, customer included.
func (s *gormStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether another user already uses the given email.
// excludeID, when non-zero, leaves that user out of the check so updates
// do not collide with themselves. The unique index on users.email remains
// the authoritative guard against concurrent duplicates.
func (s *gormStore) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email %q: %w", email, err)
	}
	return count > 0, nil
}

// CreateUser inserts the user and commits.
func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Omit("Customer").Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// SaveUser persists all fields of an existing user and commits.
func (s *gormStore) SaveUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Omit("Customer").Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user %d: %w", user.ID, err)
	}
	return nil
}

// DeleteUser removes the user and commits. No cascade: users own nothing.
func (s *gormStore) DeleteUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Delete(&model.User{}, user.ID).Error; err != nil {
		return fmt.Errorf("failed to delete user %d: %w", user.ID, err)
	}
	return nil
}
