package service

import (
	"context"

	"bilemo-backend/internal/auth"
	"bilemo-backend/internal/model"
	"bilemo-backend/internal/pagination"
	"bilemo-backend/internal/store"
)

// UserDTO carries validated user input from the HTTP boundary into the
// service. The plaintext password is erased as soon as it has been hashed.
type UserDTO struct {
	ID         int64
	Email      string
	Fullname   string
	Password   string
	CustomerID int64
}

// EraseCredentials drops the plaintext password from the DTO.
func (d *UserDTO) EraseCredentials() {
	d.Password = ""
}

// UserService exposes operations on the users of a customer.
type UserService struct {
	store  store.Store
	hasher *auth.PasswordHasher
}

// NewUserService creates a UserService backed by the given store.
func NewUserService(s store.Store, hasher *auth.PasswordHasher) *UserService {
	return &UserService{store: s, hasher: hasher}
}

// FindPage returns one page of the customer's users and the total count.
func (s *UserService) FindPage(ctx context.Context, customerID int64, p pagination.Pagination) ([]model.User, int64, error) {
	return s.store.FindUserPage(ctx, customerID, p)
}

// FindByID returns a user with their customer.
func (s *UserService) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return s.store.FindUserByID(ctx, id)
}

// FindByEmail returns a user by email, used for login.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.store.FindUserByEmail(ctx, email)
}

// EmailTaken reports whether another user already uses the given email.
func (s *UserService) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	return s.store.EmailTaken(ctx, email, excludeID)
}

// ComparePassword reports whether the plaintext password matches the
// user's stored hash.
func (s *UserService) ComparePassword(user *model.User, password string) error {
	return s.hasher.Compare(user.Password, password)
}

// FillInUserFromDTO builds or updates a user entity from the DTO. Email and
// fullname are copied when present; a present plaintext password is hashed,
// assigned, and then erased from the DTO. The customer association is
// always re-bound from the DTO. The entity is returned unsaved; persisting
// it is the caller's responsibility.
func (s *UserService) FillInUserFromDTO(dto *UserDTO, user *model.User) (*model.User, error) {
	if user == nil {
		user = &model.User{}
	}

	if dto.Email != "" {
		user.Email = dto.Email
	}

	if dto.Fullname != "" {
		user.Fullname = dto.Fullname
	}

	if dto.Password != "" {
		hash, err := s.hasher.Hash(dto.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
		dto.EraseCredentials()
	}

	user.CustomerID = dto.CustomerID

	return user, nil
}

// Create inserts a built user entity and commits.
func (s *UserService) Create(ctx context.Context, user *model.User) error {
	return s.store.CreateUser(ctx, user)
}

// Save persists an updated user entity and commits.
func (s *UserService) Save(ctx context.Context, user *model.User) error {
	return s.store.SaveUser(ctx, user)
}

// Delete removes a user and commits.
func (s *UserService) Delete(ctx context.Context, user *model.User) error {
	return s.store.DeleteUser(ctx, user)
}
