package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bilemo-backend/internal/model"
)

func userOf(customerID int64, canUseAPI bool) *model.User {
	return &model.User{
		ID:         1,
		CustomerID: customerID,
		Customer:   model.Customer{ID: customerID, CanUseAPI: canUseAPI},
	}
}

func TestCanViewCatalog(t *testing.T) {
	assert.True(t, CanViewCatalog(userOf(1, true)))
	assert.False(t, CanViewCatalog(userOf(1, false)))
}

func TestUserVoters(t *testing.T) {
	actor := userOf(1, true)
	sameCustomer := &model.User{ID: 2, CustomerID: 1}
	otherCustomer := &model.User{ID: 3, CustomerID: 2}

	assert.True(t, CanListUsers(actor))
	assert.True(t, CanCreateUser(actor))

	assert.True(t, CanViewUser(actor, sameCustomer))
	assert.False(t, CanViewUser(actor, otherCustomer))

	assert.True(t, CanUpdateUser(actor, sameCustomer))
	assert.False(t, CanUpdateUser(actor, otherCustomer))

	assert.True(t, CanDeleteUser(actor, sameCustomer))
	assert.False(t, CanDeleteUser(actor, otherCustomer))
}

func TestVotersIgnoreAPIAccessForUserManagement(t *testing.T) {
	// The canUseApi flag gates the catalog only; user management of one's
	// own customer stays available either way.
	actor := userOf(1, false)
	sameCustomer := &model.User{ID: 2, CustomerID: 1}

	assert.True(t, CanListUsers(actor))
	assert.True(t, CanViewUser(actor, sameCustomer))
	assert.True(t, CanDeleteUser(actor, sameCustomer))
}
