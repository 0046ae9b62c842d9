// Package authz holds the authorization rules of the API. Each rule is a
// stateless predicate over the acting user and, when relevant, the target
// resource. Handlers invoke them explicitly before any side-effecting call.
package authz

import "bilemo-backend/internal/model"

// CanViewCatalog reports whether the actor may read brands and devices.
// Access is granted to every user of a customer whose API access flag is
// on; there is no per-device ownership check.
func CanViewCatalog(actor *model.User) bool {
	return actor.Customer.CanUseAPI
}

// CanListUsers reports whether the actor may list users. Always allowed;
// the listing itself is scoped to the actor's customer at the store layer.
func CanListUsers(actor *model.User) bool {
	return true
}

// CanCreateUser reports whether the actor may create a user. Always
// allowed; the new user is created under the actor's own customer.
func CanCreateUser(actor *model.User) bool {
	return true
}

// CanViewUser reports whether the actor may view the subject user.
func CanViewUser(actor, subject *model.User) bool {
	return actor.CustomerID == subject.CustomerID
}

// CanUpdateUser reports whether the actor may update the subject user.
func CanUpdateUser(actor, subject *model.User) bool {
	return actor.CustomerID == subject.CustomerID
}

// CanDeleteUser reports whether the actor may delete the subject user.
func CanDeleteUser(actor, subject *model.User) bool {
	return actor.CustomerID == subject.CustomerID
}
