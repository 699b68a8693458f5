// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is the identity record owned by the directory service. The gateway
// only ever decodes it from an RPC envelope; it never persists one.
type User struct {
	// ID is the unique identifier assigned by the directory service.
	ID string `json:"id"`

	// Username is unique across all users.
	Username string `json:"username"`

	// ProviderID links the user to an external identity provider, when the
	// account was created through federated login.
	ProviderID string `json:"providerId,omitempty"`

	// Deleted marks a soft-deleted account. Lookups from the gateway always
	// request non-deleted records, so a decoded User is live.
	Deleted bool `json:"deleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
