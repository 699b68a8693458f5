package entity

// Credential is the association record owned by the credential service,
// linking a user id to a password hash and/or a federated-provider id.
// The gateway decodes only the fields it needs.
type Credential struct {
	UserID     string `json:"userId"`
	ProviderID string `json:"providerId,omitempty"`
}
