package rpc

import "context"

// Credential service method names.
const (
	methodCreateAuthorization          = "/pijin.Credential/CreateAuthorization"
	methodGetAuthorizationByProviderID = "/pijin.Credential/GetAuthorizationByProviderID"
	methodValidatePassword             = "/pijin.Credential/ValidatePassword"
)

// CreateAuthorizationRequest links a user id to a password and/or a
// federated-provider id. The credential service enforces at most one
// record per provider id and answers AlreadyExists on violation.
type CreateAuthorizationRequest struct {
	UserID     string `json:"userId"`
	Password   string `json:"password,omitempty"`
	ProviderID string `json:"providerId,omitempty"`
}

type GetAuthorizationRequest struct {
	ProviderID string `json:"providerId"`
}

type ValidatePasswordRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// Credential is the typed operation set of the credential service.
type Credential struct {
	c *Client
}

// NewCredential wraps a dialed client.
func NewCredential(c *Client) *Credential {
	return &Credential{c: c}
}

func (a *Credential) CreateAuthorization(ctx context.Context, req CreateAuthorizationRequest) (*Envelope, error) {
	return a.c.invoke(ctx, methodCreateAuthorization, &req)
}

func (a *Credential) GetAuthorizationByProviderID(ctx context.Context, req GetAuthorizationRequest) (*Envelope, error) {
	return a.c.invoke(ctx, methodGetAuthorizationByProviderID, &req)
}

// ValidatePassword returns an envelope whose payload is a JSON boolean.
func (a *Credential) ValidatePassword(ctx context.Context, req ValidatePasswordRequest) (*Envelope, error) {
	return a.c.invoke(ctx, methodValidatePassword, &req)
}
