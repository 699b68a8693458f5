// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /auth/signup endpoint.
type SignupReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
