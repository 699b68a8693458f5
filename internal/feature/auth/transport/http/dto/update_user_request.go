package dto

// UpdateUserReq represents the request body for updating the caller's own record.
// Username is optional; an absent field leaves the record unchanged.
type UpdateUserReq struct {
	Username string `json:"username" binding:"omitempty,min=1"`
}
