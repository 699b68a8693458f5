package dto

// UpdateVoteReq は投票更新リクエストのボディです。変更できるのは種別のみです。
type UpdateVoteReq struct {
	Type string `json:"type" binding:"required,oneof=up down"`
}
