// Package dto はvotesフィーチャーのリクエストDTOを定義します。
package dto

// CreateVoteReq は投票作成リクエストのボディです。
type CreateVoteReq struct {
	Entry string `json:"entry" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=up down"`
}
