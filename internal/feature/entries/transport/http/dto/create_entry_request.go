// Package dto はentriesフィーチャーのリクエストDTOを定義します。
package dto

// CreateEntryReq はエントリー作成リクエストのボディです。
type CreateEntryReq struct {
	Name    string   `json:"name" binding:"required"`
	Meaning string   `json:"meaning" binding:"required"`
	Example string   `json:"example" binding:"omitempty"`
	Tags    []string `json:"tags" binding:"omitempty"`
	Image   string   `json:"image" binding:"omitempty,url"`
}
