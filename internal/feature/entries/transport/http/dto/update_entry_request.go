package dto

// UpdateEntryReq はエントリー更新リクエストのボディです。全フィールド任意、
// 指定されたものだけが転送されます。
type UpdateEntryReq struct {
	Name    string   `json:"name" binding:"omitempty,min=1"`
	Meaning string   `json:"meaning" binding:"omitempty,min=1"`
	Example string   `json:"example" binding:"omitempty"`
	Tags    []string `json:"tags" binding:"omitempty"`
	Image   string   `json:"image" binding:"omitempty,url"`
}
