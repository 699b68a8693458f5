// Package entity はentriesフィーチャーのエンティティを定義します。
package entity

import "time"

// Entry はディレクトリサービスが保持するスラング辞書の見出し語です。
// ゲートウェイは所有権チェックに使うauthor以外のフィールドを加工しません。
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Meaning   string    `json:"meaning"`
	Example   string    `json:"example,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Image     string    `json:"image,omitempty"`
	Author    string    `json:"author"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID は所有権ガードが比較する所有者のユーザーIDを返します。
func (e Entry) OwnerID() string { return e.Author }
