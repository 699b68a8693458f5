// Package entity はvotesフィーチャーのエンティティを定義します。
package entity

import "time"

// Vote はエントリーに対する単一ユーザーの評価です。
// 1ユーザー1エントリーにつき1票で、重複はゲートウェイが弾きます。
type Vote struct {
	ID        string    `json:"id"`
	Entry     string    `json:"entry"`
	Type      string    `json:"type"`
	Voter     string    `json:"voter"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID は所有権ガードが比較する投票者のユーザーIDを返します。
func (v Vote) OwnerID() string { return v.Voter }
