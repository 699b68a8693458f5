// Package domain はvotesフィーチャーのドメインエラーを定義します。
package domain

import "errors"

// ErrDuplicateVote は同一エントリーへ既に投票済みであることを示します。
var ErrDuplicateVote = errors.New("vote already exists for this entry")
