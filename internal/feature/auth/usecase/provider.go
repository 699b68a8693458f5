package usecase

import "context"

// ProviderProfile は外部アイデンティティプロバイダーが認証したプロフィールです。
type ProviderProfile struct {
	// Provider はプロバイダー名（例: "facebook"）。
	Provider string

	// ID はプロバイダー側のプロフィールID。クレデンシャルサービスの
	// 一意性制約のキーになります。
	ID string

	// Name は表示名。ログ以外では使用しません。
	Name string
}

// Provider は外部アイデンティティプロバイダーの戦略インターフェースです。
// プロバイダーごとに1つの実装を用意し、フェデレーテッドログインフローから
// 一様に呼び出します。グローバルな登録状態は持ちません。
type Provider interface {
	// Name はプロバイダー名を返します。
	Name() string

	// AuthURL は当該stateを埋め込んだ認可リダイレクト先URLを返します。
	AuthURL(state string) string

	// Authenticate はコールバックの認可コードを検証済みプロフィールに交換します。
	Authenticate(ctx context.Context, code string) (*ProviderProfile, error)
}
