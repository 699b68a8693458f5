// Package usecase はentriesフィーチャーのビジネスロジックを実装します。
// ハンドラーの検証を通ったリクエストをディレクトリサービスへ転送する薄い層です。
package usecase

import (
	"context"
	"fmt"

	"pijin_gateway/internal/feature/entries/domain/entity"
	"pijin_gateway/internal/platform/rpc"
)

// DirectoryService はディレクトリサービスのエントリー操作を抽象化します。
type DirectoryService interface {
	CreateEntry(ctx context.Context, req rpc.CreateEntryRequest) (*rpc.Envelope, error)
	GetEntryByID(ctx context.Context, req rpc.GetEntryByIDRequest) (*rpc.Envelope, error)
	GetAllEntries(ctx context.Context, req rpc.ListEntriesRequest) (*rpc.Envelope, error)
	UpdateEntry(ctx context.Context, req rpc.UpdateEntryRequest) (*rpc.Envelope, error)
	DeleteEntryByID(ctx context.Context, req rpc.DeleteEntryRequest) (*rpc.Envelope, error)
}

// CreateInput はエントリー作成の入力です。authorはハンドラーが
// 解決済みアイデンティティから設定します。
type CreateInput struct {
	Name    string
	Meaning string
	Example string
	Tags    []string
	Image   string
	Author  string
}

// UpdateInput はエントリー更新の入力です。ゼロ値のフィールドは送信されません。
type UpdateInput struct {
	Name    string
	Meaning string
	Example string
	Tags    []string
	Image   string
}

// entryUsecase はエントリーCRUDの転送ロジックを実装します。
type entryUsecase struct {
	directory DirectoryService
}

// NewEntryUsecase はentryUsecaseの新しいインスタンスを生成します。
func NewEntryUsecase(directory DirectoryService) *entryUsecase {
	return &entryUsecase{directory: directory}
}

// Create は新規エントリーをディレクトリサービスに作成します。
func (u *entryUsecase) Create(ctx context.Context, in CreateInput) (*entity.Entry, error) {
	env, err := u.directory.CreateEntry(ctx, rpc.CreateEntryRequest{
		Name:    in.Name,
		Meaning: in.Meaning,
		Example: in.Example,
		Tags:    in.Tags,
		Image:   in.Image,
		Author:  in.Author,
	})
	if err != nil {
		return nil, err
	}

	var entry entity.Entry
	if err := env.Decode(&entry); err != nil {
		return nil, fmt.Errorf("decode created entry: %w", err)
	}
	return &entry, nil
}

// ListByAuthor は指定ユーザーが作成した削除されていないエントリーを列挙します。
func (u *entryUsecase) ListByAuthor(ctx context.Context, author string) ([]entity.Entry, error) {
	env, err := u.directory.GetAllEntries(ctx, rpc.ListEntriesRequest{Author: author, Deleted: false})
	if err != nil {
		return nil, err
	}
	if env.Empty() {
		return []entity.Entry{}, nil
	}

	var entries []entity.Entry
	if err := env.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode entry list: %w", err)
	}
	return entries, nil
}

// Update は既存エントリーを更新します。所有権チェックはミドルウェアが済ませています。
func (u *entryUsecase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Entry, error) {
	env, err := u.directory.UpdateEntry(ctx, rpc.UpdateEntryRequest{
		ID:      id,
		Name:    in.Name,
		Meaning: in.Meaning,
		Example: in.Example,
		Tags:    in.Tags,
		Image:   in.Image,
	})
	if err != nil {
		return nil, err
	}

	var entry entity.Entry
	if err := env.Decode(&entry); err != nil {
		return nil, fmt.Errorf("decode updated entry: %w", err)
	}
	return &entry, nil
}

// Delete はエントリーをソフトデリートします。
func (u *entryUsecase) Delete(ctx context.Context, id string) error {
	_, err := u.directory.DeleteEntryByID(ctx, rpc.DeleteEntryRequest{ID: id})
	return err
}

// FetchByID は所有権ガードのFetchに適合する単一取得です。
func (u *entryUsecase) FetchByID(ctx context.Context, id string) (*rpc.Envelope, error) {
	return u.directory.GetEntryByID(ctx, rpc.GetEntryByIDRequest{ID: id, Deleted: false})
}
