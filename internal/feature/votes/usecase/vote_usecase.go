// Package usecase はvotesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"pijin_gateway/internal/feature/votes/domain"
	"pijin_gateway/internal/feature/votes/domain/entity"
	"pijin_gateway/internal/platform/rpc"
)

// DirectoryService はディレクトリサービスの投票操作を抽象化します。
type DirectoryService interface {
	CreateVote(ctx context.Context, req rpc.CreateVoteRequest) (*rpc.Envelope, error)
	GetVoteByID(ctx context.Context, req rpc.GetVoteByIDRequest) (*rpc.Envelope, error)
	GetAllVotes(ctx context.Context, req rpc.ListVotesRequest) (*rpc.Envelope, error)
	UpdateVote(ctx context.Context, req rpc.UpdateVoteRequest) (*rpc.Envelope, error)
	DeleteVoteByID(ctx context.Context, req rpc.DeleteVoteRequest) (*rpc.Envelope, error)
}

// voteUsecase は投票CRUDの転送ロジックを実装します。
type voteUsecase struct {
	directory DirectoryService
}

// NewVoteUsecase はvoteUsecaseの新しいインスタンスを生成します。
func NewVoteUsecase(directory DirectoryService) *voteUsecase {
	return &voteUsecase{directory: directory}
}

// Create は重複チェックの上で新規投票を作成します。
// ディレクトリサービスは投票の一意性を強制しないため、ここで
// 同一投票者・同一エントリーの既存投票を確認します。
func (u *voteUsecase) Create(ctx context.Context, entry, voteType, voter string) (*entity.Vote, error) {
	existing, err := u.directory.GetAllVotes(ctx, rpc.ListVotesRequest{Voter: voter, Entry: entry, Deleted: false})
	if err != nil {
		return nil, err
	}
	if !existing.Empty() {
		var votes []entity.Vote
		if err := existing.Decode(&votes); err != nil {
			return nil, fmt.Errorf("decode existing votes: %w", err)
		}
		if len(votes) > 0 {
			return nil, domain.ErrDuplicateVote
		}
	}

	env, err := u.directory.CreateVote(ctx, rpc.CreateVoteRequest{Entry: entry, Type: voteType, Voter: voter})
	if err != nil {
		return nil, err
	}

	var vote entity.Vote
	if err := env.Decode(&vote); err != nil {
		return nil, fmt.Errorf("decode created vote: %w", err)
	}
	return &vote, nil
}

// ListByVoter は指定ユーザーの削除されていない投票を列挙します。
func (u *voteUsecase) ListByVoter(ctx context.Context, voter string) ([]entity.Vote, error) {
	env, err := u.directory.GetAllVotes(ctx, rpc.ListVotesRequest{Voter: voter, Deleted: false})
	if err != nil {
		return nil, err
	}
	if env.Empty() {
		return []entity.Vote{}, nil
	}

	var votes []entity.Vote
	if err := env.Decode(&votes); err != nil {
		return nil, fmt.Errorf("decode vote list: %w", err)
	}
	return votes, nil
}

// Update は既存投票の種別を変更します。所有権チェックはミドルウェアが済ませています。
func (u *voteUsecase) Update(ctx context.Context, id, voteType string) (*entity.Vote, error) {
	env, err := u.directory.UpdateVote(ctx, rpc.UpdateVoteRequest{ID: id, Type: voteType})
	if err != nil {
		return nil, err
	}

	var vote entity.Vote
	if err := env.Decode(&vote); err != nil {
		return nil, fmt.Errorf("decode updated vote: %w", err)
	}
	return &vote, nil
}

// Delete は投票をソフトデリートします。
func (u *voteUsecase) Delete(ctx context.Context, id string) error {
	_, err := u.directory.DeleteVoteByID(ctx, rpc.DeleteVoteRequest{ID: id})
	return err
}

// FetchByID は所有権ガードのFetchに適合する単一取得です。
func (u *voteUsecase) FetchByID(ctx context.Context, id string) (*rpc.Envelope, error) {
	return u.directory.GetVoteByID(ctx, rpc.GetVoteByIDRequest{ID: id, Deleted: false})
}
