package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pijin_gateway/internal/feature/votes/domain"
	"pijin_gateway/internal/feature/votes/domain/entity"
	"pijin_gateway/internal/platform/rpc"
)

type mockDirectory struct {
	createVote     func(ctx context.Context, req rpc.CreateVoteRequest) (*rpc.Envelope, error)
	getVoteByID    func(ctx context.Context, req rpc.GetVoteByIDRequest) (*rpc.Envelope, error)
	getAllVotes    func(ctx context.Context, req rpc.ListVotesRequest) (*rpc.Envelope, error)
	updateVote     func(ctx context.Context, req rpc.UpdateVoteRequest) (*rpc.Envelope, error)
	deleteVoteByID func(ctx context.Context, req rpc.DeleteVoteRequest) (*rpc.Envelope, error)
}

func (m *mockDirectory) CreateVote(ctx context.Context, req rpc.CreateVoteRequest) (*rpc.Envelope, error) {
	return m.createVote(ctx, req)
}

func (m *mockDirectory) GetVoteByID(ctx context.Context, req rpc.GetVoteByIDRequest) (*rpc.Envelope, error) {
	return m.getVoteByID(ctx, req)
}

func (m *mockDirectory) GetAllVotes(ctx context.Context, req rpc.ListVotesRequest) (*rpc.Envelope, error) {
	return m.getAllVotes(ctx, req)
}

func (m *mockDirectory) UpdateVote(ctx context.Context, req rpc.UpdateVoteRequest) (*rpc.Envelope, error) {
	return m.updateVote(ctx, req)
}

func (m *mockDirectory) DeleteVoteByID(ctx context.Context, req rpc.DeleteVoteRequest) (*rpc.Envelope, error) {
	return m.deleteVoteByID(ctx, req)
}

func envelope(t *testing.T, v any) *rpc.Envelope {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	s := string(b)
	return &rpc.Envelope{Data: &s}
}

func TestVoteUsecase_Create(t *testing.T) {
	t.Run("正常系: 既存投票がなければ作成される", func(t *testing.T) {
		directory := &mockDirectory{
			getAllVotes: func(ctx context.Context, req rpc.ListVotesRequest) (*rpc.Envelope, error) {
				assert.Equal(t, "u1", req.Voter)
				assert.Equal(t, "e1", req.Entry)
				return envelope(t, []entity.Vote{}), nil
			},
			createVote: func(ctx context.Context, req rpc.CreateVoteRequest) (*rpc.Envelope, error) {
				assert.Equal(t, "up", req.Type)
				return envelope(t, entity.Vote{ID: "v1", Entry: req.Entry, Type: req.Type, Voter: req.Voter}), nil
			},
		}

		vote, err := NewVoteUsecase(directory).Create(context.Background(), "e1", "up", "u1")

		require.NoError(t, err)
		assert.Equal(t, "v1", vote.ID)
		assert.Equal(t, "u1", vote.Voter)
	})

	t.Run("異常系: 同一エントリーへの二重投票は拒否される", func(t *testing.T) {
		created := false
		directory := &mockDirectory{
			getAllVotes: func(ctx context.Context, req rpc.ListVotesRequest) (*rpc.Envelope, error) {
				return envelope(t, []entity.Vote{{ID: "v1", Entry: "e1", Voter: "u1"}}), nil
			},
			createVote: func(ctx context.Context, req rpc.CreateVoteRequest) (*rpc.Envelope, error) {
				created = true
				return envelope(t, entity.Vote{}), nil
			},
		}

		_, err := NewVoteUsecase(directory).Create(context.Background(), "e1", "down", "u1")

		assert.ErrorIs(t, err, domain.ErrDuplicateVote)
		assert.False(t, created)
	})

	t.Run("正常系: nullデータの既存チェックは投票なし扱い", func(t *testing.T) {
		directory := &mockDirectory{
			getAllVotes: func(ctx context.Context, req rpc.ListVotesRequest) (*rpc.Envelope, error) {
				return &rpc.Envelope{}, nil
			},
			createVote: func(ctx context.Context, req rpc.CreateVoteRequest) (*rpc.Envelope, error) {
				return envelope(t, entity.Vote{ID: "v1"}), nil
			},
		}

		vote, err := NewVoteUsecase(directory).Create(context.Background(), "e1", "up", "u1")

		require.NoError(t, err)
		assert.Equal(t, "v1", vote.ID)
	})

	t.Run("異常系: 既存チェックの失敗で作成は走らない", func(t *testing.T) {
		directory := &mockDirectory{
			getAllVotes: func(ctx context.Context, req rpc.ListVotesRequest) (*rpc.Envelope, error) {
				return nil, errors.New("unavailable")
			},
		}

		_, err := NewVoteUsecase(directory).Create(context.Background(), "e1", "up", "u1")

		assert.Error(t, err)
	})
}

func TestVoteUsecase_ListByVoter(t *testing.T) {
	directory := &mockDirectory{
		getAllVotes: func(ctx context.Context, req rpc.ListVotesRequest) (*rpc.Envelope, error) {
			assert.Equal(t, "u1", req.Voter)
			assert.Empty(t, req.Entry)
			return envelope(t, []entity.Vote{{ID: "v1"}, {ID: "v2"}}), nil
		},
	}

	votes, err := NewVoteUsecase(directory).ListByVoter(context.Background(), "u1")

	require.NoError(t, err)
	assert.Len(t, votes, 2)
}

func TestVoteUsecase_Update(t *testing.T) {
	directory := &mockDirectory{
		updateVote: func(ctx context.Context, req rpc.UpdateVoteRequest) (*rpc.Envelope, error) {
			assert.Equal(t, "v1", req.ID)
			assert.Equal(t, "down", req.Type)
			return envelope(t, entity.Vote{ID: "v1", Type: "down"}), nil
		},
	}

	vote, err := NewVoteUsecase(directory).Update(context.Background(), "v1", "down")

	require.NoError(t, err)
	assert.Equal(t, "down", vote.Type)
}

func TestVoteUsecase_FetchByID(t *testing.T) {
	directory := &mockDirectory{
		getVoteByID: func(ctx context.Context, req rpc.GetVoteByIDRequest) (*rpc.Envelope, error) {
			assert.Equal(t, "v1", req.ID)
			assert.False(t, req.Deleted)
			return envelope(t, entity.Vote{ID: "v1", Voter: "u1"}), nil
		},
	}

	env, err := NewVoteUsecase(directory).FetchByID(context.Background(), "v1")

	require.NoError(t, err)
	assert.False(t, env.Empty())
}
