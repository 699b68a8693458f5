// Package handler はvotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pijin_gateway/internal/api"
	"pijin_gateway/internal/feature/identity"
	"pijin_gateway/internal/feature/votes/domain"
	"pijin_gateway/internal/feature/votes/domain/entity"
	"pijin_gateway/internal/feature/votes/transport/http/dto"
)

// ContextVote は所有権ガードが解決済み投票を格納するコンテキストキーです。
const ContextVote = "vote"

// VoteUsecase は投票操作のユースケースを定義します。
type VoteUsecase interface {
	Create(ctx context.Context, entry, voteType, voter string) (*entity.Vote, error)
	ListByVoter(ctx context.Context, voter string) ([]entity.Vote, error)
	Update(ctx context.Context, id, voteType string) (*entity.Vote, error)
	Delete(ctx context.Context, id string) error
}

// VoteHandler は投票CRUDのHTTPリクエストを処理します。
type VoteHandler struct {
	votes VoteUsecase
}

// NewVoteHandler はVoteHandlerの新しいインスタンスを生成します。
func NewVoteHandler(votes VoteUsecase) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Create は投票作成エンドポイントを処理します。
// voterは解決済みアイデンティティから設定し、ボディのvoterは無視します。
func (h *VoteHandler) Create(c *gin.Context) {
	var req dto.CreateVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		return
	}

	user := identity.CurrentUser(c)
	vote, err := h.votes.Create(c.Request.Context(), req.Entry, req.Type, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateVote) {
			c.JSON(http.StatusBadRequest, api.Error("Vote already exists for this entry"))
			return
		}
		slog.Error("vote create failed", "voter", user.ID, "entry", req.Entry, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	c.JSON(http.StatusOK, api.OK(vote))
}

// Get は所有権ガードが解決した投票をそのまま返します。
func (h *VoteHandler) Get(c *gin.Context) {
	vote := c.MustGet(ContextVote).(entity.Vote)
	c.JSON(http.StatusOK, api.OK(vote))
}

// List は呼び出し元自身の投票を列挙します。
func (h *VoteHandler) List(c *gin.Context) {
	user := identity.CurrentUser(c)
	votes, err := h.votes.ListByVoter(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("vote list failed", "voter", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	c.JSON(http.StatusOK, api.OK(votes))
}

// Update は所有権確認済みの投票の種別を変更します。
func (h *VoteHandler) Update(c *gin.Context) {
	var req dto.UpdateVoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		return
	}

	id := c.Param("voteID")
	vote, err := h.votes.Update(c.Request.Context(), id, req.Type)
	if err != nil {
		slog.Error("vote update failed", "vote_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	c.JSON(http.StatusOK, api.OK(vote))
}

// Delete は所有権確認済みの投票をソフトデリートします。
func (h *VoteHandler) Delete(c *gin.Context) {
	id := c.Param("voteID")
	if err := h.votes.Delete(c.Request.Context(), id); err != nil {
		slog.Error("vote delete failed", "vote_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	c.JSON(http.StatusOK, api.OK(nil))
}
