// Package handler はentriesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pijin_gateway/internal/api"
	"pijin_gateway/internal/feature/entries/domain/entity"
	"pijin_gateway/internal/feature/entries/transport/http/dto"
	"pijin_gateway/internal/feature/entries/usecase"
	"pijin_gateway/internal/feature/identity"
)

// ContextEntry は所有権ガードが解決済みエントリーを格納するコンテキストキーです。
const ContextEntry = "entry"

// EntryUsecase はエントリー操作のユースケースを定義します。
type EntryUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Entry, error)
	ListByAuthor(ctx context.Context, author string) ([]entity.Entry, error)
	Update(ctx context.Context, id string, in usecase.UpdateInput) (*entity.Entry, error)
	Delete(ctx context.Context, id string) error
}

// EntryHandler はエントリーCRUDのHTTPリクエストを処理します。
type EntryHandler struct {
	entries EntryUsecase
}

// NewEntryHandler はEntryHandlerの新しいインスタンスを生成します。
func NewEntryHandler(entries EntryUsecase) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// Create はエントリー作成エンドポイントを処理します。
// authorは解決済みアイデンティティから設定し、ボディのauthorは無視します。
func (h *EntryHandler) Create(c *gin.Context) {
	var req dto.CreateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		return
	}

	user := identity.CurrentUser(c)
	entry, err := h.entries.Create(c.Request.Context(), usecase.CreateInput{
		Name:    req.Name,
		Meaning: req.Meaning,
		Example: req.Example,
		Tags:    req.Tags,
		Image:   req.Image,
		Author:  user.ID,
	})
	if err != nil {
		slog.Error("entry create failed", "author", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	c.JSON(http.StatusOK, api.OK(entry))
}

// Get は所有権ガードが解決したエントリーをそのまま返します。再取得はしません。
func (h *EntryHandler) Get(c *gin.Context) {
	entry := c.MustGet(ContextEntry).(entity.Entry)
	c.JSON(http.StatusOK, api.OK(entry))
}

// List は呼び出し元自身のエントリーを列挙します。
func (h *EntryHandler) List(c *gin.Context) {
	user := identity.CurrentUser(c)
	entries, err := h.entries.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("entry list failed", "author", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	c.JSON(http.StatusOK, api.OK(entries))
}

// Update は所有権確認済みのエントリーを更新します。
func (h *EntryHandler) Update(c *gin.Context) {
	var req dto.UpdateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		return
	}

	id := c.Param("entryID")
	entry, err := h.entries.Update(c.Request.Context(), id, usecase.UpdateInput{
		Name:    req.Name,
		Meaning: req.Meaning,
		Example: req.Example,
		Tags:    req.Tags,
		Image:   req.Image,
	})
	if err != nil {
		slog.Error("entry update failed", "entry_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	c.JSON(http.StatusOK, api.OK(entry))
}

// Delete は所有権確認済みのエントリーをソフトデリートします。
func (h *EntryHandler) Delete(c *gin.Context) {
	id := c.Param("entryID")
	if err := h.entries.Delete(c.Request.Context(), id); err != nil {
		slog.Error("entry delete failed", "entry_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	c.JSON(http.StatusOK, api.OK(nil))
}
