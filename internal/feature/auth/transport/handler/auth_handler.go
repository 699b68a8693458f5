// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pijin_gateway/internal/api"
	"pijin_gateway/internal/feature/auth/domain"
	"pijin_gateway/internal/feature/auth/domain/entity"
	"pijin_gateway/internal/feature/auth/transport/http/dto"
	"pijin_gateway/internal/feature/auth/usecase"
	"pijin_gateway/internal/feature/identity"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーとパスワードクレデンシャルを作成し、署名済みトークンを返します。
	Signup(ctx context.Context, username, password string) (*entity.User, string, error)
	// Login は認証に成功したユーザーと署名済みトークンを返します。
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
	// Update は呼び出し元自身のレコードを更新します。
	Update(ctx context.Context, id, username string) (*entity.User, error)
	// FederatedLogin はプロバイダープロフィールを内部ユーザーとトークンに解決します。
	FederatedLogin(ctx context.Context, profile usecase.ProviderProfile) (*entity.User, string, error)
}

// StateStore はフェデレーテッドログインの使い捨てstateを管理します。
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, nonce string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth     AuthUsecase
	provider usecase.Provider
	states   StateStore
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, provider usecase.Provider, states StateStore) *AuthHandler {
	return &AuthHandler{auth: auth, provider: provider, states: states}
}

// Signup はユーザー登録APIエンドポイントを処理します。
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		return
	}

	user, tok, err := h.auth.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			c.JSON(http.StatusBadRequest, api.Error("Username already exists"))
			return
		}
		slog.Error("signup failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	slog.Info("user signup successful", "user_id", user.ID, "username", user.Username)
	c.Header("Authorization", "Bearer "+tok)
	c.JSON(http.StatusOK, api.OK(user))
}

// Login はログインAPIエンドポイントを処理します。
// 成功時はAuthorizationレスポンスヘッダーでトークンを返します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		return
	}

	user, tok, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, api.Error("User not found"))
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, api.Error("Invalid username or password"))
		default:
			slog.Error("login failed", "username", req.Username, "error", err)
			c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		}
		return
	}

	slog.Info("user login successful", "user_id", user.ID)
	c.Header("Authorization", "Bearer "+tok)
	c.JSON(http.StatusOK, api.OK(user))
}

// Me は解決済みアイデンティティ自身のレコードを返します。
// 再取得はしない: RequireUserが解決したユーザーをそのまま返します。
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, api.OK(identity.CurrentUser(c)))
}

// UpdateMe は解決済みアイデンティティ自身のレコードを更新します。
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		return
	}

	user := identity.CurrentUser(c)
	updated, err := h.auth.Update(c.Request.Context(), user.ID, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.Error("Not found"))
		case errors.Is(err, domain.ErrDuplicateUsername):
			c.JSON(http.StatusBadRequest, api.Error("Username already exists"))
		default:
			slog.Error("user update failed", "user_id", user.ID, "error", err)
			c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK(updated))
}

// FederatedLogin は使い捨てstateを発行してプロバイダーへリダイレクトします。
func (h *AuthHandler) FederatedLogin(c *gin.Context) {
	state, err := h.states.Issue(c.Request.Context())
	if err != nil {
		slog.Error("state issue failed", "provider", h.provider.Name(), "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("login temporarily unavailable"))
		return
	}
	c.Redirect(http.StatusFound, h.provider.AuthURL(state))
}

// FederatedCallback はプロバイダーからのコールバックを処理します。
// state検証 → コード交換 → 内部ユーザー解決、の順で進みます。
func (h *AuthHandler) FederatedCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, api.Error("missing authorization code"))
		return
	}

	if err := h.states.Consume(c.Request.Context(), c.Query("state")); err != nil {
		c.JSON(http.StatusForbidden, api.Error("invalid login state"))
		return
	}

	profile, err := h.provider.Authenticate(c.Request.Context(), code)
	if err != nil {
		slog.Error("provider authentication failed", "provider", h.provider.Name(), "error", err)
		c.JSON(http.StatusBadGateway, api.Error("identity provider unavailable"))
		return
	}

	user, tok, err := h.auth.FederatedLogin(c.Request.Context(), *profile)
	if err != nil {
		slog.Error("federated login failed", "provider", profile.Provider, "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
		return
	}

	slog.Info("federated login successful", "provider", profile.Provider, "user_id", user.ID)
	c.Header("Authorization", "Bearer "+tok)
	c.JSON(http.StatusOK, api.OK(user))
}
