// Package identity attaches the verified calling user to the request and
// guards resource access by ownership.
package identity

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pijin_gateway/internal/api"
	"pijin_gateway/internal/feature/auth/domain/entity"
	"pijin_gateway/internal/platform/rpc"
	"pijin_gateway/internal/platform/token"
)

// ContextUser is the gin context key the resolved identity is stored under.
const ContextUser = "authUser"

// DirectoryService はユーザー解決に必要なディレクトリサービス操作です。
// Goの慣例に従い、インターフェースはコンシューマー側で定義します。
type DirectoryService interface {
	GetUserByID(ctx context.Context, req rpc.GetUserByIDRequest) (*rpc.Envelope, error)
}

// RequireUser returns a middleware that verifies the bearer token locally
// and then resolves the live user record from the directory service.
// A cryptographically valid token is not enough: the account must still
// exist and not be soft-deleted.
func RequireUser(verifier *token.Verifier, directory DirectoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifier.Authorize(c.GetHeader("Authorization"))
		if err != nil {
			// Token errors are resolved locally, before any backend call.
			c.AbortWithStatusJSON(http.StatusForbidden, api.Error("No or invalid token provided"))
			return
		}

		env, err := directory.GetUserByID(c.Request.Context(), rpc.GetUserByIDRequest{
			ID:      claims.Subject,
			Deleted: false,
		})
		if err != nil {
			slog.Error("identity resolution failed", "user_id", claims.Subject, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
			return
		}
		if env.Empty() {
			// Valid token for an account deleted after issuance.
			c.AbortWithStatusJSON(http.StatusForbidden, api.Error("User not found"))
			return
		}

		var user entity.User
		if err := env.Decode(&user); err != nil {
			slog.Error("identity payload decode failed", "user_id", claims.Subject, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}

// CurrentUser returns the identity resolved by RequireUser, or nil when the
// middleware did not run.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*entity.User)
	return user
}
