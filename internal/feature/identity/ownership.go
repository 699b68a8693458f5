package identity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pijin_gateway/internal/api"
	"pijin_gateway/internal/platform/rpc"
)

// Owned is implemented by any resource that carries an owner id
// (an entry's author, a vote's voter).
type Owned interface {
	OwnerID() string
}

// Fetch loads one resource by id, non-deleted, from the directory service.
type Fetch func(ctx context.Context, id string) (*rpc.Envelope, error)

// RequireOwner returns a middleware that fetches the resource named by the
// route parameter and confirms the resolved identity owns it. On success the
// decoded resource is stored under contextKey so handlers need not re-fetch.
// The comparison and rejection logic is shared by every resource kind; only
// the fetch operation differs.
func RequireOwner[T Owned](param, label, contextKey string, fetch Fetch) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(param)

		env, err := fetch(c.Request.Context(), id)
		if err != nil {
			slog.Error("resource fetch failed", "resource", label, "id", id, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
			return
		}
		if env.Empty() {
			c.AbortWithStatusJSON(http.StatusNotFound, api.Error(fmt.Sprintf("%s not found", label)))
			return
		}

		var resource T
		if err := env.Decode(&resource); err != nil {
			slog.Error("resource payload decode failed", "resource", label, "id", id, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Error("upstream unavailable"))
			return
		}

		user := CurrentUser(c)
		if user == nil || resource.OwnerID() != user.ID {
			c.AbortWithStatusJSON(http.StatusForbidden,
				api.Error(fmt.Sprintf("Unauthorized to view %s", strings.ToLower(label))))
			return
		}

		c.Set(contextKey, resource)
		c.Next()
	}
}
