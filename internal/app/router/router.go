// Package router はゲートウェイのHTTPルーティングを組み立てます。
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pijin_gateway/internal/api"
	authhandler "pijin_gateway/internal/feature/auth/transport/handler"
	entryentity "pijin_gateway/internal/feature/entries/domain/entity"
	entryhandler "pijin_gateway/internal/feature/entries/transport/handler"
	"pijin_gateway/internal/feature/identity"
	voteentity "pijin_gateway/internal/feature/votes/domain/entity"
	votehandler "pijin_gateway/internal/feature/votes/transport/handler"
	"pijin_gateway/internal/platform/token"
)

// Deps はルーティングに必要なハンドラーとミドルウェアの依存一式です。
type Deps struct {
	Verifier  *token.Verifier
	Directory identity.DirectoryService
	Auth      *authhandler.AuthHandler
	Entries   *entryhandler.EntryHandler
	Votes     *votehandler.VoteHandler

	// FetchEntry / FetchVote は所有権ガードが使う単一取得です。
	FetchEntry identity.Fetch
	FetchVote  identity.Fetch
}

// New はゲートウェイの全ルートを登録したエンジンを返します。
func New(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", Health)
	r.HEAD("/healthz", Health)
	r.OPTIONS("/healthz", Health)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Welcome to Pijin.ng API service",
		})
	})

	// 認証不要
	auth := r.Group("/auth")
	{
		auth.POST("/signup", d.Auth.Signup)
		auth.POST("/login", d.Auth.Login)
		auth.GET("/login/federated", d.Auth.FederatedLogin)
		auth.GET("/login/federated/callback", d.Auth.FederatedCallback)
	}

	// 認証必須のルート。トークン検証とアイデンティティ解決を通す
	authed := r.Group("/", identity.RequireUser(d.Verifier, d.Directory))
	{
		authed.GET("/auth/me", d.Auth.Me)
		authed.POST("/auth/me", d.Auth.UpdateMe)

		entries := authed.Group("/entries")
		{
			entries.POST("", d.Entries.Create)
			entries.GET("", d.Entries.List)

			// IDスコープのルートは所有者のみアクセス可能
			ownEntry := identity.RequireOwner[entryentity.Entry](
				"entryID", "Entry", entryhandler.ContextEntry, d.FetchEntry)
			entries.GET("/:entryID", ownEntry, d.Entries.Get)
			entries.POST("/:entryID", ownEntry, d.Entries.Update)
			entries.DELETE("/:entryID", ownEntry, d.Entries.Delete)
		}

		votes := authed.Group("/votes")
		{
			votes.POST("", d.Votes.Create)
			votes.GET("", d.Votes.List)

			ownVote := identity.RequireOwner[voteentity.Vote](
				"voteID", "Vote", votehandler.ContextVote, d.FetchVote)
			votes.GET("/:voteID", ownVote, d.Votes.Get)
			votes.POST("/:voteID", ownVote, d.Votes.Update)
			votes.DELETE("/:voteID", ownVote, d.Votes.Delete)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.Error("Not found"))
	})

	return r
}
