package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"pijin_gateway/internal/app/router"
	"pijin_gateway/internal/feature/auth/adapters/facebook"
	authhandler "pijin_gateway/internal/feature/auth/transport/handler"
	authusecase "pijin_gateway/internal/feature/auth/usecase"
	entryhandler "pijin_gateway/internal/feature/entries/transport/handler"
	entryusecase "pijin_gateway/internal/feature/entries/usecase"
	votehandler "pijin_gateway/internal/feature/votes/transport/handler"
	voteusecase "pijin_gateway/internal/feature/votes/usecase"
	"pijin_gateway/internal/platform/config"
	"pijin_gateway/internal/platform/httpclient"
	"pijin_gateway/internal/platform/redis"
	"pijin_gateway/internal/platform/rpc"
	"pijin_gateway/internal/platform/state"
	"pijin_gateway/internal/platform/token"
	"pijin_gateway/internal/shared/ratelimiter"
)

func main() {
	// .env は開発用。本番は環境変数を直接渡す
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// バックエンドRPC
	directoryConn, err := rpc.Dial(cfg.DirectoryAddr, cfg.RPCTimeout)
	if err != nil {
		log.Fatal(err)
	}
	defer directoryConn.Close()

	credentialConn, err := rpc.Dial(cfg.CredentialAddr, cfg.RPCTimeout)
	if err != nil {
		log.Fatal(err)
	}
	defer credentialConn.Close()

	directory := rpc.NewDirectory(directoryConn)
	credential := rpc.NewCredential(credentialConn)

	// フェデレーテッドログインのstate保存用Redis
	rdb, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal(err)
	}
	defer rdb.Close()

	// トークン
	generator := token.NewGenerator(cfg.TokenSecret, cfg.TokenTTL)
	verifier := token.NewVerifier(cfg.TokenSecret)

	// 外部IDプロバイダー
	provider := facebook.New(facebook.Config{
		AppID:       cfg.FacebookAppID,
		AppSecret:   cfg.FacebookAppSecret,
		CallbackURL: cfg.FacebookCallbackURL,
	}, httpclient.New(10*time.Second), ratelimiter.NewRateLimiter(10, time.Second))

	// Usecase
	authUC := authusecase.NewAuthUsecase(directory, credential, generator)
	entryUC := entryusecase.NewEntryUsecase(directory)
	voteUC := voteusecase.NewVoteUsecase(directory)

	// Handler
	states := state.NewStore(rdb, "login:state", cfg.StateTTL)
	authH := authhandler.NewAuthHandler(authUC, provider, states)
	entryH := entryhandler.NewEntryHandler(entryUC)
	voteH := votehandler.NewVoteHandler(voteUC)

	r := router.New(router.Deps{
		Verifier:   verifier,
		Directory:  directory,
		Auth:       authH,
		Entries:    entryH,
		Votes:      voteH,
		FetchEntry: entryUC.FetchByID,
		FetchVote:  voteUC.FetchByID,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
