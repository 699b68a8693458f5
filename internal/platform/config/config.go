// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting the gateway needs.
// Backend addresses are resolved once at startup; there is no re-resolution at runtime.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"GATEWAY_PORT" envDefault:"8080"`

	// TokenSecret is the shared HMAC secret for bearer tokens.
	TokenSecret string `env:"TOKEN_SECRET,required"`

	// TokenTTL is the bearer token lifetime. 720h = 30 days.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"720h"`

	// DirectoryAddr is the gRPC address of the directory service (users, entries, votes).
	DirectoryAddr string `env:"DIRECTORY_SERVICE_ADDR,required"`

	// CredentialAddr is the gRPC address of the credential service (passwords, provider links).
	CredentialAddr string `env:"CREDENTIAL_SERVICE_ADDR,required"`

	// RPCTimeout bounds every single backend call.
	RPCTimeout time.Duration `env:"RPC_TIMEOUT" envDefault:"10s"`

	// RedisAddr and RedisPassword configure the login-state store.
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// StateTTL is how long an issued federated-login state nonce stays valid.
	StateTTL time.Duration `env:"LOGIN_STATE_TTL" envDefault:"5m"`

	// Facebook identity provider settings.
	FacebookAppID       string `env:"FB_APP_ID"`
	FacebookAppSecret   string `env:"FB_APP_SECRET"`
	FacebookCallbackURL string `env:"FB_CALLBACK_URL"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
