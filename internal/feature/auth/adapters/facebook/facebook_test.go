package facebook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noLimit はテスト用に何もしないレートリミッターです。
type noLimit struct{}

func (noLimit) WaitIfNeeded() {}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Facebook {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		AppID:       "app-1",
		AppSecret:   "secret-1",
		CallbackURL: "https://gateway.example/auth/login/federated/callback",
		GraphURL:    srv.URL,
	}, srv.Client(), noLimit{})
}

func TestAuthURL(t *testing.T) {
	fb := New(Config{
		AppID:       "app-1",
		CallbackURL: "https://gateway.example/cb",
	}, &http.Client{Timeout: time.Second}, noLimit{})

	u, err := url.Parse(fb.AuthURL("state-123"))
	require.NoError(t, err)

	assert.Equal(t, "www.facebook.com", u.Host)
	assert.Equal(t, "app-1", u.Query().Get("client_id"))
	assert.Equal(t, "https://gateway.example/cb", u.Query().Get("redirect_uri"))
	assert.Equal(t, "state-123", u.Query().Get("state"))
}

func TestAuthenticate(t *testing.T) {
	fb := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/access_token":
			assert.Equal(t, "code-1", r.URL.Query().Get("code"))
			assert.Equal(t, "app-1", r.URL.Query().Get("client_id"))
			_, _ = w.Write([]byte(`{"access_token":"at-1"}`))
		case "/me":
			assert.Equal(t, "at-1", r.URL.Query().Get("access_token"))
			_, _ = w.Write([]byte(`{"id":"fb-100","name":"Kemi A"}`))
		default:
			http.NotFound(w, r)
		}
	})

	profile, err := fb.Authenticate(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "facebook", profile.Provider)
	assert.Equal(t, "fb-100", profile.ID)
	assert.Equal(t, "Kemi A", profile.Name)
}

func TestAuthenticate_BadCode(t *testing.T) {
	fb := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid verification code"}}`))
	})

	_, err := fb.Authenticate(context.Background(), "bad-code")
	assert.ErrorContains(t, err, "Invalid verification code")
}

func TestAuthenticate_ProviderDown(t *testing.T) {
	fb := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := fb.Authenticate(context.Background(), "code-1")
	assert.ErrorContains(t, err, "facebook http 502")
}
