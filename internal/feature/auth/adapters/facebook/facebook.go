// Package facebook implements the Facebook identity-provider strategy over
// the Graph API.
package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"pijin_gateway/internal/feature/auth/usecase"
	"pijin_gateway/internal/shared/ratelimiter"
)

// Facebook はGraph APIを使うusecase.Provider実装です。
type Facebook struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// FacebookがProviderを実装していることをコンパイル時に検証します。
var _ usecase.Provider = (*Facebook)(nil)

// New は指定された設定とHTTPクライアントでFacebookの新しいインスタンスを生成します。
func New(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Facebook {
	cfg = cfg.withDefaults()
	return &Facebook{cfg: cfg, client: client, limiter: limiter}
}

// Name はプロバイダー名を返します。
func (f *Facebook) Name() string {
	return "facebook"
}

// AuthURL はFacebookのOAuthダイアログへのリダイレクト先URLを返します。
func (f *Facebook) AuthURL(state string) string {
	q := url.Values{}
	q.Set("client_id", f.cfg.AppID)
	q.Set("redirect_uri", f.cfg.CallbackURL)
	q.Set("state", state)
	return fmt.Sprintf("%s?%s", f.cfg.DialogURL, q.Encode())
}

// accessTokenResponse はGraph APIのトークン交換レスポンスです。
type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	Error       *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// profileResponse はGraph APIの/meレスポンスです。
type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Authenticate はコールバックの認可コードをアクセストークンに交換し、
// プロフィールを取得して返します。
func (f *Facebook) Authenticate(ctx context.Context, code string) (*usecase.ProviderProfile, error) {
	q := url.Values{}
	q.Set("client_id", f.cfg.AppID)
	q.Set("client_secret", f.cfg.AppSecret)
	q.Set("redirect_uri", f.cfg.CallbackURL)
	q.Set("code", code)

	var tok accessTokenResponse
	if err := f.get(ctx, fmt.Sprintf("%s/oauth/access_token?%s", f.cfg.GraphURL, q.Encode()), &tok); err != nil {
		return nil, err
	}
	if tok.Error != nil {
		return nil, fmt.Errorf("facebook: %s", tok.Error.Message)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("facebook: empty access token")
	}

	p := url.Values{}
	p.Set("fields", "id,name")
	p.Set("access_token", tok.AccessToken)

	var profile profileResponse
	if err := f.get(ctx, fmt.Sprintf("%s/me?%s", f.cfg.GraphURL, p.Encode()), &profile); err != nil {
		return nil, err
	}
	if profile.Error != nil {
		return nil, fmt.Errorf("facebook: %s", profile.Error.Message)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("facebook: profile has no id")
	}

	return &usecase.ProviderProfile{
		Provider: f.Name(),
		ID:       profile.ID,
		Name:     profile.Name,
	}, nil
}

// get はGraph APIへのGETを実行してJSONレスポンスをデコードします。
func (f *Facebook) get(ctx context.Context, u string, out any) error {
	f.limiter.WaitIfNeeded()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	// Graph APIはエラーでも200以外を返すことがあるため、本文のerror
	// フィールドと合わせて判定する
	if res.StatusCode >= 500 {
		return fmt.Errorf("facebook http %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
