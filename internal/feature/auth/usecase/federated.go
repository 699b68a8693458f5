package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"pijin_gateway/internal/feature/auth/domain"
	"pijin_gateway/internal/feature/auth/domain/entity"
	"pijin_gateway/internal/platform/rpc"
)

// usernameAttempts は生成ユーザー名の衝突時に再生成する最大回数です。
const usernameAttempts = 3

// FederatedLogin はプロバイダーのプロフィールを内部ユーザーに解決します。
// 既にクレデンシャルがあればそのユーザーを返し（冪等なログインパス）、
// なければユーザーとクレデンシャルリンクを新規作成します。
//
// 同一プロバイダーIDの初回ログインが並行した場合、両方がルックアップを
// すり抜けて作成に進むことがあります。その競合はクレデンシャルサービスの
// 一意性制約が検出するので、敗者はルックアップからやり直して勝者の
// ユーザーを返します。
func (u *authUsecase) FederatedLogin(ctx context.Context, profile ProviderProfile) (*entity.User, string, error) {
	for attempt := 0; ; attempt++ {
		env, err := u.credential.GetAuthorizationByProviderID(ctx, rpc.GetAuthorizationRequest{ProviderID: profile.ID})
		if err != nil {
			return nil, "", err
		}

		if !env.Empty() {
			// ログインのみのパス。書き込みは発生しない。
			var cred entity.Credential
			if err := env.Decode(&cred); err != nil {
				return nil, "", fmt.Errorf("decode credential: %w", err)
			}
			user, err := u.userByID(ctx, cred.UserID)
			if err != nil {
				return nil, "", err
			}
			return u.withToken(user)
		}

		user, err := u.createFederatedUser(ctx)
		if err != nil {
			return nil, "", err
		}

		secret, err := opaqueSecret()
		if err != nil {
			return nil, "", err
		}
		_, err = u.credential.CreateAuthorization(ctx, rpc.CreateAuthorizationRequest{
			UserID:     user.ID,
			ProviderID: profile.ID,
			Password:   secret,
		})
		if err == nil {
			return u.withToken(user)
		}
		if errors.Is(err, rpc.ErrConflict) && attempt == 0 {
			// 並行する初回ログインに敗れた。勝者のクレデンシャルが見える
			// ようになったので、ルックアップからやり直す。
			// このとき作成済みのユーザーはリンクを持たない孤児になる。
			slog.Warn("concurrent federated login detected, retrying lookup",
				"provider", profile.Provider, "orphaned_user", user.ID)
			continue
		}
		return nil, "", err
	}
}

// createFederatedUser はランダムな数字サフィックス付きユーザー名で
// ユーザーを作成します。一意性制約違反は再生成してリトライします。
func (u *authUsecase) createFederatedUser(ctx context.Context) (*entity.User, error) {
	var lastErr error
	for i := 0; i < usernameAttempts; i++ {
		username, err := generatedUsername()
		if err != nil {
			return nil, err
		}

		env, err := u.directory.CreateUser(ctx, rpc.CreateUserRequest{Username: username})
		if errors.Is(err, rpc.ErrConflict) {
			lastErr = domain.ErrDuplicateUsername
			continue
		}
		if err != nil {
			return nil, err
		}

		var user entity.User
		if err := env.Decode(&user); err != nil {
			return nil, fmt.Errorf("decode created user: %w", err)
		}
		return &user, nil
	}
	return nil, fmt.Errorf("generate unique username: %w", lastErr)
}

func (u *authUsecase) userByID(ctx context.Context, id string) (*entity.User, error) {
	env, err := u.directory.GetUserByID(ctx, rpc.GetUserByIDRequest{ID: id, Deleted: false})
	if err != nil {
		return nil, err
	}
	if env.Empty() {
		return nil, domain.ErrUserNotFound
	}
	var user entity.User
	if err := env.Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func (u *authUsecase) withToken(user *entity.User) (*entity.User, string, error) {
	token, err := u.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// generatedUsername は "user" + 10桁のランダムな数字のユーザー名を返します。
func generatedUsername() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10_000_000_000))
	if err != nil {
		return "", fmt.Errorf("generate username suffix: %w", err)
	}
	return fmt.Sprintf("user%d", n), nil
}

// opaqueSecret はパスワードを持たないプロバイダー連携用の
// ランダムな不透明シークレットを返します。
func opaqueSecret() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
