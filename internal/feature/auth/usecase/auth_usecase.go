// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"pijin_gateway/internal/feature/auth/domain"
	"pijin_gateway/internal/feature/auth/domain/entity"
	"pijin_gateway/internal/platform/rpc"
)

// DirectoryService はディレクトリサービスのユーザー操作を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/rpc）ではなくコンシューマー（usecase）が定義します。
type DirectoryService interface {
	CreateUser(ctx context.Context, req rpc.CreateUserRequest) (*rpc.Envelope, error)
	GetUserByID(ctx context.Context, req rpc.GetUserByIDRequest) (*rpc.Envelope, error)
	GetUserByUsername(ctx context.Context, req rpc.GetUserByUsernameRequest) (*rpc.Envelope, error)
	UpdateUser(ctx context.Context, req rpc.UpdateUserRequest) (*rpc.Envelope, error)
}

// CredentialService はクレデンシャルサービスの操作を抽象化します。
type CredentialService interface {
	CreateAuthorization(ctx context.Context, req rpc.CreateAuthorizationRequest) (*rpc.Envelope, error)
	GetAuthorizationByProviderID(ctx context.Context, req rpc.GetAuthorizationRequest) (*rpc.Envelope, error)
	ValidatePassword(ctx context.Context, req rpc.ValidatePasswordRequest) (*rpc.Envelope, error)
}

// TokenIssuer は署名済みベアラートークンの発行を抽象化します。
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	directory  DirectoryService
	credential CredentialService
	tokens     TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(directory DirectoryService, credential CredentialService, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		directory:  directory,
		credential: credential,
		tokens:     tokens,
	}
}

// Signup は新規ユーザーをディレクトリサービスに作成し、
// パスワードクレデンシャルをクレデンシャルサービスに登録します。
// 成功時は即座に使える署名済みトークンも返します。
func (u *authUsecase) Signup(ctx context.Context, username, password string) (*entity.User, string, error) {
	env, err := u.directory.CreateUser(ctx, rpc.CreateUserRequest{Username: username})
	if err != nil {
		// ユーザー名の一意性制約違反はクライアントエラーとして返す
		if errors.Is(err, rpc.ErrConflict) {
			return nil, "", domain.ErrDuplicateUsername
		}
		return nil, "", err
	}

	var user entity.User
	if err := env.Decode(&user); err != nil {
		return nil, "", fmt.Errorf("decode created user: %w", err)
	}

	if _, err := u.credential.CreateAuthorization(ctx, rpc.CreateAuthorizationRequest{
		UserID:   user.ID,
		Password: password,
	}); err != nil {
		return nil, "", err
	}

	return u.withToken(&user)
}

// Login はユーザー名とパスワードを検証し、成功時にユーザーと署名済みトークンを返します。
// パスワードの照合はクレデンシャルサービスが行い、ゲートウェイはハッシュを扱いません。
func (u *authUsecase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	env, err := u.directory.GetUserByUsername(ctx, rpc.GetUserByUsernameRequest{Username: username, Deleted: false})
	if err != nil {
		return nil, "", err
	}
	if env.Empty() {
		return nil, "", domain.ErrUserNotFound
	}

	var user entity.User
	if err := env.Decode(&user); err != nil {
		return nil, "", fmt.Errorf("decode user: %w", err)
	}

	venv, err := u.credential.ValidatePassword(ctx, rpc.ValidatePasswordRequest{UserID: user.ID, Password: password})
	if err != nil {
		return nil, "", err
	}
	var valid bool
	if err := venv.Decode(&valid); err != nil {
		return nil, "", fmt.Errorf("decode password check: %w", err)
	}
	if !valid {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return &user, token, nil
}

// Update は解決済みアイデンティティ自身のレコードを更新します。
func (u *authUsecase) Update(ctx context.Context, id, username string) (*entity.User, error) {
	env, err := u.directory.UpdateUser(ctx, rpc.UpdateUserRequest{ID: id, Username: username})
	if err != nil {
		if errors.Is(err, rpc.ErrConflict) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}
	if env.Empty() {
		return nil, domain.ErrUserNotFound
	}

	var user entity.User
	if err := env.Decode(&user); err != nil {
		return nil, fmt.Errorf("decode updated user: %w", err)
	}
	return &user, nil
}
