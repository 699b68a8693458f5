package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pijin_gateway/internal/platform/rpc"
)

// fakeBackend は一意性制約を持つ両バックエンドのインメモリ偽実装です。
// フェデレーテッドログインの冪等性と競合修復の検証に使います。
type fakeBackend struct {
	mu          sync.Mutex
	nextID      int
	users       map[string]string // id -> username
	usernames   map[string]bool
	credentials map[string]string // providerID -> userID

	// holdLookup が真の間、ルックアップは常に空を返します。
	// 並行初回ログインがステップ1を両方すり抜ける状況の再現用。
	holdLookup bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users:       make(map[string]string),
		usernames:   make(map[string]bool),
		credentials: make(map[string]string),
	}
}

func (f *fakeBackend) CreateUser(_ context.Context, req rpc.CreateUserRequest) (*rpc.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usernames[req.Username] {
		return nil, rpc.ErrConflict
	}
	f.nextID++
	id := fmt.Sprintf("u-%d", f.nextID)
	f.users[id] = req.Username
	f.usernames[req.Username] = true
	payload := fmt.Sprintf(`{"id":%q,"username":%q}`, id, req.Username)
	return &rpc.Envelope{Data: &payload}, nil
}

func (f *fakeBackend) GetUserByID(_ context.Context, req rpc.GetUserByIDRequest) (*rpc.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	username, ok := f.users[req.ID]
	if !ok {
		return &rpc.Envelope{}, nil
	}
	payload := fmt.Sprintf(`{"id":%q,"username":%q}`, req.ID, username)
	return &rpc.Envelope{Data: &payload}, nil
}

func (f *fakeBackend) GetUserByUsername(context.Context, rpc.GetUserByUsernameRequest) (*rpc.Envelope, error) {
	return nil, errors.New("not used")
}

func (f *fakeBackend) UpdateUser(context.Context, rpc.UpdateUserRequest) (*rpc.Envelope, error) {
	return nil, errors.New("not used")
}

func (f *fakeBackend) CreateAuthorization(_ context.Context, req rpc.CreateAuthorizationRequest) (*rpc.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.ProviderID != "" {
		if _, exists := f.credentials[req.ProviderID]; exists {
			// プロバイダーIDの一意性制約
			return nil, rpc.ErrConflict
		}
		f.credentials[req.ProviderID] = req.UserID
		// 作成が成功した時点で、以後のルックアップは必ず成功する
		f.holdLookup = false
	}
	payload := fmt.Sprintf(`{"userId":%q,"providerId":%q}`, req.UserID, req.ProviderID)
	return &rpc.Envelope{Data: &payload}, nil
}

func (f *fakeBackend) GetAuthorizationByProviderID(_ context.Context, req rpc.GetAuthorizationRequest) (*rpc.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.holdLookup {
		return &rpc.Envelope{}, nil
	}
	userID, ok := f.credentials[req.ProviderID]
	if !ok {
		return &rpc.Envelope{}, nil
	}
	payload := fmt.Sprintf(`{"userId":%q,"providerId":%q}`, userID, req.ProviderID)
	return &rpc.Envelope{Data: &payload}, nil
}

func (f *fakeBackend) ValidatePassword(context.Context, rpc.ValidatePasswordRequest) (*rpc.Envelope, error) {
	return nil, errors.New("not used")
}

func (f *fakeBackend) credentialCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.credentials)
}

func TestFederatedLogin_FirstLoginCreatesUserAndCredential(t *testing.T) {
	backend := newFakeBackend()
	uc := NewAuthUsecase(backend, backend, stubIssuer{})

	user, tok, err := uc.FederatedLogin(context.Background(), ProviderProfile{Provider: "facebook", ID: "fb-100"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Regexp(t, `^user\d+$`, user.Username)
	assert.Equal(t, "token-for-"+user.ID, tok)
	assert.Equal(t, 1, backend.credentialCount())
}

func TestFederatedLogin_Idempotent(t *testing.T) {
	backend := newFakeBackend()
	uc := NewAuthUsecase(backend, backend, stubIssuer{})

	first, _, err := uc.FederatedLogin(context.Background(), ProviderProfile{Provider: "facebook", ID: "fb-100"})
	require.NoError(t, err)

	// 同じプロバイダーIDでの再ログインは同じユーザーを返し、
	// クレデンシャルは増えない。
	second, _, err := uc.FederatedLogin(context.Background(), ProviderProfile{Provider: "facebook", ID: "fb-100"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, backend.credentialCount())
}

func TestFederatedLogin_ConcurrentFirstLogin(t *testing.T) {
	// 両リクエストがステップ1（ルックアップ）をすり抜けた状況から開始。
	backend := newFakeBackend()
	backend.holdLookup = true
	uc := NewAuthUsecase(backend, backend, stubIssuer{})

	var wg sync.WaitGroup
	results := make([]string, 2)
	errs := make([]error, 2)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, _, err := uc.FederatedLogin(context.Background(), ProviderProfile{Provider: "facebook", ID: "fb-100"})
			errs[i] = err
			if err == nil {
				results[i] = user.ID
			}
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// 両者が同じ解決済みユーザーに収束し、クレデンシャルはちょうど1件。
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, 1, backend.credentialCount())
}

func TestFederatedLogin_UsernameCollisionRetries(t *testing.T) {
	collisions := 0
	directory := &mockDirectory{
		createUserFn: func(_ context.Context, req rpc.CreateUserRequest) (*rpc.Envelope, error) {
			if collisions < 2 {
				collisions++
				return nil, rpc.ErrConflict
			}
			return envelope(t, map[string]any{"id": "u-7", "username": req.Username}), nil
		},
	}
	credential := &mockCredential{
		getFn: func(context.Context, rpc.GetAuthorizationRequest) (*rpc.Envelope, error) {
			return &rpc.Envelope{}, nil
		},
		createFn: func(context.Context, rpc.CreateAuthorizationRequest) (*rpc.Envelope, error) {
			return &rpc.Envelope{}, nil
		},
	}
	uc := NewAuthUsecase(directory, credential, stubIssuer{})

	user, _, err := uc.FederatedLogin(context.Background(), ProviderProfile{Provider: "facebook", ID: "fb-100"})
	require.NoError(t, err)
	assert.Equal(t, 2, collisions)
	assert.Equal(t, "u-7", user.ID)
}

func TestFederatedLogin_UpstreamFailure(t *testing.T) {
	credential := &mockCredential{
		getFn: func(context.Context, rpc.GetAuthorizationRequest) (*rpc.Envelope, error) {
			return nil, rpc.ErrUnavailable
		},
	}
	uc := NewAuthUsecase(&mockDirectory{}, credential, stubIssuer{})

	_, _, err := uc.FederatedLogin(context.Background(), ProviderProfile{Provider: "facebook", ID: "fb-100"})
	assert.True(t, errors.Is(err, rpc.ErrUnavailable))
}
