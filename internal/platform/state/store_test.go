package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Defaults(t *testing.T) {
	db, _ := redismock.NewClientMock()

	tests := []struct {
		name       string
		prefix     string
		ttl        time.Duration
		wantPrefix string
		wantTTL    time.Duration
	}{
		{"zero values use defaults", "", 0, "login:state", 5 * time.Minute},
		{"negative ttl uses default", "custom", -time.Minute, "custom", 5 * time.Minute},
		{"explicit values kept", "fb:state", time.Minute, "fb:state", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(db, tt.prefix, tt.ttl)
			assert.Equal(t, tt.wantPrefix, s.prefix)
			assert.Equal(t, tt.wantTTL, s.ttl)
		})
	}
}

func TestStore_Issue(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewStore(db, "", 0)

	// The nonce is random, so match the key by pattern.
	mock.Regexp().ExpectSet(`login:state:[0-9a-f-]+`, `1`, 5*time.Minute).SetVal("OK")

	nonce, err := s.Issue(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, nonce)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_IssueRedisDown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewStore(db, "", 0)

	mock.Regexp().ExpectSet(`login:state:[0-9a-f-]+`, `1`, 5*time.Minute).SetErr(errors.New("connection refused"))

	_, err := s.Issue(context.Background())
	assert.Error(t, err)
}

func TestStore_Consume(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewStore(db, "", 0)

	mock.ExpectGetDel("login:state:abc").SetVal("1")

	assert.NoError(t, s.Consume(context.Background(), "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ConsumeUnknown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewStore(db, "", 0)

	mock.ExpectGetDel("login:state:expired").RedisNil()

	err := s.Consume(context.Background(), "expired")
	assert.True(t, errors.Is(err, ErrUnknownState))
}

func TestStore_ConsumeEmpty(t *testing.T) {
	db, _ := redismock.NewClientMock()
	s := NewStore(db, "", 0)

	// 空文字のstateはRedisに問い合わせず拒否する
	err := s.Consume(context.Background(), "")
	assert.True(t, errors.Is(err, ErrUnknownState))
}
