// Package rpctest provides an in-process backend double for facade tests.
// It serves the same JSON-over-gRPC envelope contract as the real directory
// and credential services, over an in-memory listener.
package rpctest

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"pijin_gateway/internal/platform/rpc"
)

// Handler serves one backend method. The request arrives as the decoded
// JSON object; the returned envelope (or error status) goes back to the
// caller unchanged.
type Handler func(ctx context.Context, req map[string]any) (*rpc.Envelope, error)

// Backend is a scriptable stand-in for one backend service.
type Backend struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    map[string]int
}

// New creates an empty backend. Methods without a handler answer Unimplemented.
func New() *Backend {
	return &Backend{
		handlers: make(map[string]Handler),
		calls:    make(map[string]int),
	}
}

// Handle registers a handler for a full method name
// such as "/pijin.Directory/GetUserByID".
func (b *Backend) Handle(fullMethod string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[fullMethod] = h
}

// Calls reports how many times a method has been served.
func (b *Backend) Calls(fullMethod string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[fullMethod]
}

// Start serves the backend on an in-memory listener and returns a facade
// client dialed against it. Everything is torn down via t.Cleanup.
func (b *Backend) Start(t *testing.T) *rpc.Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnknownServiceHandler(b.route))
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	client, err := rpc.Dial("passthrough:///backend", time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

// route dispatches any incoming unary call to the registered handler.
func (b *Backend) route(_ any, stream grpc.ServerStream) error {
	method, ok := grpc.MethodFromServerStream(stream)
	if !ok {
		return status.Error(codes.Internal, "no method in stream")
	}

	b.mu.Lock()
	h := b.handlers[method]
	b.calls[method]++
	b.mu.Unlock()

	if h == nil {
		return status.Errorf(codes.Unimplemented, "no handler for %s", method)
	}

	var req map[string]any
	if err := stream.RecvMsg(&req); err != nil {
		return err
	}

	env, err := h(stream.Context(), req)
	if err != nil {
		return err
	}
	return stream.SendMsg(env)
}

// Data builds an envelope carrying the JSON encoding of v.
func Data(t *testing.T, v any) *rpc.Envelope {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	s := string(raw)
	return &rpc.Envelope{Data: &s}
}

// Null builds an envelope with no payload (a legitimate empty result).
func Null() *rpc.Envelope {
	return &rpc.Envelope{}
}
