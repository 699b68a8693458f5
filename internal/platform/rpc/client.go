// Package rpc is the typed facade over the gateway's two gRPC backends:
// the directory service (users, entries, votes) and the credential service
// (passwords, federated-provider links).
package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

var (
	// ErrUnavailable covers every transport-level failure: unreachable
	// backend, timeout, or a malformed response.
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrConflict maps the backend's uniqueness-constraint violation
	// (codes.AlreadyExists). The federated login flow relies on it to
	// detect lost create races.
	ErrConflict = errors.New("duplicate record")
)

// Client holds one backend connection. All calls share the configured
// timeout; a call either returns or fails with ErrUnavailable.
type Client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

// Dial connects to a backend service. The connection is created once at
// process start and reused for every request.
func Dial(target string, timeout time.Duration, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(Name)),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// invoke performs one unary call and returns the response envelope.
func (c *Client) invoke(ctx context.Context, method string, req any) (*Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var env Envelope
	if err := c.conn.Invoke(ctx, method, req, &env); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("%s: %w", method, ErrConflict)
		}
		return nil, fmt.Errorf("%s: %s: %w", method, err, ErrUnavailable)
	}
	return &env, nil
}
