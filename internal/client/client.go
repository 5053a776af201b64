// Package client queries a running lfsync daemon over gRPC.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

// StatusClient checks the health services of a daemon.
type StatusClient struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
}

// NewGRPCClient connects to the given gRPC address and returns a client. A
// non-empty token is sent as a Bearer authorization header on every call.
func NewGRPCClient(addr, token string) (*StatusClient, error) {
	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if token != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(bearerTokenInterceptor(token)))
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial: %w", err)
	}
	return NewWithConn(conn), nil
}

// NewWithConn wraps an existing connection.
func NewWithConn(conn *grpc.ClientConn) *StatusClient {
	return &StatusClient{conn: conn, health: healthpb.NewHealthClient(conn)}
}

func (c *StatusClient) Close() error {
	return c.conn.Close()
}

// Check returns the serving status of one health service. The empty name is
// the daemon as a whole.
func (c *StatusClient) Check(ctx context.Context, service string) (*healthpb.HealthCheckResponse, error) {
	return c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
}

// bearerTokenInterceptor attaches a Bearer authorization header to every call.
func bearerTokenInterceptor(token string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
