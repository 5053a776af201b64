package client

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

func TestCheckSendsToken(t *testing.T) {
	var gotAuth []string
	capture := func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		gotAuth = md.Get("authorization")
		return handler(ctx, req)
	}

	hs := health.NewServer()
	hs.SetServingStatus("lfsync.replay", healthpb.HealthCheckResponse_NOT_SERVING)
	srv := grpc.NewServer(grpc.UnaryInterceptor(capture))
	healthpb.RegisterHealthServer(srv, hs)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	c, err := NewGRPCClient(lis.Addr().String(), "secret")
	if err != nil {
		t.Fatalf("NewGRPCClient: %v", err)
	}
	defer c.Close()

	resp, err := c.Check(context.Background(), "lfsync.replay")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status = %v", resp.GetStatus())
	}
	if len(gotAuth) != 1 || gotAuth[0] != "Bearer secret" {
		t.Fatalf("authorization = %v", gotAuth)
	}
}
