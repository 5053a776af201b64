// Package server exposes the replication daemon's health over gRPC. Each
// scheduled unit reports as its own health service, named "lfsync.<unit>";
// the empty service name reflects the daemon as a whole.
package server

import (
	"context"
	"log/slog"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServicePrefix prefixes unit names to form health service names.
const ServicePrefix = "lfsync."

// ServiceName returns the health service name of a unit.
func ServiceName(unit string) string {
	return ServicePrefix + unit
}

// Server tracks unit health and serves it over gRPC.
type Server struct {
	health *health.Server
	grpc   *grpc.Server
	logger *slog.Logger

	mu     sync.Mutex
	failed map[string]bool
}

// New creates a server. Units start out serving until a pass fails.
func New(units []string, authToken string, logger *slog.Logger) *Server {
	hs := health.NewServer()
	s := &Server{
		health: hs,
		grpc:   NewGRPCServer(hs, authToken, logger),
		logger: logger,
		failed: make(map[string]bool),
	}
	for _, u := range units {
		hs.SetServingStatus(ServiceName(u), healthpb.HealthCheckResponse_SERVING)
	}
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return s
}

// Report records the outcome of a unit pass. A failed pass marks the unit
// NOT_SERVING, and the daemon as a whole while any unit is failing.
func (s *Server) Report(unit string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
		if !s.failed[unit] {
			s.logger.Warn("unit unhealthy", "unit", unit, "err", err)
		}
		s.failed[unit] = true
	} else {
		if s.failed[unit] {
			s.logger.Info("unit recovered", "unit", unit)
		}
		delete(s.failed, unit)
	}
	s.health.SetServingStatus(ServiceName(unit), st)

	overall := healthpb.HealthCheckResponse_SERVING
	if len(s.failed) > 0 {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", overall)
}

// Track wraps a unit's run function so every pass is reported.
func (s *Server) Track(unit string, run func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		err := run(ctx)
		if ctx.Err() == nil {
			s.Report(unit, err)
		}
		return err
	}
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Stop marks every service NOT_SERVING and stops the server gracefully.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
