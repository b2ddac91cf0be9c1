package server

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServiceName is the gRPC health service name reported for the API.
const HealthServiceName = "swn.chargen"

// HealthService serves the standard gRPC health-checking protocol so
// orchestrators can probe the process.
type HealthService struct {
	addr   string
	logger *zap.Logger
	grpc   *grpc.Server
	status *health.Server
}

// NewHealthService creates a health service for addr. Both the overall and
// the HealthServiceName status start as NOT_SERVING until Start listens.
func NewHealthService(addr string, logger *zap.Logger) *HealthService {
	status := health.NewServer()
	status.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	status.SetServingStatus(HealthServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, status)
	return &HealthService{addr: addr, logger: logger, grpc: srv, status: status}
}

// Start listens on the configured address and marks the API serving.
func (h *HealthService) Start() error {
	lis, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", h.addr, err)
	}
	return h.Serve(lis)
}

// Serve runs the health server on an existing listener.
func (h *HealthService) Serve(lis net.Listener) error {
	h.status.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.status.SetServingStatus(HealthServiceName, healthpb.HealthCheckResponse_SERVING)
	h.logger.Info("grpc health listening", zap.String("addr", lis.Addr().String()))
	if err := h.grpc.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// Stop reports NOT_SERVING and drains the gRPC server.
func (h *HealthService) Stop() {
	h.status.Shutdown()
	h.grpc.GracefulStop()
}
