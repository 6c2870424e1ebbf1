package router

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/dtroode/sweetshop-server/internal/api/grpc/middleware"
	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/model"
)

// ServiceName is the grpc.health.v1 service name reported for the shop API.
const ServiceName = "sweetshop.Inventory"

const pingTimeout = 2 * time.Second

// Router represents the operations gRPC endpoint: standard health checking
// backed by a database ping, plus server reflection.
type Router struct {
	pinger model.Pinger
	health *health.Server
	logger *logger.Logger
}

// New creates new operations Router.
func New(pinger model.Pinger, logger *logger.Logger) *Router {
	return &Router{
		pinger: pinger,
		health: health.NewServer(),
		logger: logger,
	}
}

// Register builds the gRPC server with recovery and request logging interceptors.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(r.handlePanic)),
			logging.HandleGRPC,
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandler(r.handlePanic)),
		),
	)

	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}

func (r *Router) handlePanic(p any) error {
	r.logger.Error("gRPC handler panicked", "panic", p)
	return status.Error(codes.Internal, "internal server error")
}

// CheckHealth pings the database and publishes the result for both the
// overall server ("") and ServiceName.
func (r *Router) CheckHealth(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if r.pinger == nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	} else {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := r.pinger.Ping(pingCtx); err != nil {
			r.logger.Warn("gRPC health: database ping failed", "error", err.Error())
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	r.health.SetServingStatus("", st)
	r.health.SetServingStatus(ServiceName, st)
	return st
}

// MonitorHealth refreshes the serving status every interval until ctx is done,
// then marks the server as shutting down.
func (r *Router) MonitorHealth(ctx context.Context, interval time.Duration) {
	r.CheckHealth(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.health.Shutdown()
			return
		case <-ticker.C:
			r.CheckHealth(ctx)
		}
	}
}
