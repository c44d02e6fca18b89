package health

import (
	"errors"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name reported alongside the overall ("") status.
const Service = "pistache.HTTP"

type Server interface {
	Listen() (net.Listener, error)
	Serve(listener net.Listener) error
	SetServing(serving bool)
	Stop()
}

type server struct {
	port   string
	grpc   *grpc.Server
	health *health.Server
	logger *zap.Logger
}

func NewServer(port string, logger *zap.Logger) Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gs := grpc.NewServer()
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(Service, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &server{
		port:   port,
		grpc:   gs,
		health: hs,
		logger: logger,
	}
}

func (s *server) Listen() (net.Listener, error) {
	return net.Listen("tcp", ":"+s.port)
}

func (s *server) Serve(listener net.Listener) error {
	s.logger.Info("health server is starting", zap.String("port", s.port))
	err := s.grpc.Serve(listener)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

func (s *server) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(Service, status)
}

// Stop marks every service as not serving and stops the gRPC server.
func (s *server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
