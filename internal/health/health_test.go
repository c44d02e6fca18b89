package health

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type mockHealthClient struct {
	grpc_health_v1.HealthClient
	checkFunc func(ctx context.Context, in *grpc_health_v1.HealthCheckRequest, opts ...grpc.CallOption) (*grpc_health_v1.HealthCheckResponse, error)
}

func (m *mockHealthClient) Check(ctx context.Context, in *grpc_health_v1.HealthCheckRequest, opts ...grpc.CallOption) (*grpc_health_v1.HealthCheckResponse, error) {
	return m.checkFunc(ctx, in, opts...)
}

func TestCheckServerHealth(t *testing.T) {
	mockHealth := &mockHealthClient{}
	old := healthNewHealthClient
	healthNewHealthClient = func(cc grpc.ClientConnInterface) grpc_health_v1.HealthClient {
		return mockHealth
	}
	defer func() { healthNewHealthClient = old }()

	c := &client{}

	tests := []struct {
		name      string
		checkFunc func(ctx context.Context, in *grpc_health_v1.HealthCheckRequest, opts ...grpc.CallOption) (*grpc_health_v1.HealthCheckResponse, error)
		expectErr string
	}{
		{
			name: "Success",
			checkFunc: func(ctx context.Context, in *grpc_health_v1.HealthCheckRequest, opts ...grpc.CallOption) (*grpc_health_v1.HealthCheckResponse, error) {
				return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}, nil
			},
		},
		{
			name: "Error",
			checkFunc: func(ctx context.Context, in *grpc_health_v1.HealthCheckRequest, opts ...grpc.CallOption) (*grpc_health_v1.HealthCheckResponse, error) {
				return nil, errors.New("health fail")
			},
			expectErr: "health check failed: health fail",
		},
		{
			name: "NotServing",
			checkFunc: func(ctx context.Context, in *grpc_health_v1.HealthCheckRequest, opts ...grpc.CallOption) (*grpc_health_v1.HealthCheckResponse, error) {
				return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}, nil
			},
			expectErr: "server not serving: NOT_SERVING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockHealth.checkFunc = tt.checkFunc
			err := c.CheckServerHealth(context.Background())
			if tt.expectErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expectErr)
			}
		})
	}
}

func TestClient_CloseWithoutConnection(t *testing.T) {
	c := &client{}
	assert.NoError(t, c.Close())
}

func TestServer_Lifecycle(t *testing.T) {
	srv := NewServer("0", zap.NewNop())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(listener) }()

	c, err := NewClient(listener.Addr().String())
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = c.CheckServerHealth(ctx)
	assert.EqualError(t, err, "server not serving: NOT_SERVING")

	srv.SetServing(true)
	assert.NoError(t, c.CheckServerHealth(ctx))

	srv.SetServing(false)
	assert.Error(t, c.CheckServerHealth(ctx))

	srv.Stop()
	select {
	case err = <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("health server did not stop")
	}
}

func TestCheck(t *testing.T) {
	srv := NewServer("0", zap.NewNop())
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(listener) }()
	defer srv.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.EqualError(t, Check(ctx, listener.Addr().String()), "server not serving: NOT_SERVING")

	srv.SetServing(true)
	assert.NoError(t, Check(ctx, listener.Addr().String()))
}

func TestCheck_Unreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = Check(ctx, address)
	assert.ErrorContains(t, err, "health check failed")
}

func TestServer_Listen(t *testing.T) {
	srv := NewServer("0", nil)

	listener, err := srv.Listen()
	assert.NoError(t, err)
	assert.NotNil(t, listener)
	listener.Close()
}
