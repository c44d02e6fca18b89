package health

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var healthNewHealthClient = grpc_health_v1.NewHealthClient

type Client interface {
	CheckServerHealth(ctx context.Context) error
	Close() error
}

type client struct {
	conn *grpc.ClientConn
}

func NewClient(address string) (Client, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to health server at %s: %w", address, err)
	}
	return &client{conn: conn}, nil
}

func (c *client) CheckServerHealth(ctx context.Context) error {
	healthClient := healthNewHealthClient(c.conn)
	resp, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: "",
	})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("server not serving: %v", resp.Status)
	}
	return nil
}

func (c *client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Check dials address, asks for the overall serving status and closes the
// connection.
func Check(ctx context.Context, address string) error {
	c, err := NewClient(address)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return c.CheckServerHealth(ctx)
}
