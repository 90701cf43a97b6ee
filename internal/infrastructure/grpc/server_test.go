package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startServer(t *testing.T) (*Server, healthpb.HealthClient) {
	t.Helper()

	srv := NewServer(Config{Port: "0", Timeout: 1}, zap.NewNop())
	lis := bufconn.Listen(1 << 20)

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		<-done
	})

	return srv, healthpb.NewHealthClient(conn)
}

// statusOf returns UNKNOWN when the call itself fails.
func statusOf(client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return resp.GetStatus()
}

func TestServer_HealthServing(t *testing.T) {
	_, client := startServer(t)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, statusOf(client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, statusOf(client, ServiceName))
}

func TestServer_WatchHealthFollowsProbe(t *testing.T) {
	srv, client := startServer(t)

	var failing atomic.Bool
	failing.Store(true)
	probe := func(ctx context.Context) error {
		if failing.Load() {
			return errors.New("postgres ping failed")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	watching := make(chan struct{})
	go func() {
		defer close(watching)
		srv.WatchHealth(ctx, 10*time.Millisecond, probe)
	}()
	defer func() {
		cancel()
		<-watching
	}()

	require.Eventually(t, func() bool {
		return statusOf(client, ServiceName) == healthpb.HealthCheckResponse_NOT_SERVING
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, statusOf(client, ""))

	failing.Store(false)
	require.Eventually(t, func() bool {
		return statusOf(client, ServiceName) == healthpb.HealthCheckResponse_SERVING
	}, 5*time.Second, 20*time.Millisecond)
}
