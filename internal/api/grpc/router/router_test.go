package router

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dtroode/sweetshop-server/internal/mocks"
	"github.com/dtroode/sweetshop-server/internal/testutil"
)

func dial(t *testing.T, s *grpc.Server) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func TestRouter_HealthServing(t *testing.T) {
	t.Parallel()

	pinger := mocks.NewPinger(t)
	pinger.On("Ping", mock.Anything).Return(nil)

	r := New(pinger, testutil.MakeNoopLogger())
	client := dial(t, r.Register())

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, r.CheckHealth(context.Background()))

	for _, svc := range []string{"", ServiceName} {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: svc})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}
}

func TestRouter_HealthNotServing(t *testing.T) {
	t.Parallel()

	pinger := mocks.NewPinger(t)
	pinger.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	r := New(pinger, testutil.MakeNoopLogger())
	client := dial(t, r.Register())

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, r.CheckHealth(context.Background()))

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestRouter_MonitorHealthStopsWithContext(t *testing.T) {
	t.Parallel()

	pinger := mocks.NewPinger(t)
	pinger.On("Ping", mock.Anything).Return(nil)

	r := New(pinger, testutil.MakeNoopLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.MonitorHealth(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("MonitorHealth did not return after cancel")
	}

	resp, err := r.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
