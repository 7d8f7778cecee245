package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func TestBootstrapRegistersHealth(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	svcs, err := bootstrap(&serverConfig{}, client)
	require.NoError(t, err)

	h := health.NewServer()
	svcs.registerHealth(h)

	for _, name := range []string{"collection", "template", "equipment", "marketplace"} {
		resp, err := h.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: name})
		require.NoError(t, err)
		assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus(), name)
	}
}

func TestRegisterHealthReportsMissingService(t *testing.T) {
	svcs := &services{}

	h := health.NewServer()
	svcs.registerHealth(h)

	resp, err := h.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: "collection"})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
