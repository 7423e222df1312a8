package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/pkg/logger"
)

func TestInit_WithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(config.Config{}, logger.NewNop(), "devconnect-test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_WithEndpoint(t *testing.T) {
	var cfg config.Config
	cfg.Jaeger.OTLPEndpoint = "localhost:4317"

	// The gRPC client connects lazily, so no collector is needed here.
	shutdown, err := Init(cfg, logger.NewNop(), "devconnect-test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
}
