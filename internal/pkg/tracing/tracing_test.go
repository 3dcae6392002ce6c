package tracing

import (
	"context"
	"testing"

	"github.com/projecthub/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitStdoutExporter(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{Enabled: true, SampleRatio: 1})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampleRatioClamped(t *testing.T) {
	assert.Equal(t, 0.0, SampleRatio(-1))
	assert.Equal(t, 1.0, SampleRatio(3))
	assert.Equal(t, 0.25, SampleRatio(0.25))
}
