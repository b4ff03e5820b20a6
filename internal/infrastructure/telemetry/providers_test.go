package telemetry

import (
	"context"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())

	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)
	attached := lp.Attach(base, zapcore.InfoLevel)
	assert.Same(t, base, attached)

	attached.Info("stock received")
	assert.Equal(t, 1, logs.Len())
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServer(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "qreats"}, zap.NewNop())
	assert.Error(t, err)
}

func TestParseProfileTypes(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		types, err := parseProfileTypes(nil)
		require.NoError(t, err)
		assert.Equal(t, []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
		}, types)
	})

	t.Run("mutex expands to count and duration", func(t *testing.T) {
		types, err := parseProfileTypes([]string{" Mutex "})
		require.NoError(t, err)
		assert.Equal(t, []pyroscope.ProfileType{
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
		}, types)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := parseProfileTypes([]string{"heap"})
		assert.Error(t, err)
	})
}

func TestEnableSpanProfiles_NoProvider(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	tp.EnableSpanProfiles()
	assert.False(t, tp.IsEnabled())
}
