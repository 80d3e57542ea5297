package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/config"
)

// restoreGlobalProvider puts the tracer provider back after a test that
// registers one.
func restoreGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestSetup_Noop(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Telemetry
	}{
		{"disabled", config.Telemetry{Enabled: false, Endpoint: "http://localhost:4318"}},
		{"no endpoint", config.Telemetry{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreGlobalProvider(t)
			before := otel.GetTracerProvider()

			shutdown, err := Setup(context.Background(), tt.cfg)
			require.NoError(t, err)
			assert.Same(t, before, otel.GetTracerProvider())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			assert.NoError(t, shutdown(ctx), "noop shutdown ignores a cancelled context")
		})
	}
}

func TestSetup_RegistersProvider(t *testing.T) {
	restoreGlobalProvider(t)

	// Non-routable address so nothing is actually exported.
	shutdown, err := Setup(context.Background(), config.Telemetry{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "coachinspect-test",
	})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)

	assert.NoError(t, shutdown(context.Background()))
}
