package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitDisabled(t *testing.T) {
	p, err := Init(context.Background(), Config{
		Enabled:     false,
		ServiceName: "vrpbench-test",
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NotNil(t, p.Tracer())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "solve",
		WithAttributes(attribute.String(AttrSolverName, "greedy")))
	require.NotNil(t, span)

	SetAttributes(ctx, attribute.Int(AttrNumRoutes, 3))
	AddEvent(ctx, "preflight done")
	SetError(ctx, errors.New("engine failed"))
	span.End()
}

func TestInstanceAttributes(t *testing.T) {
	attrs := InstanceAttributes("sample-10", "CVRP", 10, 3)
	assert.Len(t, attrs, 4)
	assert.Equal(t, attribute.Key(AttrInstanceName), attrs[0].Key)
}

func TestSolveAttributes(t *testing.T) {
	attrs := SolveAttributes("greedy", "FEASIBLE", 123.4, 3)
	assert.Len(t, attrs, 4)
}

func TestValidationAttributes(t *testing.T) {
	attrs := ValidationAttributes(2, false)
	assert.Len(t, attrs, 2)
}
