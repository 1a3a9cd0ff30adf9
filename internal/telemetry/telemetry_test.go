package telemetry

import (
	"context"
	"testing"
)

func TestSetupDisabled(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Setup(ctx, false)
	if err != nil {
		t.Fatalf("Setup(false) error: %v", err)
	}
	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown() error: %v", err)
	}

	_, span := Tracer("test").Start(ctx, "noop")
	if span.SpanContext().IsValid() {
		t.Error("spans from a disabled provider should not be recorded")
	}
	span.End()
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "noop")
	defer span.End()
	if span.IsRecording() {
		t.Error("NoopTracer() spans should not record")
	}
}
