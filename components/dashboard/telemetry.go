package dashboard

import (
	"context"

	"go.uber.org/zap"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// ZapTelemetry forwards events to a structured logger.
type ZapTelemetry struct {
	log *zap.Logger
}

// NewZapTelemetry wraps the given logger.
func NewZapTelemetry(log *zap.Logger) *ZapTelemetry {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapTelemetry{log: log}
}

// Record logs the event at info level with one field per payload entry.
func (t *ZapTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	fields := make([]zap.Field, 0, len(payload))
	for key, value := range payload {
		fields = append(fields, zap.Any(key, value))
	}
	t.log.Info(event, fields...)
}
