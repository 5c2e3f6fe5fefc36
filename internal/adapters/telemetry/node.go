package telemetry

import (
	"context"
	"os"
	"strings"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/pysync/internal/adapters/logger"
	"go.trai.ch/pysync/internal/core/ports"
)

// NodeID is the unique identifier for the Telemetry adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

// DisabledEnv is the standard OpenTelemetry switch that turns tracing off.
const DisabledEnv = "OTEL_SDK_DISABLED"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTracer(log, os.Getenv(DisabledEnv)), nil
		},
	})
}

// NewTracer returns the OTel tracer with phase timing logged through log, or a
// no-op tracer when disabled is "true".
func NewTracer(log ports.Logger, disabled string) ports.Tracer {
	if strings.EqualFold(strings.TrimSpace(disabled), "true") {
		return NewNoOpTracer()
	}
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(NewTimingProcessor(log)))
	return NewOTelTracerWithProvider(provider, InstrumentationName)
}
