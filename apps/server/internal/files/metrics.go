package files

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/tilsley/linkdesk/apps/server/internal/files"

// Outcome values recorded on the read and commit counters.
const (
	outcomeOK        = "ok"
	outcomeForbidden = "forbidden"
	outcomeNotFound  = "not_found"
	outcomeInvalid   = "invalid"
	outcomeRejected  = "rejected"
	outcomeError     = "error"
)

// instruments reports through the global meter provider, which stays a no-op
// unless telemetry is enabled.
type instruments struct {
	reads   metric.Int64Counter
	commits metric.Int64Counter
}

func newInstruments() instruments {
	meter := otel.Meter(meterName)

	reads, err := meter.Int64Counter("linkdesk.file.reads",
		metric.WithDescription("Tracked file reads by outcome"))
	if err != nil {
		reads = noop.Int64Counter{}
	}
	commits, err := meter.Int64Counter("linkdesk.file.commits",
		metric.WithDescription("Tracked file commits by outcome"))
	if err != nil {
		commits = noop.Int64Counter{}
	}
	return instruments{reads: reads, commits: commits}
}

func (i instruments) read(ctx context.Context, key, outcome string) {
	i.reads.Add(ctx, 1, metric.WithAttributes(
		attribute.String("file", key),
		attribute.String("outcome", outcome),
	))
}

func (i instruments) commit(ctx context.Context, key, outcome string) {
	i.commits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("file", key),
		attribute.String("outcome", outcome),
	))
}
