package client

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/scenekit/editlink/pkg/editlink/o11y"
)

// SendFunc delivers one complete framed message to the transport. The byte
// slice is only valid for the duration of the call; the transport must copy
// it if delivery is deferred.
type SendFunc func(frame []byte) error

// Builder provides a fluent interface for constructing Clients.
type Builder struct {
	logger          *zap.Logger
	send            SendFunc
	basePath        string
	metricsProvider o11y.MetricsProvider
	tracingProvider o11y.TracingProvider
}

// NewClient creates a new Client builder.
func NewClient() *Builder {
	return &Builder{}
}

// WithLogger sets the logger for the client. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithSendFunc sets the transport send function. Required.
func (b *Builder) WithSendFunc(send SendFunc) *Builder {
	b.send = send
	return b
}

// WithBasePath sets the project base path reported by BasePath.
func (b *Builder) WithBasePath(path string) *Builder {
	b.basePath = path
	return b
}

// WithMetrics sets the metrics provider for dispatch and emit counters.
func (b *Builder) WithMetrics(provider o11y.MetricsProvider) *Builder {
	b.metricsProvider = provider
	return b
}

// WithTracing sets the tracing provider used to span inbound dispatches.
func (b *Builder) WithTracing(provider o11y.TracingProvider) *Builder {
	b.tracingProvider = provider
	return b
}

// Build validates the configuration and returns the Client.
func (b *Builder) Build() (*Client, error) {
	if b.send == nil {
		return nil, fmt.Errorf("client: a send function is required")
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		logger:          logger,
		send:            b.send,
		basePath:        b.basePath,
		tracingProvider: b.tracingProvider,
	}

	if b.metricsProvider != nil {
		c.commandCounter = b.metricsProvider.Counter("editlink_commands_emitted_total")
		c.sendErrorCounter = b.metricsProvider.Counter("editlink_send_errors_total")
		c.eventCounter = b.metricsProvider.Counter("editlink_events_dispatched_total")
		c.decodeErrorCounter = b.metricsProvider.Counter("editlink_decode_errors_total")
		c.unknownTagCounter = b.metricsProvider.Counter("editlink_unknown_tags_total")
		c.dispatchHistogram = b.metricsProvider.Histogram("editlink_dispatch_duration_seconds")
		c.listenerGauge = b.metricsProvider.Gauge("editlink_live_listeners")
	}

	return c, nil
}
