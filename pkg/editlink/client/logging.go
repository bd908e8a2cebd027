package client

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scenekit/editlink/pkg/editlink/protocol"
)

// LoggingListener logs every event kind it is attached to, for debugging a
// client/runtime session without writing bespoke listeners.
type LoggingListener struct {
	logger   *zap.Logger
	logLevel zapcore.Level
	name     string
}

// NewLoggingListener creates a LoggingListener that logs at the given level.
func NewLoggingListener(logger *zap.Logger, logLevel zapcore.Level) *LoggingListener {
	return &LoggingListener{
		logger:   logger,
		logLevel: logLevel,
		name:     "LoggingListener",
	}
}

// NewNamedLoggingListener creates a LoggingListener with a custom name for
// identification in logs.
func NewNamedLoggingListener(logger *zap.Logger, logLevel zapcore.Level, name string) *LoggingListener {
	return &LoggingListener{
		logger:   logger,
		logLevel: logLevel,
		name:     name,
	}
}

// Attach registers the listener for every event kind on c and returns the
// subscriptions in registration order.
func (l *LoggingListener) Attach(c *Client) []*Subscription {
	return []*Subscription{
		c.OnEntityPosition(l.OnEntityPosition),
		c.OnEntitySelected(l.OnEntitySelected),
		c.OnPropertyList(l.OnPropertyList),
		c.OnLogMessage(l.OnLogMessage),
	}
}

func (l *LoggingListener) OnEntityPosition(ev *protocol.EntityPositionEvent) {
	l.logger.Log(l.logLevel, "entity position",
		zap.String("listener", l.name),
		zap.Int32("entity", ev.Entity),
		zap.Float32("x", ev.Position.X),
		zap.Float32("y", ev.Position.Y),
		zap.Float32("z", ev.Position.Z),
	)
}

func (l *LoggingListener) OnEntitySelected(ev *protocol.EntitySelectedEvent) {
	if ev.Entity == protocol.EntityNone {
		l.logger.Log(l.logLevel, "selection cleared",
			zap.String("listener", l.name))
		return
	}
	l.logger.Log(l.logLevel, "entity selected",
		zap.String("listener", l.name),
		zap.Int32("entity", ev.Entity),
	)
}

func (l *LoggingListener) OnPropertyList(ev *protocol.PropertyListEvent) {
	names := make([]string, len(ev.Entries))
	for i, entry := range ev.Entries {
		names[i] = entry.Name
	}
	l.logger.Log(l.logLevel, "property list",
		zap.String("listener", l.name),
		zap.Uint32("componentType", ev.ComponentType),
		zap.Strings("properties", names),
	)
}

func (l *LoggingListener) OnLogMessage(ev *protocol.LogEvent) {
	l.logger.Log(l.logLevel, "runtime log",
		zap.String("listener", l.name),
		zap.Stringer("severity", ev.Severity),
		zap.String("text", ev.Text),
	)
}
