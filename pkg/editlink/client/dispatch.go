package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/scenekit/editlink/pkg/editlink/o11y"
	"github.com/scenekit/editlink/pkg/editlink/protocol"
	"github.com/scenekit/editlink/pkg/editlink/wire"
)

// OnMessage decodes one complete inbound frame and invokes the registered
// listeners for its event kind, synchronously and in registration order.
// The transport must call it with exactly one whole frame at a time, never
// re-entrantly from inside a listener.
//
// A frame with an unrecognized tag is ignored so that an older editor keeps
// working against a newer runtime. A frame whose payload is shorter than its
// tag requires is dropped without invoking any listener; registry state is
// unaffected either way.
func (c *Client) OnMessage(data []byte) {
	ctx := context.Background()

	var span o11y.Span
	if c.tracingProvider != nil {
		ctx, span = c.tracingProvider.StartSpan(ctx, "editlink.dispatch")
		defer span.End()
	}

	kind := "frame"
	if c.dispatchHistogram != nil {
		start := time.Now()
		defer func() {
			c.dispatchHistogram.Record(ctx, time.Since(start).Seconds(),
				o11y.Label{Key: "event", Value: kind})
		}()
	}

	buf := wire.View(data)
	rawTag, err := buf.ReadInt32()
	if err != nil {
		c.decodeError(ctx, span, kind, err)
		return
	}
	tag := protocol.EventType(rawTag)
	kind = tag.String()

	if span != nil {
		span.SetAttributes(o11y.Label{Key: "event", Value: tag.String()})
	}

	switch tag {
	case protocol.EventEntityPosition:
		var ev protocol.EntityPositionEvent
		if err := ev.Decode(buf); err != nil {
			c.decodeError(ctx, span, tag.String(), err)
			return
		}
		c.entityPosition.invoke(&ev)

	case protocol.EventEntitySelected:
		var ev protocol.EntitySelectedEvent
		if err := ev.Decode(buf); err != nil {
			c.decodeError(ctx, span, tag.String(), err)
			return
		}
		c.entitySelected.invoke(&ev)

	case protocol.EventPropertyList:
		var ev protocol.PropertyListEvent
		if err := ev.Decode(buf); err != nil {
			c.decodeError(ctx, span, tag.String(), err)
			return
		}
		c.propertyList.invoke(&ev)

	case protocol.EventLogMessage:
		var ev protocol.LogEvent
		if err := ev.Decode(buf); err != nil {
			c.decodeError(ctx, span, tag.String(), err)
			return
		}
		c.logMessage.invoke(&ev)

	default:
		c.logger.Debug("ignoring unknown event tag", zap.Int32("tag", rawTag))
		if c.unknownTagCounter != nil {
			c.unknownTagCounter.Add(ctx, 1)
		}
		if span != nil {
			span.SetStatus(o11y.SpanStatusOK, "unknown tag ignored")
		}
		return
	}

	if c.eventCounter != nil {
		c.eventCounter.Add(ctx, 1, o11y.Label{Key: "event", Value: tag.String()})
	}
	if span != nil {
		span.SetStatus(o11y.SpanStatusOK, "")
	}
}

func (c *Client) decodeError(ctx context.Context, span o11y.Span, kind string, err error) {
	c.logger.Warn("dropping malformed frame",
		zap.String("event", kind),
		zap.Error(err))
	if c.decodeErrorCounter != nil {
		c.decodeErrorCounter.Add(ctx, 1, o11y.Label{Key: "event", Value: kind})
	}
	if span != nil {
		span.SetStatus(o11y.SpanStatusError, err.Error())
	}
}
