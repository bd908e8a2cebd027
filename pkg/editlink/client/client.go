// Package client implements the editor side of the editlink protocol: one
// method per command the editor can issue, and a dispatcher that turns
// inbound runtime frames into typed events fanned out to registered
// listeners.
//
// A Client assumes a single logical thread of control. Command emission and
// OnMessage must not be called concurrently; hosts that drive them from
// different goroutines must serialize the calls themselves.
package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/scenekit/editlink/pkg/editlink/o11y"
	"github.com/scenekit/editlink/pkg/editlink/protocol"
	"github.com/scenekit/editlink/pkg/editlink/wire"
)

// Client is the command emitter and event dispatcher for one editor session.
// Construct it with NewClient().
type Client struct {
	logger *zap.Logger
	send   SendFunc

	basePath     string
	universePath string

	// out is reused across emits so hot paths like property edits and
	// pointer moves do not allocate per command.
	out wire.Buffer

	entityPosition listenerList[protocol.EntityPositionEvent]
	entitySelected listenerList[protocol.EntitySelectedEvent]
	propertyList   listenerList[protocol.PropertyListEvent]
	logMessage     listenerList[protocol.LogEvent]

	tracingProvider o11y.TracingProvider

	commandCounter     o11y.Counter
	sendErrorCounter   o11y.Counter
	eventCounter       o11y.Counter
	decodeErrorCounter o11y.Counter
	unknownTagCounter  o11y.Counter
	dispatchHistogram  o11y.Histogram
	listenerGauge      o11y.Gauge
}

// BasePath returns the project base path the client was created with.
func (c *Client) BasePath() string {
	return c.basePath
}

// UniversePath returns the path of the universe most recently passed to
// LoadUniverse or SaveUniverse, or the empty string after NewUniverse.
func (c *Client) UniversePath() string {
	return c.universePath
}

// emit frames one command and hands it to the transport. Sending is
// fire-and-forget: a transport error is logged and counted but never
// surfaced to the caller, matching the one-way nature of commands.
func (c *Client) emit(tag protocol.CommandType, payload func(*wire.Buffer)) {
	c.out.Clear()
	c.out.WriteInt32(int32(tag))
	if payload != nil {
		payload(&c.out)
	}

	if c.commandCounter != nil {
		c.commandCounter.Add(context.Background(), 1,
			o11y.Label{Key: "command", Value: tag.String()})
	}

	if err := c.send(c.out.Bytes()); err != nil {
		c.logger.Warn("command send failed",
			zap.Stringer("command", tag),
			zap.Error(err))
		if c.sendErrorCounter != nil {
			c.sendErrorCounter.Add(context.Background(), 1,
				o11y.Label{Key: "command", Value: tag.String()})
		}
	}
}

// LookAtSelected points the editor camera at the current selection.
func (c *Client) LookAtSelected() {
	c.emit(protocol.CmdLookAtSelected, nil)
}

// AddComponent attaches a component of the given type to the selected
// entity. The type is identified by its name hash (protocol.HashName).
func (c *Client) AddComponent(componentType uint32) {
	c.emit(protocol.CmdAddComponent, func(b *wire.Buffer) {
		b.WriteUint32(componentType)
	})
}

// ToggleGameMode switches the runtime between edit and play modes.
func (c *Client) ToggleGameMode() {
	c.emit(protocol.CmdToggleGameMode, nil)
}

// AddEntity creates a new entity in the universe.
func (c *Client) AddEntity() {
	c.emit(protocol.CmdAddEntity, nil)
}

// PointerDown reports a pointer press in viewport coordinates.
func (c *Client) PointerDown(x, y, button int32) {
	c.emit(protocol.CmdPointerDown, func(b *wire.Buffer) {
		b.WriteInt32(x)
		b.WriteInt32(y)
		b.WriteInt32(button)
	})
}

// PointerUp reports a pointer release in viewport coordinates.
func (c *Client) PointerUp(x, y, button int32) {
	c.emit(protocol.CmdPointerUp, func(b *wire.Buffer) {
		b.WriteInt32(x)
		b.WriteInt32(y)
		b.WriteInt32(button)
	})
}

// PointerMove reports pointer motion with per-move deltas and modifier
// flags.
func (c *Client) PointerMove(x, y, dx, dy, flags int32) {
	c.emit(protocol.CmdPointerMove, func(b *wire.Buffer) {
		b.WriteInt32(x)
		b.WriteInt32(y)
		b.WriteInt32(dx)
		b.WriteInt32(dy)
		b.WriteInt32(flags)
	})
}

// LoadUniverse asks the runtime to load the universe at path and remembers
// path as the current universe, whether or not the send succeeds.
func (c *Client) LoadUniverse(path string) {
	c.universePath = path
	c.emit(protocol.CmdLoadUniverse, func(b *wire.Buffer) {
		b.WriteCString(path)
	})
}

// SaveUniverse asks the runtime to save the universe to path and remembers
// path as the current universe.
func (c *Client) SaveUniverse(path string) {
	c.universePath = path
	c.emit(protocol.CmdSaveUniverse, func(b *wire.Buffer) {
		b.WriteCString(path)
	})
}

// NewUniverse asks the runtime for a fresh universe and clears the current
// universe path.
func (c *Client) NewUniverse() {
	c.universePath = ""
	c.emit(protocol.CmdNewUniverse, nil)
}

// SetWireframe toggles wireframe rendering.
func (c *Client) SetWireframe(enabled bool) {
	var v int32
	if enabled {
		v = 1
	}
	c.emit(protocol.CmdSetWireframe, func(b *wire.Buffer) {
		b.WriteInt32(v)
	})
}

// SetAnimableTime scrubs the previewed animable to the given time.
func (c *Client) SetAnimableTime(time int32) {
	c.emit(protocol.CmdSetAnimableTime, func(b *wire.Buffer) {
		b.WriteInt32(time)
	})
}

// PlayPauseAnimable toggles playback of the previewed animable.
func (c *Client) PlayPauseAnimable() {
	c.emit(protocol.CmdPlayPauseAnimable, nil)
}

// SetEntityPosition moves an entity to an absolute position.
func (c *Client) SetEntityPosition(entity int32, position protocol.Vec3) {
	c.emit(protocol.CmdSetEntityPosition, func(b *wire.Buffer) {
		b.WriteInt32(entity)
		b.WriteFloat32(position.X)
		b.WriteFloat32(position.Y)
		b.WriteFloat32(position.Z)
	})
}

// MoveCamera moves the editor camera by the given forward and right amounts
// at the given speed.
func (c *Client) MoveCamera(forward, right, speed float32) {
	c.emit(protocol.CmdMoveCamera, func(b *wire.Buffer) {
		b.WriteFloat32(forward)
		b.WriteFloat32(right)
		b.WriteFloat32(speed)
	})
}

// SetComponentProperty sets one property of one component on the selected
// entity. Component and property are sent as name hashes, the value as a
// length-prefixed blob the runtime interprets by property type.
func (c *Client) SetComponentProperty(component, property string, value []byte) {
	c.emit(protocol.CmdSetComponentProperty, func(b *wire.Buffer) {
		b.WriteUint32(protocol.HashName(component))
		b.WriteUint32(protocol.HashName(property))
		b.WriteInt32(int32(len(value)))
		b.WriteBytes(value)
	})
}

// RequestProperties asks the runtime to send a PropertyListEvent for the
// given component type hash.
func (c *Client) RequestProperties(componentType uint32) {
	c.emit(protocol.CmdGetProperties, func(b *wire.Buffer) {
		b.WriteUint32(componentType)
	})
}

// OnEntityPosition registers a listener for entity position events.
func (c *Client) OnEntityPosition(fn func(*protocol.EntityPositionEvent)) *Subscription {
	return c.track(c.entityPosition.subscribe(fn))
}

// OnEntitySelected registers a listener for selection change events.
func (c *Client) OnEntitySelected(fn func(*protocol.EntitySelectedEvent)) *Subscription {
	return c.track(c.entitySelected.subscribe(fn))
}

// OnPropertyList registers a listener for property list events.
func (c *Client) OnPropertyList(fn func(*protocol.PropertyListEvent)) *Subscription {
	return c.track(c.propertyList.subscribe(fn))
}

// OnLogMessage registers a listener for runtime log events.
func (c *Client) OnLogMessage(fn func(*protocol.LogEvent)) *Subscription {
	return c.track(c.logMessage.subscribe(fn))
}

// track keeps the live-listener gauge equal to liveListeners across both
// registration and cancellation.
func (c *Client) track(s *Subscription) *Subscription {
	if c.listenerGauge != nil {
		s.onCancel = c.updateListenerGauge
		c.updateListenerGauge()
	}
	return s
}

func (c *Client) updateListenerGauge() {
	c.listenerGauge.Set(context.Background(), float64(c.liveListeners()))
}

func (c *Client) liveListeners() int {
	return c.entityPosition.live() +
		c.entitySelected.live() +
		c.propertyList.live() +
		c.logMessage.live()
}
