package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/scenekit/editlink/pkg/editlink/protocol"
	"github.com/scenekit/editlink/pkg/editlink/wire"
)

func frameFor(tag protocol.EventType, encode func(*wire.Buffer)) []byte {
	b := wire.NewBuffer()
	b.WriteInt32(int32(tag))
	if encode != nil {
		encode(b)
	}
	return b.Bytes()
}

func dispatchClient(t *testing.T) *Client {
	c, err := NewClient().
		WithLogger(zaptest.NewLogger(t)).
		WithSendFunc(func([]byte) error { return nil }).
		Build()
	require.NoError(t, err)
	return c
}

func TestDispatchEntityPosition(t *testing.T) {
	c := dispatchClient(t)

	var got []protocol.EntityPositionEvent
	c.OnEntityPosition(func(ev *protocol.EntityPositionEvent) {
		got = append(got, *ev)
	})

	ev := protocol.EntityPositionEvent{Entity: 7, Position: protocol.Vec3{X: 1, Y: 2, Z: 3}}
	c.OnMessage(frameFor(protocol.EventEntityPosition, ev.Encode))

	require.Len(t, got, 1)
	assert.Equal(t, ev, got[0])
}

func TestDispatchLogMessage(t *testing.T) {
	c := dispatchClient(t)

	calls := 0
	c.OnLogMessage(func(ev *protocol.LogEvent) {
		calls++
		assert.Equal(t, protocol.SeverityError, ev.Severity)
		assert.Equal(t, "failed to load", ev.Text)
	})

	ev := protocol.LogEvent{Severity: protocol.SeverityError, Text: "failed to load"}
	c.OnMessage(frameFor(protocol.EventLogMessage, ev.Encode))

	assert.Equal(t, 1, calls, "each registered listener fires exactly once")
}

func TestDispatchInvokesListenersInRegistrationOrder(t *testing.T) {
	c := dispatchClient(t)

	var order []string
	for _, name := range []string{"L1", "L2", "L3"} {
		name := name
		c.OnEntitySelected(func(*protocol.EntitySelectedEvent) {
			order = append(order, name)
		})
	}

	ev := protocol.EntitySelectedEvent{Entity: 42}
	c.OnMessage(frameFor(protocol.EventEntitySelected, ev.Encode))

	assert.Equal(t, []string{"L1", "L2", "L3"}, order)
}

func TestDispatchListenersShareOneEventInstance(t *testing.T) {
	c := dispatchClient(t)

	var first, second *protocol.EntitySelectedEvent
	c.OnEntitySelected(func(ev *protocol.EntitySelectedEvent) { first = ev })
	c.OnEntitySelected(func(ev *protocol.EntitySelectedEvent) { second = ev })

	ev := protocol.EntitySelectedEvent{Entity: 5}
	c.OnMessage(frameFor(protocol.EventEntitySelected, ev.Encode))

	require.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestDispatchUnknownTagIsSilentNoOp(t *testing.T) {
	c := dispatchClient(t)

	invoked := false
	c.OnEntityPosition(func(*protocol.EntityPositionEvent) { invoked = true })
	c.OnEntitySelected(func(*protocol.EntitySelectedEvent) { invoked = true })
	c.OnPropertyList(func(*protocol.PropertyListEvent) { invoked = true })
	c.OnLogMessage(func(*protocol.LogEvent) { invoked = true })

	c.OnMessage(frameFor(protocol.EventType(9999), nil))

	assert.False(t, invoked, "unknown tags must invoke zero listeners")
}

func TestDispatchMalformedPayloadInvokesNoListener(t *testing.T) {
	c := dispatchClient(t)

	invoked := 0
	c.OnEntityPosition(func(*protocol.EntityPositionEvent) { invoked++ })

	// Tag is valid but the payload is 4 bytes short of a full position.
	b := wire.NewBuffer()
	b.WriteInt32(int32(protocol.EventEntityPosition))
	b.WriteInt32(7)
	b.WriteFloat32(1)
	b.WriteFloat32(2)
	c.OnMessage(b.Bytes())

	assert.Zero(t, invoked)

	// The registry survives a bad frame: the next good one dispatches.
	ev := protocol.EntityPositionEvent{Entity: 7, Position: protocol.Vec3{X: 1, Y: 2, Z: 3}}
	c.OnMessage(frameFor(protocol.EventEntityPosition, ev.Encode))
	assert.Equal(t, 1, invoked)
}

func TestDispatchEmptyAndTinyFrames(t *testing.T) {
	c := dispatchClient(t)

	invoked := false
	c.OnLogMessage(func(*protocol.LogEvent) { invoked = true })

	c.OnMessage(nil)
	c.OnMessage([]byte{1, 2})

	assert.False(t, invoked)
}

func TestDispatchPropertyList(t *testing.T) {
	c := dispatchClient(t)

	var got *protocol.PropertyListEvent
	c.OnPropertyList(func(ev *protocol.PropertyListEvent) {
		// Listeners may read the event during the call but must not keep
		// it; this test copies what it needs.
		cp := *ev
		got = &cp
	})

	ev := protocol.PropertyListEvent{
		ComponentType: protocol.HashName("animable"),
		Entries: []protocol.PropertyEntry{
			{Name: "Time", Type: 4, Value: []byte{0, 0, 0, 0}},
			{Name: "Playing", Type: 2, Value: []byte{1, 0, 0, 0}},
		},
	}
	c.OnMessage(frameFor(protocol.EventPropertyList, ev.Encode))

	require.NotNil(t, got)
	assert.Equal(t, protocol.HashName("animable"), got.ComponentType)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "Playing", got.Entries[1].Name)
}

func TestCancelledListenerIsSkipped(t *testing.T) {
	c := dispatchClient(t)

	var order []string
	c.OnLogMessage(func(*protocol.LogEvent) { order = append(order, "L1") })
	sub := c.OnLogMessage(func(*protocol.LogEvent) { order = append(order, "L2") })
	c.OnLogMessage(func(*protocol.LogEvent) { order = append(order, "L3") })

	sub.Cancel()
	sub.Cancel() // idempotent

	ev := protocol.LogEvent{Severity: protocol.SeverityInfo, Text: "hi"}
	c.OnMessage(frameFor(protocol.EventLogMessage, ev.Encode))

	assert.Equal(t, []string{"L1", "L3"}, order)
}

func TestCancelDuringDispatchAffectsLaterListeners(t *testing.T) {
	c := dispatchClient(t)

	var order []string
	var later *Subscription
	c.OnLogMessage(func(*protocol.LogEvent) {
		order = append(order, "L1")
		later.Cancel()
	})
	later = c.OnLogMessage(func(*protocol.LogEvent) { order = append(order, "L2") })

	ev := protocol.LogEvent{Severity: protocol.SeverityInfo, Text: "hi"}
	c.OnMessage(frameFor(protocol.EventLogMessage, ev.Encode))

	assert.Equal(t, []string{"L1"}, order)
}

func TestLoggingListenerAttach(t *testing.T) {
	c := dispatchClient(t)

	listener := NewNamedLoggingListener(zaptest.NewLogger(t), zapcore.DebugLevel, "test")
	subs := listener.Attach(c)
	assert.Len(t, subs, 4)

	// Exercising each path; the zaptest logger fails the test on misuse.
	pos := protocol.EntityPositionEvent{Entity: 1}
	c.OnMessage(frameFor(protocol.EventEntityPosition, pos.Encode))

	sel := protocol.EntitySelectedEvent{Entity: protocol.EntityNone}
	c.OnMessage(frameFor(protocol.EventEntitySelected, sel.Encode))

	props := protocol.PropertyListEvent{ComponentType: 1}
	c.OnMessage(frameFor(protocol.EventPropertyList, props.Encode))

	log := protocol.LogEvent{Severity: protocol.SeverityWarning, Text: "w"}
	c.OnMessage(frameFor(protocol.EventLogMessage, log.Encode))
}
