package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/editlink/pkg/editlink/wire"
)

func TestEntityPositionRoundTrip(t *testing.T) {
	in := EntityPositionEvent{Entity: 7, Position: Vec3{X: 1.0, Y: 2.0, Z: 3.0}}

	b := wire.NewBuffer()
	in.Encode(b)
	require.Equal(t, 16, b.Len())

	var out EntityPositionEvent
	require.NoError(t, out.Decode(wire.View(b.Bytes())))
	assert.Equal(t, in, out)
}

func TestEntitySelectedSentinel(t *testing.T) {
	in := EntitySelectedEvent{Entity: EntityNone}

	b := wire.NewBuffer()
	in.Encode(b)

	var out EntitySelectedEvent
	require.NoError(t, out.Decode(wire.View(b.Bytes())))
	assert.Equal(t, EntityNone, out.Entity)
}

func TestPropertyListRoundTrip(t *testing.T) {
	in := PropertyListEvent{
		ComponentType: HashName("renderable"),
		Entries: []PropertyEntry{
			{Name: "Source", Type: 1, Value: []byte("models/ship.msh")},
			{Name: "Visible", Type: 2, Value: []byte{1, 0, 0, 0}},
			{Name: "Empty", Type: 3, Value: nil},
		},
	}

	b := wire.NewBuffer()
	in.Encode(b)

	var out PropertyListEvent
	require.NoError(t, out.Decode(wire.View(b.Bytes())))
	assert.Equal(t, in.ComponentType, out.ComponentType)
	require.Len(t, out.Entries, 3)
	assert.Equal(t, "Source", out.Entries[0].Name)
	assert.Equal(t, []byte("models/ship.msh"), out.Entries[0].Value)
	assert.Equal(t, int32(2), out.Entries[1].Type)
	assert.Empty(t, out.Entries[2].Value)
}

func TestPropertyListTruncated(t *testing.T) {
	in := PropertyListEvent{
		ComponentType: HashName("animable"),
		Entries:       []PropertyEntry{{Name: "Time", Type: 4, Value: []byte{0, 0, 0, 0}}},
	}

	b := wire.NewBuffer()
	in.Encode(b)
	full := b.Bytes()

	// Every strict prefix of a valid payload must fail cleanly.
	for n := 0; n < len(full); n++ {
		var out PropertyListEvent
		err := out.Decode(wire.View(full[:n]))
		assert.Error(t, err, "prefix of %d bytes", n)
	}
}

func TestLogEventRoundTrip(t *testing.T) {
	in := LogEvent{Severity: SeverityError, Text: "failed to load"}

	b := wire.NewBuffer()
	in.Encode(b)

	var out LogEvent
	require.NoError(t, out.Decode(wire.View(b.Bytes())))
	assert.Equal(t, SeverityError, out.Severity)
	assert.Equal(t, "failed to load", out.Text)
}

func TestLogEventMissingTerminator(t *testing.T) {
	b := wire.NewBuffer()
	b.WriteInt32(int32(SeverityInfo))
	b.WriteBytes([]byte("no terminator"))

	var out LogEvent
	assert.ErrorIs(t, out.Decode(wire.View(b.Bytes())), wire.ErrShortBuffer)
}

func TestHashNameDeterministic(t *testing.T) {
	h := HashName("Transform")
	for i := 0; i < 100; i++ {
		assert.Equal(t, h, HashName("Transform"))
	}
	assert.NotEqual(t, HashName("Transform"), HashName("Scale"))
	assert.NotEqual(t, HashName("Transform"), HashName("transform"))

	// CRC-32 (IEEE) is the agreed wire hash; pin a known vector so an
	// accidental algorithm change shows up as a test failure.
	assert.Equal(t, uint32(0xCBF43926), HashName("123456789"))
}

func TestTagStrings(t *testing.T) {
	assert.Equal(t, "set_entity_position", CmdSetEntityPosition.String())
	assert.Equal(t, "log_message", EventLogMessage.String())
	assert.Equal(t, "command(99)", CommandType(99).String())
	assert.Equal(t, "event(99)", EventType(99).String())
	assert.Equal(t, "error", SeverityError.String())
}
