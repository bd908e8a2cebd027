package protocol

import (
	"fmt"

	"github.com/scenekit/editlink/pkg/editlink/wire"
)

// EntityNone is the sentinel entity id carried by an EntitySelectedEvent
// when the selection was cleared.
const EntityNone int32 = -1

// Vec3 is a position in universe space.
type Vec3 struct {
	X, Y, Z float32
}

// EntityPositionEvent reports that an entity moved.
type EntityPositionEvent struct {
	Entity   int32
	Position Vec3
}

func (e *EntityPositionEvent) Encode(b *wire.Buffer) {
	b.WriteInt32(e.Entity)
	b.WriteFloat32(e.Position.X)
	b.WriteFloat32(e.Position.Y)
	b.WriteFloat32(e.Position.Z)
}

func (e *EntityPositionEvent) Decode(b *wire.Buffer) error {
	var err error
	if e.Entity, err = b.ReadInt32(); err != nil {
		return fmt.Errorf("entity position: %w", err)
	}
	if e.Position.X, err = b.ReadFloat32(); err != nil {
		return fmt.Errorf("entity position: %w", err)
	}
	if e.Position.Y, err = b.ReadFloat32(); err != nil {
		return fmt.Errorf("entity position: %w", err)
	}
	if e.Position.Z, err = b.ReadFloat32(); err != nil {
		return fmt.Errorf("entity position: %w", err)
	}
	return nil
}

// EntitySelectedEvent reports a selection change. Entity is EntityNone when
// nothing is selected.
type EntitySelectedEvent struct {
	Entity int32
}

func (e *EntitySelectedEvent) Encode(b *wire.Buffer) {
	b.WriteInt32(e.Entity)
}

func (e *EntitySelectedEvent) Decode(b *wire.Buffer) error {
	var err error
	if e.Entity, err = b.ReadInt32(); err != nil {
		return fmt.Errorf("entity selected: %w", err)
	}
	return nil
}

// PropertyEntry is one row of a property list: the property's display name,
// a runtime-defined value type tag, and the current raw value bytes.
type PropertyEntry struct {
	Name  string
	Type  int32
	Value []byte
}

// PropertyListEvent carries the editable properties of one component type,
// in the order the runtime wants them shown.
type PropertyListEvent struct {
	ComponentType uint32
	Entries       []PropertyEntry
}

func (e *PropertyListEvent) Encode(b *wire.Buffer) {
	b.WriteUint32(e.ComponentType)
	b.WriteInt32(int32(len(e.Entries)))
	for _, entry := range e.Entries {
		b.WriteCString(entry.Name)
		b.WriteInt32(entry.Type)
		b.WriteInt32(int32(len(entry.Value)))
		b.WriteBytes(entry.Value)
	}
}

func (e *PropertyListEvent) Decode(b *wire.Buffer) error {
	var err error
	if e.ComponentType, err = b.ReadUint32(); err != nil {
		return fmt.Errorf("property list: %w", err)
	}
	count, err := b.ReadInt32()
	if err != nil {
		return fmt.Errorf("property list: %w", err)
	}
	// The smallest possible entry is 9 bytes (empty name, type, zero
	// length), so a count the remaining bytes cannot hold is malformed;
	// checking up front keeps a hostile count from sizing the slice.
	if count < 0 || int64(count)*9 > int64(b.Remaining()) {
		return fmt.Errorf("property list: entry count %d exceeds payload: %w", count, wire.ErrShortBuffer)
	}
	e.Entries = make([]PropertyEntry, 0, count)
	for i := int32(0); i < count; i++ {
		var entry PropertyEntry
		if entry.Name, err = b.ReadCString(); err != nil {
			return fmt.Errorf("property list entry %d: %w", i, err)
		}
		if entry.Type, err = b.ReadInt32(); err != nil {
			return fmt.Errorf("property list entry %d: %w", i, err)
		}
		length, err := b.ReadInt32()
		if err != nil {
			return fmt.Errorf("property list entry %d: %w", i, err)
		}
		if length < 0 {
			return fmt.Errorf("property list entry %d: negative value length %d", i, length)
		}
		raw, err := b.ReadBytes(int(length))
		if err != nil {
			return fmt.Errorf("property list entry %d: %w", i, err)
		}
		entry.Value = append([]byte(nil), raw...)
		e.Entries = append(e.Entries, entry)
	}
	return nil
}

// LogEvent carries a runtime log line for display in the editor console.
type LogEvent struct {
	Severity Severity
	Text     string
}

func (e *LogEvent) Encode(b *wire.Buffer) {
	b.WriteInt32(int32(e.Severity))
	b.WriteCString(e.Text)
}

func (e *LogEvent) Decode(b *wire.Buffer) error {
	severity, err := b.ReadInt32()
	if err != nil {
		return fmt.Errorf("log message: %w", err)
	}
	e.Severity = Severity(severity)
	if e.Text, err = b.ReadCString(); err != nil {
		return fmt.Errorf("log message: %w", err)
	}
	return nil
}
