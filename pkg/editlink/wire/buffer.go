// Package wire implements the binary buffer underlying editlink's framed
// messages. All multi-byte fields are little-endian so that frames are
// portable between client and runtime builds on different architectures.
package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShortBuffer is returned by read operations that would advance the read
// cursor past the end of the buffer. The cursor is left unchanged when this
// happens, so a failed read never consumes bytes.
var ErrShortBuffer = errors.New("wire: read past end of buffer")

// Buffer is a growable byte buffer with an explicit read cursor. A zero
// Buffer is ready to write into; use View to wrap externally supplied bytes
// for decoding. Write operations never fail, read operations fail with
// ErrShortBuffer instead of reading out of bounds.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer returns an empty write buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// View wraps data in a read-only Buffer positioned at the first byte.
// The Buffer aliases data rather than copying it.
func View(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the full contents written so far. The slice aliases the
// buffer's storage and is invalidated by the next write or Clear.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the total number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Remaining returns the number of unread bytes ahead of the read cursor.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.pos
}

// Clear empties the buffer and rewinds the read cursor while retaining the
// underlying capacity, so repeated encodes of similar messages do not
// allocate.
func (b *Buffer) Clear() {
	b.data = b.data[:0]
	b.pos = 0
}

// WriteBytes appends p verbatim.
func (b *Buffer) WriteBytes(p []byte) {
	b.data = append(b.data, p...)
}

// WriteInt32 appends v as 4 little-endian bytes.
func (b *Buffer) WriteInt32(v int32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, uint32(v))
}

// WriteUint32 appends v as 4 little-endian bytes.
func (b *Buffer) WriteUint32(v uint32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, v)
}

// WriteFloat32 appends the IEEE 754 bits of v as 4 little-endian bytes.
func (b *Buffer) WriteFloat32(v float32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, math.Float32bits(v))
}

// WriteCString appends the bytes of s followed by a NUL terminator.
func (b *Buffer) WriteCString(s string) {
	b.data = append(b.data, s...)
	b.data = append(b.data, 0)
}

// ReadBytes consumes exactly n bytes and returns them. The returned slice
// aliases the buffer's storage.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.Remaining() < n {
		return nil, ErrShortBuffer
	}
	p := b.data[b.pos : b.pos+n]
	b.pos += n
	return p, nil
}

// ReadInt32 consumes 4 little-endian bytes as a signed integer.
func (b *Buffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadUint32 consumes 4 little-endian bytes as an unsigned integer.
func (b *Buffer) ReadUint32() (uint32, error) {
	if b.Remaining() < 4 {
		return 0, ErrShortBuffer
	}
	v := binary.LittleEndian.Uint32(b.data[b.pos:])
	b.pos += 4
	return v, nil
}

// ReadFloat32 consumes 4 little-endian bytes as an IEEE 754 float.
func (b *Buffer) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadCString consumes bytes up to and including the next NUL terminator
// and returns them as a string without the terminator. A missing terminator
// is a short-buffer error and consumes nothing.
func (b *Buffer) ReadCString() (string, error) {
	for i := b.pos; i < len(b.data); i++ {
		if b.data[i] == 0 {
			s := string(b.data[b.pos:i])
			b.pos = i + 1
			return s, nil
		}
	}
	return "", ErrShortBuffer
}
