// File: buffer/buffer.go
// Package buffer provides the mutable byte buffer type usable in shared data
// structures.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffer is deliberately not goroutine safe: shared-data registries copy
// buffers on insertion, so each context works on its own instance.

package buffer

// Buffer is an auto-expanding sequence of bytes.
type Buffer struct {
	b []byte
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewFromBytes returns a buffer initialized with a copy of b.
func NewFromBytes(b []byte) *Buffer {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Buffer{b: cp}
}

// NewFromString returns a buffer initialized with the bytes of s.
func NewFromString(s string) *Buffer {
	return &Buffer{b: []byte(s)}
}

// AppendBytes appends a copy of p and returns the buffer for chaining.
func (b *Buffer) AppendBytes(p []byte) *Buffer {
	b.b = append(b.b, p...)
	return b
}

// AppendString appends the bytes of s.
func (b *Buffer) AppendString(s string) *Buffer {
	b.b = append(b.b, s...)
	return b
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) *Buffer {
	b.b = append(b.b, c)
	return b
}

// AppendBuffer appends the contents of other.
func (b *Buffer) AppendBuffer(other *Buffer) *Buffer {
	b.b = append(b.b, other.b...)
	return b
}

// SetByte overwrites the byte at pos, which must be < Len.
func (b *Buffer) SetByte(pos int, c byte) {
	b.b[pos] = c
}

// Byte returns the byte at pos.
func (b *Buffer) Byte(pos int) byte {
	return b.b[pos]
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.b) }

// Bytes returns the backing slice without copying. Mutating the result
// mutates the buffer.
func (b *Buffer) Bytes() []byte { return b.b }

// Copy returns a deep copy sharing no storage with the receiver.
func (b *Buffer) Copy() *Buffer {
	return NewFromBytes(b.b)
}

// String returns the buffer contents as a string.
func (b *Buffer) String() string { return string(b.b) }
