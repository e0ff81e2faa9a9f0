package fit

import "encoding/binary"

// ByteCursor is a position-tracked, synchronous reader over an owned byte
// buffer. It never blocks and never copies the underlying buffer; callers
// that need to retain a slice past the cursor's lifetime should copy it.
type ByteCursor struct {
	buf []byte
	pos int
}

// NewByteCursor wraps buf for sequential reading starting at offset 0.
func NewByteCursor(buf []byte) *ByteCursor {
	return &ByteCursor{buf: buf}
}

// Position returns the current read offset.
func (c *ByteCursor) Position() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *ByteCursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *ByteCursor) Remaining() int { return len(c.buf) - c.pos }

// AtEnd reports whether every byte of the buffer has been consumed.
func (c *ByteCursor) AtEnd() bool { return c.pos >= len(c.buf) }

// SeekForward advances the cursor by delta bytes without reading them.
func (c *ByteCursor) SeekForward(delta int) error {
	if delta < 0 || c.pos+delta > len(c.buf) {
		return &IOError{Offset: c.pos, Requested: delta, Available: c.Remaining()}
	}
	c.pos += delta
	return nil
}

// ReadBytes advances by n and returns the consumed slice (a view into the
// underlying buffer, not a copy).
func (c *ByteCursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, &IOError{Offset: c.pos, Requested: n, Available: c.Remaining()}
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// ReadByte reads a single byte and advances by one.
func (c *ByteCursor) ReadByte() (byte, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a two-byte unsigned integer in the requested endianness.
func (c *ByteCursor) ReadUint16(order binary.ByteOrder) (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

// ReadUint32 reads a four-byte unsigned integer in the requested endianness.
func (c *ByteCursor) ReadUint32(order binary.ByteOrder) (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}
