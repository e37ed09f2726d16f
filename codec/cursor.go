package codec

// Cursor is a bounds-checked read position over an immutable byte buffer.
//
// GIF fields are little-endian and PNG fields are big-endian; both byte
// orders are spelled out in the method names so a decoder never picks the
// wrong one by accident. A failed read leaves the offset where it was.
type Cursor struct {
	buf    []byte
	offset int
}

func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

func (c *Cursor) Len() int       { return len(c.buf) }
func (c *Cursor) Offset() int    { return c.offset }
func (c *Cursor) Remaining() int { return len(c.buf) - c.offset }

func (c *Cursor) check(off, width int) error {
	if off < 0 || width < 0 || off > len(c.buf)-width {
		return Errorf(OutOfBounds, "cursor", "read of %d bytes at offset %d exceeds length %d", width, off, len(c.buf))
	}
	return nil
}

// Seek moves the cursor to an absolute offset. Seeking to Len() is allowed.
func (c *Cursor) Seek(off int) error {
	if err := c.check(off, 0); err != nil {
		return err
	}
	c.offset = off
	return nil
}

func (c *Cursor) Skip(n int) error {
	if err := c.check(c.offset, n); err != nil {
		return err
	}
	c.offset += n
	return nil
}

func (c *Cursor) PeekU8(off int) (uint8, error) {
	if err := c.check(off, 1); err != nil {
		return 0, err
	}
	return c.buf[off], nil
}

func (c *Cursor) PeekU16LE(off int) (uint16, error) {
	if err := c.check(off, 2); err != nil {
		return 0, err
	}
	return uint16(c.buf[off]) | uint16(c.buf[off+1])<<8, nil
}

func (c *Cursor) PeekU32BE(off int) (uint32, error) {
	if err := c.check(off, 4); err != nil {
		return 0, err
	}
	b := c.buf[off : off+4]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// PeekBytes returns a view of n bytes at off. The view aliases the buffer
// and must not be modified.
func (c *Cursor) PeekBytes(off, n int) ([]byte, error) {
	if err := c.check(off, n); err != nil {
		return nil, err
	}
	return c.buf[off : off+n : off+n], nil
}

func (c *Cursor) U8() (uint8, error) {
	v, err := c.PeekU8(c.offset)
	if err == nil {
		c.offset++
	}
	return v, err
}

func (c *Cursor) U16LE() (uint16, error) {
	v, err := c.PeekU16LE(c.offset)
	if err == nil {
		c.offset += 2
	}
	return v, err
}

func (c *Cursor) U32BE() (uint32, error) {
	v, err := c.PeekU32BE(c.offset)
	if err == nil {
		c.offset += 4
	}
	return v, err
}

func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := c.PeekBytes(c.offset, n)
	if err == nil {
		c.offset += n
	}
	return b, err
}
