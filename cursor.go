package main

// Cursor is the navigation position over an image list of fixed length.
// The index stays in [0, length-1]; for an empty list it is 0 and Valid is false.
type Cursor struct {
	index  int
	length int
}

// NewCursor creates a cursor over length entries, positioned on the first one
func NewCursor(length int) *Cursor {
	if length < 0 {
		length = 0
	}
	return &Cursor{length: length}
}

func (c *Cursor) Index() int { return c.index }
func (c *Cursor) Len() int   { return c.length }

// Valid reports whether the cursor points at an entry
func (c *Cursor) Valid() bool { return c.length > 0 }

func (c *Cursor) AtStart() bool { return c.index == 0 }
func (c *Cursor) AtEnd() bool   { return c.length == 0 || c.index == c.length-1 }

// StepBack moves to the previous entry; no-op on the first one
func (c *Cursor) StepBack() bool {
	if c.index > 0 {
		c.index--
		return true
	}
	return false
}

// StepForward moves to the next entry; no-op on the last one
func (c *Cursor) StepForward() bool {
	if c.index+1 < c.length {
		c.index++
		return true
	}
	return false
}

// Seek moves to idx, clamped into range
func (c *Cursor) Seek(idx int) {
	switch {
	case c.length == 0 || idx < 0:
		c.index = 0
	case idx >= c.length:
		c.index = c.length - 1
	default:
		c.index = idx
	}
}
