package terminal

// Cursor holds position, save/restore, the end-of-line latch, visibility,
// and the scrolling region — spec.md §3/§4.C. Left/right margins are
// fixed at construction (0, cols-1) and are never user-settable.
type Cursor struct {
	X, Y int

	// eol is true only when X == rightMost and a further printable
	// character should wrap to the next row rather than overwrite column
	// rightMost again (spec.md invariant 3).
	eol bool

	bakX, bakY int

	visible bool

	topMost, bottomMost int
	leftMost, rightMost int
}

// NewCursor returns a cursor at (0,0) with a full-screen scroll region.
func NewCursor(rows, cols int) *Cursor {
	c := &Cursor{}
	c.reset(rows, cols)
	return c
}

// reset restores the cursor to its post-construction state for the given
// dimensions — used by both NewCursor and Emulator.rs1 (full reset).
func (c *Cursor) reset(rows, cols int) {
	c.X, c.Y = 0, 0
	c.bakX, c.bakY = 0, 0
	c.eol = false
	c.visible = true
	c.leftMost, c.topMost = 0, 0
	c.rightMost = cols - 1
	c.bottomMost = rows - 1
}

// EOL reports the end-of-line latch.
func (c *Cursor) EOL() bool { return c.eol }

// Visible reports whether the cursor should be drawn.
func (c *Cursor) Visible() bool { return c.visible }

// Region returns the current scrolling region bounds (inclusive).
func (c *Cursor) Region() (top, bottom int) { return c.topMost, c.bottomMost }

// right moves the cursor right by one position; at the right margin it
// sets the eol latch instead of stepping past it (spec.md §4.C).
func (c *Cursor) right() {
	if c.X == c.rightMost {
		c.eol = true
	} else {
		c.X++
	}
}

// down moves the cursor down by one row within the scrolling region,
// scrolling the buffer up when it's already at the bottom margin.
func (c *Cursor) down(buf *CellBuffer) {
	if c.Y < c.topMost || c.Y > c.bottomMost {
		return
	}
	c.eol = false
	if c.Y == c.bottomMost {
		buf.ScrollUp(c.topMost+1, c.bottomMost)
		c.Y = c.bottomMost
	} else {
		c.Y++
	}
}

// echo writes r with the given rendition at the cursor and advances it,
// wrapping to the next row first if the eol latch is set (spec.md §4.C).
func (c *Cursor) echo(buf *CellBuffer, r rune, sgr Cell) {
	if c.eol {
		c.down(buf)
		c.X = 0
	}
	buf.Set(c.X, c.Y, Pack(r, sgr.Attrs(), (sgr&colorMask)>>colorShift))
	c.right()
}
