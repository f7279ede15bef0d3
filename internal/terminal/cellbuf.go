package terminal

// CellBuffer is the contiguous row-major grid of packed cells described in
// spec.md §4.A. It owns no cursor/SGR state of its own — it's pure area
// arithmetic over a []Cell, the way gits/terminal.py's _peek/_poke/_zero/
// _scroll_* free functions operate on self._screen.
type CellBuffer struct {
	rows, cols int
	cells      []Cell
}

// NewCellBuffer allocates a rows×cols grid, every cell set to DefaultCell.
func NewCellBuffer(rows, cols int) *CellBuffer {
	b := &CellBuffer{rows: rows, cols: cols}
	b.cells = make([]Cell, rows*cols)
	for i := range b.cells {
		b.cells[i] = DefaultCell
	}
	return b
}

// Rows and Cols report the buffer's dimensions.
func (b *CellBuffer) Rows() int { return b.rows }
func (b *CellBuffer) Cols() int { return b.cols }

// index converts (x,y) to a flat offset, clamping to the legal range so
// callers never panic on in-bounds-adjacent coordinates (spec.md §4.A).
func (b *CellBuffer) index(x, y int) int {
	if x < 0 {
		x = 0
	}
	if x > b.cols {
		x = b.cols
	}
	if y < 0 {
		y = 0
	}
	if y >= b.rows {
		y = b.rows - 1
	}
	return y*b.cols + x
}

// At returns the cell at (x, y); out-of-range coordinates return the
// default cell rather than panicking.
func (b *CellBuffer) At(x, y int) Cell {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return DefaultCell
	}
	return b.cells[y*b.cols+x]
}

// Set writes a single cell at (x, y); out-of-range coordinates are
// silently ignored.
func (b *CellBuffer) Set(x, y int, c Cell) {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return
	}
	b.cells[y*b.cols+x] = c
}

// Peek captures the cell range from (x1,y1) to (x2,y2), row-major, as the
// source's _peek does. inclusive extends the end by one cell.
func (b *CellBuffer) Peek(x1, y1, x2, y2 int, inclusive bool) []Cell {
	begin := b.clampedIndex(x1, y1)
	end := b.clampedIndex(x2, y2)
	if inclusive {
		end++
	}
	if end > len(b.cells) {
		end = len(b.cells)
	}
	if begin > end {
		begin = end
	}
	out := make([]Cell, end-begin)
	copy(out, b.cells[begin:end])
	return out
}

// clampedIndex computes the same clamped offset as index, x clamped to
// cols (used by Peek/Poke/Zero end-points, which may legitimately address
// the one-past-last column as an exclusive bound).
func (b *CellBuffer) clampedIndex(x, y int) int {
	if y < 0 {
		y = 0
	}
	if y >= b.rows {
		y = b.rows - 1
	}
	if x < 0 {
		x = 0
	}
	if x > b.cols {
		x = b.cols
	}
	return y*b.cols + x
}

// Poke copies s into the buffer starting at (x, y). It never grows the
// buffer; writes that would run past the end are truncated.
func (b *CellBuffer) Poke(x, y int, s []Cell) {
	begin := b.clampedIndex(x, y)
	end := begin + len(s)
	if end > len(b.cells) {
		end = len(b.cells)
	}
	if end <= begin {
		return
	}
	copy(b.cells[begin:end], s[:end-begin])
}

// Zero fills the range from (x1,y1) to (x2,y2) with DefaultCell and
// returns the number of cells cleared.
func (b *CellBuffer) Zero(x1, y1, x2, y2 int, inclusive bool) int {
	begin := b.clampedIndex(x1, y1)
	end := b.clampedIndex(x2, y2)
	if inclusive {
		end++
	}
	if end > len(b.cells) {
		end = len(b.cells)
	}
	if begin > end {
		begin = end
	}
	for i := begin; i < end; i++ {
		b.cells[i] = DefaultCell
	}
	return end - begin
}

// ScrollUp shifts rows y1..y2 up by one row, into y1-1..y2-1, and blanks
// row y2. Callers pass the row *below* the vacated row as y1 (e.g.
// Cursor.down passes topMost+1 to scroll the region when the cursor
// advances past bottomMost), matching _scroll_up's "peek y1..y2, poke at
// y1-1" shape.
func (b *CellBuffer) ScrollUp(y1, y2 int) {
	if y1 < 0 {
		y1 = 0
	}
	if y2 >= b.rows {
		y2 = b.rows - 1
	}
	if y1 > y2 {
		return
	}
	if y1 == 0 {
		// Nothing above row 0 to receive the shift; the region just clears.
		b.Zero(0, y1, b.cols-1, y2, true)
		return
	}
	area := b.Peek(0, y1, b.cols-1, y2, true)
	b.Poke(0, y1-1, area)
	b.Zero(0, y2, b.cols-1, y2, true)
}

// ScrollDown moves the full-width region [y1,y2] down by one row: row
// y1+1 becomes the old row y1's content, ..., row y1 becomes blank.
func (b *CellBuffer) ScrollDown(y1, y2 int) {
	if y1 < 0 {
		y1 = 0
	}
	if y2 >= b.rows {
		y2 = b.rows - 1
	}
	if y1 >= y2 {
		b.Zero(0, y1, b.cols-1, y1, true)
		return
	}
	area := b.Peek(0, y1, b.cols-1, y2-1, true)
	b.Poke(0, y1+1, area)
	b.Zero(0, y1, b.cols-1, y1, true)
}

// ScrollRight shifts cells (x..cols-1, y) right by one, dropping the last
// column and clearing cell (x, y).
func (b *CellBuffer) ScrollRight(x, y int) {
	if x+1 < b.cols {
		tail := b.Peek(x, y, b.cols-2, y, true)
		b.Poke(x+1, y, tail)
	}
	b.Zero(x, y, x, y, true)
}
