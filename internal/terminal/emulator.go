package terminal

import (
	"log"
	"os"

	"github.com/patrick-goecommerce/gitstermd/internal/terminal/capdef"
)

// Emulator is a single server-side terminal: a cell buffer, a cursor, the
// current SGR state, and the capability table driving the byte-stream
// parser (spec.md §2). It does no locking of its own — callers that share
// an Emulator across goroutines serialize access themselves (spec.md §5).
type Emulator struct {
	rows, cols int

	buf    *CellBuffer
	cursor *Cursor
	sgr    SGR
	caps   *capdef.Table

	scratch     []rune
	pendingUTF8 []byte

	pendingReply string

	missing map[string]struct{}
	logger  *log.Logger
}

// New constructs an Emulator of the given size using the embedded default
// Linux-console capability definition.
func New(rows, cols int) (*Emulator, error) {
	table, err := capdef.Default()
	if err != nil {
		return nil, err
	}
	return newEmulator(rows, cols, table), nil
}

// NewWithCapabilities constructs an Emulator from a caller-supplied
// capability definition file (spec.md §6 allows overriding the bundled
// default).
func NewWithCapabilities(rows, cols int, capData []byte) (*Emulator, error) {
	table, err := capdef.Load(capData)
	if err != nil {
		return nil, err
	}
	return newEmulator(rows, cols, table), nil
}

func newEmulator(rows, cols int, table *capdef.Table) *Emulator {
	return &Emulator{
		rows:    rows,
		cols:    cols,
		buf:     NewCellBuffer(rows, cols),
		cursor:  NewCursor(rows, cols),
		sgr:     NewSGR(),
		caps:    table,
		missing: make(map[string]struct{}),
		logger:  log.New(os.Stderr, "terminal: ", log.LstdFlags),
	}
}

// Rows reports the buffer's row count.
func (e *Emulator) Rows() int { return e.rows }

// Cols reports the buffer's column count.
func (e *Emulator) Cols() int { return e.cols }

// CursorPos reports the cursor's zero-based column and row.
func (e *Emulator) CursorPos() (x, y int) { return e.cursor.X, e.cursor.Y }

// CursorVisible reports whether the cursor is visible: false after civis,
// true after cvvis or a reset.
func (e *Emulator) CursorVisible() bool { return e.cursor.Visible() }

// PendingReply returns and clears a host-bound reply queued by a
// capability handler (currently only `da`, spec.md §4.C). Empty when
// there is nothing to send.
func (e *Emulator) PendingReply() string {
	r := e.pendingReply
	e.pendingReply = ""
	return r
}

// Resize changes the emulator's dimensions. Per spec.md §9's Open
// Question decision, this is a full reset rather than a reflow: content
// does not survive a resize.
func (e *Emulator) Resize(rows, cols int) {
	e.rows = rows
	e.cols = cols
	e.buf = NewCellBuffer(rows, cols)
	e.cursor = NewCursor(rows, cols)
	e.sgr = NewSGR()
	e.scratch = e.scratch[:0]
	e.pendingUTF8 = e.pendingUTF8[:0]
	e.pendingReply = ""
}

// rs1 implements the `rs1` capability: a full reset to the initial state,
// equivalent to constructing a fresh Emulator of the same size (spec.md
// §4.C).
func (e *Emulator) rs1() {
	e.buf = NewCellBuffer(e.rows, e.cols)
	e.cursor = NewCursor(e.rows, e.cols)
	e.sgr = NewSGR()
}

// logMissingCapability records a capability id the definition file
// referenced but this build doesn't implement, once per id, so a noisy
// stream of unsupported sequences doesn't flood the log (spec.md §7).
func (e *Emulator) logMissingCapability(id string) {
	if _, seen := e.missing[id]; seen {
		return
	}
	e.missing[id] = struct{}{}
	e.logger.Printf("unrecognized capability id %q", id)
}
