package terminal

import "testing"

// ---------------------------------------------------------------------------
// New / NewWithCapabilities
// ---------------------------------------------------------------------------

func TestNew_Dimensions(t *testing.T) {
	e, err := New(24, 80)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if e.Rows() != 24 || e.Cols() != 80 {
		t.Errorf("dimensions = (%d,%d), want (24,80)", e.Rows(), e.Cols())
	}
	if !e.CursorVisible() {
		t.Error("CursorVisible() = false, want true")
	}
}

func TestNewWithCapabilities_CustomTable(t *testing.T) {
	custom := []byte(`
control_characters:
  13: cr
escape_sequences:
  "\\E[H": home
escape_sequences_re: {}
`)
	e, err := NewWithCapabilities(5, 10, custom)
	if err != nil {
		t.Fatalf("NewWithCapabilities() error: %v", err)
	}
	e.FeedBytes([]byte("x\x1b[H"))
	x, y := e.CursorPos()
	if x != 0 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0) after custom home", x, y)
	}
}

func TestNewWithCapabilities_InvalidFile(t *testing.T) {
	_, err := NewWithCapabilities(5, 10, []byte("not: [valid"))
	if err == nil {
		t.Error("NewWithCapabilities() with malformed definition returned nil error")
	}
}

// ---------------------------------------------------------------------------
// Resize
// ---------------------------------------------------------------------------

func TestResize_ClearsContentAndState(t *testing.T) {
	e, _ := New(5, 10)
	e.FeedBytes([]byte("hello"))
	e.Resize(10, 20)

	if e.Rows() != 10 || e.Cols() != 20 {
		t.Errorf("dimensions after resize = (%d,%d), want (10,20)", e.Rows(), e.Cols())
	}
	if !e.buf.At(0, 0).IsDefault() {
		t.Error("buffer content survived resize, want a clean reset")
	}
	x, y := e.CursorPos()
	if x != 0 || y != 0 {
		t.Errorf("cursor after resize = (%d,%d), want (0,0)", x, y)
	}
}

// ---------------------------------------------------------------------------
// rs1 full reset
// ---------------------------------------------------------------------------

func TestRS1_ResetsBufferCursorAndSGR(t *testing.T) {
	e, _ := New(5, 10)
	e.FeedBytes([]byte("\x1b[1;31mhello"))
	e.FeedBytes([]byte("\x1bc")) // rs1

	if !e.buf.At(0, 0).IsDefault() {
		t.Error("rs1 did not clear the buffer")
	}
	x, y := e.CursorPos()
	if x != 0 || y != 0 {
		t.Errorf("cursor after rs1 = (%d,%d), want (0,0)", x, y)
	}
	if e.sgr.Cell().Attrs() != 0 {
		t.Error("rs1 did not reset SGR state")
	}
}

// ---------------------------------------------------------------------------
// logMissingCapability dedupe
// ---------------------------------------------------------------------------

func TestLogMissingCapability_DedupesByID(t *testing.T) {
	e, _ := New(5, 10)
	e.logMissingCapability("bogus")
	e.logMissingCapability("bogus")
	e.logMissingCapability("other")

	if len(e.missing) != 2 {
		t.Errorf("missing set size = %d, want 2", len(e.missing))
	}
}
