package terminal

import "testing"

// ---------------------------------------------------------------------------
// NewCellBuffer
// ---------------------------------------------------------------------------

func TestNewCellBuffer_Dimensions(t *testing.T) {
	b := NewCellBuffer(5, 10)
	if b.Rows() != 5 {
		t.Errorf("Rows() = %d, want 5", b.Rows())
	}
	if b.Cols() != 10 {
		t.Errorf("Cols() = %d, want 10", b.Cols())
	}
}

func TestNewCellBuffer_AllDefault(t *testing.T) {
	b := NewCellBuffer(2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if !b.At(x, y).IsDefault() {
				t.Errorf("At(%d,%d) not default", x, y)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// At / Set out-of-bounds safety
// ---------------------------------------------------------------------------

func TestCellBuffer_OutOfBounds(t *testing.T) {
	b := NewCellBuffer(3, 3)
	if got := b.At(-1, 0); got != DefaultCell {
		t.Errorf("At(-1,0) = %v, want DefaultCell", got)
	}
	if got := b.At(0, 99); got != DefaultCell {
		t.Errorf("At(0,99) = %v, want DefaultCell", got)
	}
	// Set on an out-of-range coordinate must not panic and must not
	// corrupt the buffer.
	b.Set(99, 99, PackColor('x', 0, 0, 0))
	if !b.At(0, 0).IsDefault() {
		t.Error("out-of-range Set corrupted cell (0,0)")
	}
}

func TestCellBuffer_SetAt(t *testing.T) {
	b := NewCellBuffer(3, 3)
	b.Set(1, 1, PackColor('x', 0, 0, 0))
	if r := b.At(1, 1).Rune(); r != 'x' {
		t.Errorf("At(1,1).Rune() = %q, want 'x'", r)
	}
}

// ---------------------------------------------------------------------------
// Peek / Poke / Zero
// ---------------------------------------------------------------------------

func TestCellBuffer_PeekPoke(t *testing.T) {
	b := NewCellBuffer(1, 5)
	for x, r := range "abcde" {
		b.Set(x, 0, PackColor(r, 0, 0, 0))
	}
	got := b.Peek(1, 0, 3, 0, true)
	want := "bcd"
	if len(got) != len(want) {
		t.Fatalf("Peek len = %d, want %d", len(got), len(want))
	}
	for i, r := range want {
		if got[i].Rune() != r {
			t.Errorf("Peek()[%d] = %q, want %q", i, got[i].Rune(), r)
		}
	}

	b.Poke(0, 0, got)
	for i, r := range want {
		if b.At(i, 0).Rune() != r {
			t.Errorf("after Poke, At(%d,0) = %q, want %q", i, b.At(i, 0).Rune(), r)
		}
	}
}

func TestCellBuffer_Zero(t *testing.T) {
	b := NewCellBuffer(1, 5)
	for x, r := range "abcde" {
		b.Set(x, 0, PackColor(r, 0, 0, 0))
	}
	n := b.Zero(1, 0, 3, 0, true)
	if n != 3 {
		t.Errorf("Zero returned %d, want 3", n)
	}
	for _, x := range []int{1, 2, 3} {
		if !b.At(x, 0).IsDefault() {
			t.Errorf("At(%d,0) not cleared", x)
		}
	}
	if b.At(0, 0).Rune() != 'a' || b.At(4, 0).Rune() != 'e' {
		t.Error("Zero cleared cells outside its range")
	}
}

// ---------------------------------------------------------------------------
// ScrollUp / ScrollDown / ScrollRight
// ---------------------------------------------------------------------------

func TestCellBuffer_ScrollUp(t *testing.T) {
	b := NewCellBuffer(3, 1)
	b.Set(0, 0, PackColor('A', 0, 0, 0))
	b.Set(0, 1, PackColor('B', 0, 0, 0))
	b.Set(0, 2, PackColor('C', 0, 0, 0))

	// Shift rows 1..2 up into 0..1, blank row 2.
	b.ScrollUp(1, 2)

	if b.At(0, 0).Rune() != 'B' {
		t.Errorf("row 0 = %q, want 'B'", b.At(0, 0).Rune())
	}
	if b.At(0, 1).Rune() != 'C' {
		t.Errorf("row 1 = %q, want 'C'", b.At(0, 1).Rune())
	}
	if !b.At(0, 2).IsDefault() {
		t.Error("row 2 not blanked")
	}
}

func TestCellBuffer_ScrollUp_AtTopBlanksRegion(t *testing.T) {
	b := NewCellBuffer(2, 1)
	b.Set(0, 0, PackColor('A', 0, 0, 0))
	b.Set(0, 1, PackColor('B', 0, 0, 0))

	b.ScrollUp(0, 1)

	if !b.At(0, 0).IsDefault() || !b.At(0, 1).IsDefault() {
		t.Error("ScrollUp(0,...) should blank the whole region, nothing above to shift in from")
	}
}

func TestCellBuffer_ScrollDown(t *testing.T) {
	b := NewCellBuffer(3, 1)
	b.Set(0, 0, PackColor('A', 0, 0, 0))
	b.Set(0, 1, PackColor('B', 0, 0, 0))
	b.Set(0, 2, PackColor('C', 0, 0, 0))

	b.ScrollDown(0, 2)

	if !b.At(0, 0).IsDefault() {
		t.Error("row 0 not blanked")
	}
	if b.At(0, 1).Rune() != 'A' {
		t.Errorf("row 1 = %q, want 'A'", b.At(0, 1).Rune())
	}
	if b.At(0, 2).Rune() != 'B' {
		t.Errorf("row 2 = %q, want 'B'", b.At(0, 2).Rune())
	}
}

func TestCellBuffer_ScrollRight(t *testing.T) {
	b := NewCellBuffer(1, 4)
	for x, r := range "abc" {
		b.Set(x, 0, PackColor(r, 0, 0, 0))
	}
	b.ScrollRight(1, 0)

	want := []rune{'a', 0, 'b', 'c'}
	for x, r := range want {
		if b.At(x, 0).Rune() != r {
			t.Errorf("At(%d,0) = %q, want %q", x, b.At(x, 0).Rune(), r)
		}
	}
}
