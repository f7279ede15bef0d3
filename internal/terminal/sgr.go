package terminal

// SGR holds the pending Select Graphic Rendition state: the attribute and
// color bits merged into every character echoed to the screen. Its bit
// layout mirrors Cell's attribute/color region so that echo can fold it
// into a code point with a single OR (spec.md §3, §4.B).
//
// Bold is tracked as both an attribute bit (so the renderer can still show
// it as "bold") and a bias on the active foreground: spec.md's adopted
// reading of the bold/color Open Question has bold bias subsequent
// set_fg calls by +8, picking the bright palette variant. baseFG keeps
// the un-biased color so toggling bold on and off recomputes the
// displayed foreground without losing the underlying selection.
type SGR struct {
	attrs  Cell
	baseFG int
	baseBG int
}

// NewSGR returns an SGR already reset to the default cell's rendition.
func NewSGR() SGR {
	var s SGR
	s.Default()
	return s
}

// Default resets the rendition to the default cell value: fg=7, bg=0, no
// attributes.
func (s *SGR) Default() {
	s.attrs = 0
	s.baseFG = DefaultFG
	s.baseBG = DefaultBG
}

// fg returns the color actually displayed, applying the bold-bright bias.
func (s *SGR) fg() int {
	fg := s.baseFG
	if s.attrs&AttrBold != 0 && fg < 8 {
		fg += 8
	}
	return fg
}

// Cell returns the current rendition folded into a zero-code-point Cell,
// ready to be OR'd with a printed rune.
func (s *SGR) Cell() Cell {
	return PackColor(0, s.attrs, s.fg(), s.baseBG)
}

// SetBit sets an attribute bit directly.
func (s *SGR) SetBit(bit Cell) { s.attrs |= bit }

// ClearBit clears an attribute bit directly.
func (s *SGR) ClearBit(bit Cell) { s.attrs &^= bit }

// IsBitSet reports whether bit is set, either in the live SGR state or in
// an already-packed Cell — both share the same bit positions.
func IsBitSet(v Cell, bit Cell) bool { return v&bit != 0 }

// SetColor dispatches a single SGR parameter (the argument to `\E[%dm`,
// spec.md §4.B). n must be one of the values documented there; anything
// else is a no-op, matching the original's ignore-unknown-colour policy.
func (s *SGR) SetColor(n int) {
	switch {
	case n == 0, n == 39, n == 49:
		// 0 resets everything; 39/49 reset fg/bg respectively but the
		// original (gits/terminal.py:_cap_set_color) treats all three as
		// a full reset, and spec.md §4.B groups them together — preserved.
		s.Default()
	case n == 1: // bold
		s.attrs |= AttrBold
	case n == 2: // dim
		s.attrs |= AttrDim
	case n == 4: // smul (underline)
		s.attrs |= AttrUnderline
	case n == 5: // blink
		s.attrs |= AttrBlink
	case n == 7: // smso/rev (standout, doubles as reverse video)
		s.attrs |= AttrStandout | AttrReverse
	case n == 10: // rmpch — exit PC-character display mode, no-op
	case n == 11: // smpch — enter PC-character display mode, no-op
	case n == 24: // rmul
		s.attrs &^= AttrUnderline
	case n == 27: // rmso
		s.attrs &^= AttrStandout | AttrReverse
	case n >= 30 && n <= 37: // setaf
		s.baseFG = n - 30
	case n >= 40 && n <= 47: // setab
		s.baseBG = n - 40
	}
}

// SetColorPair dispatches a two-argument SGR (`\E[%d;%dm`, spec.md §4.B).
func (s *SGR) SetColorPair(p1, p2 int) {
	if (p1 == 0 && p2 == 10) || (p1 == 39 && p2 == 49) {
		s.Default()
		return
	}
	s.SetColor(p1)
	s.SetColor(p2)
}
