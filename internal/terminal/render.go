package terminal

import "strings"

// render span tags: BBCode-style markup instead of HTML, since the
// consumer here is a websocket client, not a template engine (spec.md §1
// excludes HTML templating from scope). Every maximal run of cells
// sharing (fg, bg, attrs) becomes one `[cell ...]...[/cell]` span.
const (
	tagOpen  = "[cell"
	tagClose = "[/cell]"
)

var attrNames = []struct {
	bit  Cell
	name string
}{
	{AttrBold, "b"},
	{AttrDim, "d"},
	{AttrUnderline, "u"},
	{AttrBlink, "bl"},
	{AttrReverse, "r"},
	{AttrStandout, "so"},
	{AttrAltCharset, "ac"},
}

// span is one run of cells sharing identical rendition.
type span struct {
	fg, bg int
	attrs  Cell
	text   strings.Builder
}

func (s *span) sameStyle(fg, bg int, attrs Cell) bool {
	return s.fg == fg && s.bg == bg && s.attrs == attrs
}

func (s *span) writeTo(out *strings.Builder) {
	out.WriteString(tagOpen)
	out.WriteString(" fg=")
	out.WriteString(itoa(s.fg))
	out.WriteString(" bg=")
	out.WriteString(itoa(s.bg))
	for _, a := range attrNames {
		if s.attrs&a.bit != 0 {
			out.WriteByte(' ')
			out.WriteString(a.name)
		}
	}
	out.WriteByte(']')
	out.WriteString(s.text.String())
	out.WriteString(tagClose)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// escapeText escapes the two characters that would otherwise be
// mistaken for markup delimiters.
func escapeText(r rune) string {
	switch r {
	case '[':
		return "\\["
	case ']':
		return "\\]"
	case ' ', 0:
		return " "
	default:
		return string(r)
	}
}

// Render walks the buffer row-major and emits grouped-span markup
// (spec.md §4.F). The cursor cell, if visible, is forced to bg=1, fg=7
// regardless of its stored rendition. The background's bright bit is
// masked off per the baseline renderer's color choice (spec.md §4.F):
// bg always uses the normal (non-bright) palette even when the cell's
// color field encodes a bright background.
//
// The REVERSE attribute bit is treated as one-shot: this pass reads it
// as already applied to fg/bg selection and reports runs as if the bit
// had been cleared afterward (spec.md §9's documented divergence from
// ECMA-48, preserved from the source's behavior). The live buffer is
// never mutated by a render call.
func (e *Emulator) Render() string {
	var out strings.Builder
	cx, cy := e.cursor.X, e.cursor.Y
	showCursor := e.cursor.Visible()

	var cur *span
	flush := func() {
		if cur != nil {
			cur.writeTo(&out)
			cur = nil
		}
	}

	for y := 0; y < e.rows; y++ {
		for x := 0; x < e.cols; x++ {
			c := e.buf.At(x, y)
			fg, bg, attrs := effectiveStyle(c)

			if showCursor && x == cx && y == cy {
				bg, fg = 1, 7
				attrs &^= AttrReverse
			}

			if cur == nil || !cur.sameStyle(fg, bg, attrs) {
				flush()
				cur = &span{fg: fg, bg: bg, attrs: attrs}
			}
			cur.text.WriteString(escapeText(c.Rune()))
		}
		flush()
		if y != e.rows-1 {
			out.WriteByte('\n')
		}
	}

	return out.String()
}

// effectiveStyle derives the rendered (fg, bg, attrs) for a cell,
// resolving the REVERSE bit (swap fg/bg, then clear the bit from the
// reported attribute set — spec.md §9) and masking bg to the normal
// 3-bit palette.
func effectiveStyle(c Cell) (fg, bg int, attrs Cell) {
	fg, bg = c.FG(), c.BG()
	attrs = c.Attrs()
	if attrs&AttrReverse != 0 {
		fg, bg = bg, fg
	}
	bg &= 0x7
	attrs &^= AttrReverse
	return fg, bg, attrs
}
