package terminal

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

// maxSeqLen is the scratch buffer's capacity: an escape sequence longer
// than this without matching anything is discarded as malformed
// (spec.md §3, §4.E).
const maxSeqLen = 32

// oscIgnore and csiIgnore are the two generic catch-all patterns the
// original carries outside its declarative table (gits/terminal.py's
// constructor builds `esc_re` by hand: one entry swallows any OSC
// payload up to BEL, the other swallows any CSI sequence with a
// recognized-but-unimplemented final byte). They exist because those two
// shapes have variable-length, non-%d payloads that don't fit the
// capability table's "%d capture" grammar.
var (
	oscIgnore = regexp.MustCompile("^\x1b\\]([^\x07]*)\x07$")
	csiIgnore = regexp.MustCompile("^\x1b\\[\\??([0-9;]*)([@A-Za-z`])$")
)

// feedRune is the Normal/Accumulating state machine described in
// spec.md §4.E, applied to one already-decoded scalar.
func (e *Emulator) feedRune(r rune) {
	if len(e.scratch) == 0 {
		switch {
		case r == 0x1b:
			e.scratch = append(e.scratch, r)
		case r < 0x20 || r == 0x7f:
			if id, ok := e.caps.Control[byte(r)]; ok {
				e.dispatchID(id, nil)
			}
			// Unmapped C0 controls are silently dropped, matching the
			// original's "control_characters[...] lookup or nothing" path.
		default:
			e.cursor.echo(e.buf, r, e.sgr.Cell())
		}
		return
	}

	e.scratch = append(e.scratch, r)
	e.tryDispatch()
}

// tryDispatch attempts to match the scratch buffer against the exact and
// parametric tables (in that order, spec.md §4.D), then the two generic
// catch-alls. A match invokes the capability and clears the buffer;
// overflow past maxSeqLen discards it unmatched.
func (e *Emulator) tryDispatch() {
	s := string(e.scratch)

	if id, ok := e.caps.Exact[s]; ok {
		e.dispatchID(id, nil)
		return
	}

	for _, p := range e.caps.Parametric {
		if m := p.Pattern.FindStringSubmatch(s); m != nil {
			args := make([]int, 0, len(m)-1)
			for _, g := range m[1:] {
				n, _ := strconv.Atoi(g)
				args = append(args, n)
			}
			e.dispatchID(p.ID, args)
			return
		}
	}

	if oscIgnore.MatchString(s) || csiIgnore.MatchString(s) {
		e.scratch = e.scratch[:0]
		return
	}

	if len(e.scratch) > maxSeqLen {
		e.scratch = e.scratch[:0]
	}
}

// dispatchID resolves a capability id string to its Capability constant
// and executes it, logging a diagnostic on an unresolvable id
// (spec.md §7's "Capability lookup miss").
func (e *Emulator) dispatchID(id string, args []int) {
	e.scratch = e.scratch[:0]
	capa, ok := lookupCapability(id)
	if !ok {
		e.logMissingCapability(id)
		return
	}
	e.exec(capa, args)
}

// FeedBytes consumes a byte slice, decoding it incrementally as UTF-8 and
// driving the parser state machine. It never fails: undecodable bytes
// become U+FFFD (spec.md §4.E.3) and a partial multi-byte scalar at the
// end of the slice is retained for the next call (spec.md §9).
func (e *Emulator) FeedBytes(b []byte) {
	data := append(e.pendingUTF8, b...)
	e.pendingUTF8 = e.pendingUTF8[:0]

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(data) && len(data) < utf8.UTFMax {
				// Might be a valid scalar split across FeedBytes calls.
				e.pendingUTF8 = append(e.pendingUTF8, data...)
				return
			}
			e.feedRune(utf8.RuneError)
			data = data[1:]
			continue
		}
		e.feedRune(r)
		data = data[size:]
	}
}
