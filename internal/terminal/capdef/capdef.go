// Package capdef builds the static capability tables spec.md §4.D
// describes: a byte -> id table for control characters, an exact-match
// string -> id table for fixed escape sequences, and an ordered list of
// compiled regular expressions -> id for parametric sequences. The tables
// are data, loaded once from a declarative YAML file (spec.md §6)
// grounded on gits/terminal.py's own `yaml.load` + regex-compile
// constructor loop — ported from dynamic lookup to a value built once at
// Emulator construction.
package capdef

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed linux_console.yaml
var defaultDefinition []byte

// Default parses the built-in Linux-console capability definition file
// embedded at build time.
func Default() (*Table, error) {
	return Load(defaultDefinition)
}

// ParamEntry is one compiled parametric escape sequence: "\E[%d;%dH"
// becomes a pattern capturing each %d as a decimal-integer group, paired
// with the capability id to dispatch on a match.
type ParamEntry struct {
	Pattern *regexp.Regexp
	ID      string
}

// Table is the fully-compiled capability definition: ready for the
// parser (spec.md §4.E) to look sequences up in.
type Table struct {
	// Control maps a control byte (e.g. 0x0A) to a capability id.
	Control map[byte]string

	// Exact maps a literal escape sequence (ESC already expanded from
	// "\E") to a capability id.
	Exact map[string]string

	// Parametric is tried in file order; the first matching pattern wins
	// (spec.md §4.D).
	Parametric []ParamEntry
}

// orderedPair preserves declaration order across a YAML mapping node,
// since Go's map iteration order is unspecified and spec.md §4.D requires
// patterns be tried "in the order they appear" in the file.
type orderedPair struct {
	Key, Value string
}

type orderedMap []orderedPair

// UnmarshalYAML reads a mapping node's key/value pairs in document order
// instead of decoding into a Go map (which would discard that order).
func (m *orderedMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("capdef: expected a mapping, got kind %d", value.Kind)
	}
	*m = make(orderedMap, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		*m = append(*m, orderedPair{
			Key:   value.Content[i].Value,
			Value: value.Content[i+1].Value,
		})
	}
	return nil
}

// rawFile mirrors the three keyed sections of the declarative definition
// file (spec.md §6).
type rawFile struct {
	ControlCharacters orderedMap `yaml:"control_characters"`
	EscapeSequences   orderedMap `yaml:"escape_sequences"`
	EscapeSequencesRe orderedMap `yaml:"escape_sequences_re"`
}

// paramPattern turns "\E[%d;%dH"-style templates into a compiled regexp:
// ESC is literal, "[" is escaped to a literal bracket, and each "%d"
// becomes a capturing group of one or more decimal digits (spec.md §4.D).
func paramPattern(tmpl string) (*regexp.Regexp, error) {
	expanded := strings.ReplaceAll(tmpl, `\E`, "\x1b")
	escaped := regexp.QuoteMeta(expanded)
	// QuoteMeta leaves "%" unescaped, so each "%d" meta-sequence is still
	// intact here and the `\%d` replacement finds nothing to undo.
	escaped = strings.ReplaceAll(escaped, `\%d`, `%d`)
	pattern := strings.ReplaceAll(escaped, "%d", `([0-9]+)`)
	return regexp.Compile("^" + pattern + "$")
}

// Load parses a declarative capability definition file (spec.md §6) into
// a compiled Table. A malformed file is a configuration fault (spec.md
// §7) and is returned as an error, never panics.
func Load(data []byte) (*Table, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("capdef: parsing definition file: %w", err)
	}

	t := &Table{
		Control: make(map[byte]string, len(raw.ControlCharacters)),
		Exact:   make(map[string]string, len(raw.EscapeSequences)),
	}

	for _, p := range raw.ControlCharacters {
		n, err := strconv.Atoi(p.Key)
		if err != nil || n < 0 || n > 255 {
			return nil, fmt.Errorf("capdef: invalid control character key %q", p.Key)
		}
		t.Control[byte(n)] = p.Value
	}

	for _, p := range raw.EscapeSequences {
		t.Exact[strings.ReplaceAll(p.Key, `\E`, "\x1b")] = p.Value
	}

	for _, p := range raw.EscapeSequencesRe {
		re, err := paramPattern(p.Key)
		if err != nil {
			return nil, fmt.Errorf("capdef: compiling pattern %q: %w", p.Key, err)
		}
		t.Parametric = append(t.Parametric, ParamEntry{Pattern: re, ID: p.Value})
	}

	return t, nil
}
