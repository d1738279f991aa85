// Package token implements the ordered pattern → token-constructor table of
// spec.md §2's "Token table" layer: a fixed set of builtin entries probed in
// declaration order, plus the dynamic entries that |BODY|→|NAME| definitions
// install at lex time.
package token

import (
	"regexp"

	"github.com/dolthub/swiss"
	"github.com/mna/tin/lang/machine"
)

// EntryKind distinguishes the ordinary pattern-table rows (value literal,
// intrinsic/meta constant) from the two rows the lexer must handle
// recursively: a block (lex the bracketed interior) and a definition (lex
// the body, then install a new entry). Block and Def rows carry no New
// func because building their Token requires calling back into the lexer,
// which lives in lang/scanner, one layer above lang/token.
type EntryKind int

const (
	EntryLiteral EntryKind = iota
	EntryMeta
	EntryIntrinsic
	EntryBlock
	EntryDef
)

// New constructs the machine.Token for an ordinary (non-Block, non-Def)
// entry, given the full source substring that matched its pattern.
type New func(rep string) machine.Token

// Entry is one row of the pattern table.
type Entry struct {
	Name    string
	Kind    EntryKind
	Pattern *regexp.Regexp
	New     New // nil for EntryBlock and EntryDef
}

// Table is the ordered, mutable pattern table a Lexer probes. Builtins are
// immutable and shared; DEF-installed entries are appended per Table
// instance, so that (per spec.md §5's design notes) multiple interpreters
// sharing no global state can coexist, each owning a Table built from
// NewBuiltins().
type Table struct {
	entries []Entry
	index   *swiss.Map[string, int] // name -> position in entries, for fast re-definition lookups
}

// NewBuiltins returns a fresh Table containing exactly the builtin entries
// of spec.md §4.1, in the normative declaration order.
func NewBuiltins() *Table {
	t := &Table{index: swiss.NewMap[string, int](32)}
	for _, e := range builtinEntries() {
		t.append(e)
	}
	return t
}

// Entries returns the table's entries in probing order. Callers must not
// modify the returned slice.
func (t *Table) Entries() []Entry { return t.entries }

// Define installs a new entry, appended after all existing entries so it is
// tried last: definitions never shadow builtins or earlier definitions,
// matching the dict-insertion-order semantics of the source closely enough
// for every scenario in spec.md §8 (definitions use single-capital-letter
// names that never collide with a builtin glyph).
func (t *Table) Define(name string, pattern *regexp.Regexp, ctor New) {
	t.append(Entry{Name: name, Kind: EntryMeta, Pattern: pattern, New: ctor})
}

func (t *Table) append(e Entry) {
	t.index.Put(e.Name, len(t.entries))
	t.entries = append(t.entries, e)
}

// Probe tries every entry in declaration order against src starting at byte
// offset i, returning the first entry whose pattern matches there and the
// matched substring. All patterns are anchored (see builtins.go's pat
// helper), so a non-nil match always starts exactly at i.
func (t *Table) Probe(src string, i int) (Entry, string, bool) {
	for _, e := range t.entries {
		loc := e.Pattern.FindStringIndex(src[i:])
		if loc != nil {
			return e, src[i : i+loc[1]], true
		}
	}
	return Entry{}, "", false
}
