package token_test

import (
	"testing"

	"github.com/mna/tin/lang/token"
	"github.com/stretchr/testify/require"
)

func TestNewBuiltinsProbesDigits(t *testing.T) {
	tbl := token.NewBuiltins()
	entry, rep, ok := tbl.Probe("123+", 0)
	require.True(t, ok)
	require.Equal(t, token.EntryLiteral, entry.Kind)
	require.Equal(t, "123", rep)
}

func TestNewBuiltinsProbesIntrinsic(t *testing.T) {
	tbl := token.NewBuiltins()
	entry, rep, ok := tbl.Probe("+", 0)
	require.True(t, ok)
	require.Equal(t, token.EntryIntrinsic, entry.Kind)
	require.Equal(t, "+", rep)
}

func TestNewBuiltinsProbesVariableSigils(t *testing.T) {
	tbl := token.NewBuiltins()

	entry, rep, ok := tbl.Probe("→abc x", 0)
	require.True(t, ok)
	require.Equal(t, token.EntryMeta, entry.Kind)
	require.Equal(t, "→abc", rep)

	entry, rep, ok = tbl.Probe(".x", 0)
	require.True(t, ok)
	require.Equal(t, token.EntryMeta, entry.Kind)
	require.Equal(t, ".x", rep)
}

func TestNewBuiltinsProbesBlockAndDef(t *testing.T) {
	tbl := token.NewBuiltins()

	_, rep, ok := tbl.Probe("⟨!!⊲⟩.n", 0)
	require.True(t, ok)
	require.Equal(t, "⟨!!⊲⟩", rep)

	_, rep, ok = tbl.Probe("|1→n|→|F| F", 0)
	require.True(t, ok)
	require.Equal(t, "|1→n|→|F|", rep)
}

func TestProbeFailsOnUnknownGlyph(t *testing.T) {
	tbl := token.NewBuiltins()
	_, _, ok := tbl.Probe("世", 0)
	require.False(t, ok)
}

func TestDefineAppendsAfterBuiltins(t *testing.T) {
	tbl := token.NewBuiltins()
	before := len(tbl.Entries())

	tbl.Define("F", tbl.Entries()[0].Pattern, tbl.Entries()[0].New)
	require.Equal(t, before+1, len(tbl.Entries()))

	last := tbl.Entries()[len(tbl.Entries())-1]
	require.Equal(t, token.EntryMeta, last.Kind)
	require.Equal(t, "F", last.Name)
}
