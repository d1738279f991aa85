package scanner_test

import (
	"testing"

	"github.com/mna/tin/lang/machine"
	"github.com/mna/tin/lang/scanner"
	"github.com/mna/tin/lang/token"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, src string) []machine.Token {
	t.Helper()
	tbl := token.NewBuiltins()
	toks, err := scanner.Lex(tbl, src)
	require.NoError(t, err)
	return toks
}

func TestLexSkipsWhitespace(t *testing.T) {
	toks := lex(t, " 1  + \t2\n")
	require.Len(t, toks, 3)
	require.Equal(t, machine.KindLiteralToken, toks[0].Kind)
	require.Equal(t, "1", toks[0].Rep)
	require.Equal(t, machine.KindIntrinsicToken, toks[1].Kind)
	require.Equal(t, "+", toks[1].Rep)
	require.Equal(t, "2", toks[2].Rep)
}

func TestLexString(t *testing.T) {
	toks := lex(t, "'hello'")
	require.Len(t, toks, 1)
	require.Equal(t, machine.KindLiteralToken, toks[0].Kind)
	require.Equal(t, "hello", toks[0].Literal.String())
}

func TestLexBlockRecurses(t *testing.T) {
	toks := lex(t, "⟨!!⊲⟩")
	require.Len(t, toks, 1)
	require.Equal(t, machine.KindBlockToken, toks[0].Kind)
	require.Len(t, toks[0].Block.Tokens, 3)
}

func TestLexUnknownGlyphErrors(t *testing.T) {
	tbl := token.NewBuiltins()
	_, err := scanner.Lex(tbl, "世")
	require.Error(t, err)
	var lexErr *scanner.Error
	require.ErrorAs(t, err, &lexErr)
}

func TestLexDefinitionInstallsWord(t *testing.T) {
	tbl := token.NewBuiltins()
	toks, err := scanner.Lex(tbl, "|1→n|→|F| F")
	require.NoError(t, err)

	// the defining occurrence itself is a no-op, then the invocation "F".
	require.Len(t, toks, 2)
	require.Equal(t, machine.KindMetaToken, toks[0].Kind)
	require.Equal(t, machine.KindMetaToken, toks[1].Kind)
	require.Equal(t, "F", toks[1].Rep)

	// a later Lex call against the same table also recognizes F.
	more, err := scanner.Lex(tbl, "F")
	require.NoError(t, err)
	require.Len(t, more, 1)
	require.Equal(t, "F", more[0].Rep)
}

func TestLexDefinitionDoesNotLeakAcrossTables(t *testing.T) {
	tbl := token.NewBuiltins()
	_, err := scanner.Lex(tbl, "|1→n|→|F| F")
	require.NoError(t, err)

	fresh := token.NewBuiltins()
	_, err = scanner.Lex(fresh, "F")
	require.Error(t, err)
}
