// Package scanner implements the lexer of spec.md §4.1: it probes a
// lang/token.Table in declaration order at every cursor position, turning
// source text into a linear stream of lang/machine.Token values. Two entry
// kinds recurse back into Lex itself rather than building their token
// directly: a block's bracketed interior is lexed as its own sub-program,
// and a definition's body is lexed, compiled, and used to extend the table
// in place so later source (in this call or a later one sharing the table)
// recognizes the new word.
package scanner

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/mna/tin/lang/machine"
	"github.com/mna/tin/lang/token"
	"github.com/mna/tin/lang/types"
)

// Lex consumes src against table, returning the compiled token stream.
// table is mutated in place when src contains a |BODY|→|NAME| definition,
// per spec.md §4.1's Definition factory.
func Lex(table *token.Table, src string) ([]machine.Token, error) {
	var toks []machine.Token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}

		entry, rep, ok := table.Probe(src, i)
		if !ok {
			return nil, &Error{Pos: i, Src: src}
		}

		tok, err := build(table, entry, rep)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		i += len(rep)
	}
	return toks, nil
}

// build constructs the Token for one matched entry, recursing into Lex for
// the two entry kinds whose token cannot be built without it.
func build(table *token.Table, entry token.Entry, rep string) (machine.Token, error) {
	switch entry.Kind {
	case token.EntryBlock:
		return buildBlock(table, rep)
	case token.EntryDef:
		return buildDef(table, rep)
	default:
		return entry.New(rep), nil
	}
}

// buildBlock strips the ⟨ ⟩ delimiters (each three bytes in UTF-8) and lexes
// the interior as a sub-program, per spec.md §4.1's Block factory.
func buildBlock(table *token.Table, rep string) (machine.Token, error) {
	_, leadSize := utf8.DecodeRuneInString(rep)
	_, trailSize := utf8.DecodeLastRuneInString(rep)
	inner := rep[leadSize : len(rep)-trailSize]

	subTokens, err := Lex(table, inner)
	if err != nil {
		return machine.Token{}, err
	}
	return machine.Token{
		Kind:  machine.KindBlockToken,
		Rep:   rep,
		Block: machine.NewProgram(subTokens),
	}, nil
}

var defPattern = regexp.MustCompile(`\A\|(.+)\|→\|(.+?)\|\z`)

// noop is the Meta handler for the |BODY|→|NAME| occurrence itself: the
// defining occurrence's whole job is done at lex time (compiling BODY and
// installing NAME), matching the original source where the DEF token's own
// execute-time effect is a pass-through.
func noop(rt *machine.Runtime, prog *machine.Program, rep string, ip int, stack []types.Value) (int, []types.Value, error) {
	return ip, stack, nil
}

// buildDef parses |BODY|→|NAME|, compiles BODY once, and installs NAME as a
// new Meta entry appended to table, per spec.md §4.1's Definition factory
// and §4.9. The installed entry runs the compiled body program against
// whatever stack is current when NAME is later dispatched; it carries no
// parent link of its own; the caller's Block linking at dispatch time
// supplies that, should NAME's body itself contain a Block. The defining
// occurrence in the source is left as a no-op token.
func buildDef(table *token.Table, rep string) (machine.Token, error) {
	m := defPattern.FindStringSubmatch(rep)
	if m == nil {
		return machine.Token{}, fmt.Errorf("scanner: malformed definition %q", rep)
	}
	body, name := m[1], m[2]

	bodyTokens, err := Lex(table, body)
	if err != nil {
		return machine.Token{}, err
	}
	prog := machine.NewProgram(bodyTokens)

	namePattern, err := regexp.Compile(`\A(?:` + name + `)`)
	if err != nil {
		return machine.Token{}, fmt.Errorf("scanner: invalid definition name pattern %q: %w", name, err)
	}

	table.Define(name, namePattern, func(callRep string) machine.Token {
		return machine.Token{
			Kind: machine.KindMetaToken,
			Rep:  callRep,
			Meta: func(rt *machine.Runtime, callerProg *machine.Program, rep2 string, ip int, stack []types.Value) (int, []types.Value, error) {
				newStack, err := prog.Execute(rt, stack)
				return ip, newStack, err
			},
		}
	})

	return machine.Token{Kind: machine.KindMetaToken, Rep: rep, Meta: noop}, nil
}
