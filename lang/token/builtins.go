package token

import (
	"regexp"
	"strconv"

	"github.com/mna/tin/lang/intrinsics"
	"github.com/mna/tin/lang/machine"
	"github.com/mna/tin/lang/types"
)

func pat(expr string) *regexp.Regexp { return regexp.MustCompile(`\A(?:` + expr + `)`) }

func literalEntry(name, pattern string, ctor func(rep string) types.Value) Entry {
	return Entry{Name: name, Kind: EntryLiteral, Pattern: pat(pattern), New: func(rep string) machine.Token {
		return machine.Token{Kind: machine.KindLiteralToken, Rep: rep, Literal: ctor(rep)}
	}}
}

func metaEntry(name, pattern string, fn machine.MetaFunc) Entry {
	return Entry{Name: name, Kind: EntryMeta, Pattern: pat(pattern), New: func(rep string) machine.Token {
		return machine.Token{Kind: machine.KindMetaToken, Rep: rep, Meta: fn}
	}}
}

func intrinsicEntry(name, pattern string) Entry {
	in := intrinsics.Table[name]
	return Entry{Name: name, Kind: EntryIntrinsic, Pattern: pat(pattern), New: func(rep string) machine.Token {
		return machine.Token{Kind: machine.KindIntrinsicToken, Rep: rep, Arity: in.Arity, Intrinsic: machine.IntrinsicFunc(in.Fn)}
	}}
}

// builtinEntries returns the builtin pattern table in the normative
// declaration order of spec.md §4.1: literals first, then stack/control
// meta ops, then the block and definition factories, then self-reference,
// then the intrinsic glyphs. The relative order here is the order the
// original source's TOKENS dict was written in, which is what makes ties at
// a given cursor position resolve the same way.
func builtinEntries() []Entry {
	return []Entry{
		literalEntry("int", `\d+`, func(rep string) types.Value {
			n, _ := strconv.ParseInt(rep, 10, 64)
			return types.Int(n)
		}),
		literalEntry("str", `'.+?'`, func(rep string) types.Value {
			return types.Str(rep[1 : len(rep)-1])
		}),

		metaEntry("dup", `!`, machine.MetaDup),
		metaEntry("copy", `↷`, machine.MetaCopy),
		metaEntry("swap", `↶`, machine.MetaSwap),

		metaEntry("skip", `\?`, machine.MetaSkip),
		metaEntry("skip_peek", `◊`, machine.MetaSkipPeek),
		metaEntry("skip_inv", `:`, machine.MetaSkipInv),

		metaEntry("branch_init", `\[`, machine.MetaBranchInit),
		metaEntry("branch_end", `\]`, machine.MetaBranchEnd),
		metaEntry("foreach_init", `\{`, machine.MetaForeachInit),
		metaEntry("foreach_end", `\}`, machine.MetaForeachEnd),
		metaEntry("storer_init", `\(`, machine.MetaStorerInit),
		metaEntry("storer_end", `\)`, machine.MetaStorerEnd),

		metaEntry("define_var", `→[a-z_]+`, machine.MetaDefineVar),
		metaEntry("delete_var", `←[a-z_]+`, machine.MetaDeleteVar),
		metaEntry("get_var", `\.[a-z_]+`, machine.MetaGetVar),

		{Name: "block", Kind: EntryBlock, Pattern: pat(`⟨[^⟨⟩]+⟩`)},
		{Name: "def", Kind: EntryDef, Pattern: pat(`\|.+\|→\|.+?\|`)},

		metaEntry("self_reference", `∇`, machine.MetaSelfReference),

		intrinsicEntry("+", `\+`),
		intrinsicEntry("-", `\-`),
		intrinsicEntry("·", `·`),
		intrinsicEntry("/", `/`),
		intrinsicEntry("%", `%`),

		intrinsicEntry("⊳", `⊳`),
		intrinsicEntry("⊲", `⊲`),

		intrinsicEntry("𝔹", `𝔹`),

		intrinsicEntry("<", `<`),
		intrinsicEntry(">", `>`),
		intrinsicEntry("∃", `∃`),
		intrinsicEntry("∄", `∄`),
		intrinsicEntry("∀", `∀`),

		metaEntry("print", `\$`, machine.MetaPrint),

		intrinsicEntry("⍴", `⍴`),
		intrinsicEntry("ι", `ι`),
		intrinsicEntry("□", `□`),
		intrinsicEntry("R", `R`),
		intrinsicEntry("↓", `↓`),
		intrinsicEntry("↑", `↑`),

		intrinsicEntry("∑", `∑`),
		intrinsicEntry("∏", `∏`),

		intrinsicEntry("`", "`"),
		intrinsicEntry("´", `´`),
	}
}
