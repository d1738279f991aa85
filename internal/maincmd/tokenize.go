package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/tin/lang/tin"
)

// Tokenize lexes the program in the single file named by args and prints
// its token stream, one (index, kind, source substring) triple per line.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFile(ctx, stdio, args[0])
}

func TokenizeFile(ctx context.Context, stdio mainer.Stdio, file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	prog, err := tin.Compile(string(src))
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	for i, tok := range prog.Tokens() {
		fmt.Fprintf(stdio.Stdout, "%04d %-10s %s\n", i, tok.Kind, tok.Rep)
	}
	return nil
}
