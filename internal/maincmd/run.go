package maincmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mna/mainer"
	"github.com/mna/tin/lang/machine"
	"github.com/mna/tin/lang/tin"
	"github.com/mna/tin/lang/types"
)

// Run compiles and executes the program in the single file named by args,
// printing the resulting stack, one value per line.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFile(ctx, stdio, c.Input, c.MaxSteps, c.MaxRecursionDepth, c.Trace, args[0])
}

// RunFile is the command's testable body, split out from Run the same way
// the teacher splits TokenizeFiles/ParseFiles from their Cmd methods.
func RunFile(ctx context.Context, stdio mainer.Stdio, input string, maxSteps, maxRecursionDepth int, trace bool, file string) error {
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
	prog.MaxSteps = maxSteps
	prog.MaxRecursionDepth = maxRecursionDepth
	prog.Out = stdio.Stdout
	if trace {
		prog.Trace = func(ip int, tok machine.Token) {
			fmt.Fprintf(stdio.Stderr, "%04d %-10s %s\n", ip, tok.Kind, tok.Rep)
		}
	}

	stack, err := parseInput(input)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	result, err := prog.Execute(ctx, stack)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	for _, v := range result {
		fmt.Fprintln(stdio.Stdout, v.String())
	}
	return nil
}

// parseInput turns a comma-separated literal list ("5", "1,2,3", "'hi'")
// into an initial value stack, left-to-right in source order.
func parseInput(input string) ([]types.Value, error) {
	if input == "" {
		return nil, nil
	}
	parts := strings.Split(input, ",")
	stack := make([]types.Value, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		switch {
		case strings.HasPrefix(p, "'") && strings.HasSuffix(p, "'") && len(p) >= 2:
			stack = append(stack, types.Str(p[1:len(p)-1]))
		default:
			if n, err := strconv.ParseInt(p, 10, 64); err == nil {
				stack = append(stack, types.Int(n))
				continue
			}
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid -input value %q: %w", p, err)
			}
			stack = append(stack, types.Float(f))
		}
	}
	return stack, nil
}
