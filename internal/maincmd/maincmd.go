// Package maincmd implements the tin binary's command dispatch, in the
// shape of the teacher's internal/maincmd.Cmd: a flag-tagged struct parsed
// by mainer.Parser, routing to one method per subcommand by reflection.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
	"github.com/mna/tin/internal/config"
)

const binName = "tin"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> <path>
       %[1]s -h|--help
       %[1]s -v|--version

Interpreter for the %[1]s stack language.

The <command> can be one of:
       run                       Compile and execute a program, printing
                                 the final stack.
       tokenize                  Lex a program and print its token
                                 stream (substring and kind).

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <run> command are:
       --input                   Comma-separated initial stack values
                                 (integers, floats, 'strings').
       --max-steps               Abort after this many dispatched tokens
                                 (0 means unbounded).
       --max-recursion-depth     Abort after this many nested self-reference
                                 (∇) calls (0 means unbounded).
       --trace                   Print each dispatched token as it runs.

Valid for any command:
       --config                  Path to a YAML file overlaying
                                 TIN_MAX_STEPS, TIN_MAX_RECURSION_DEPTH and
                                 TIN_FLOAT_TOLERANCE; environment variables
                                 still win over the file, and an explicit
                                 --max-steps/--max-recursion-depth flag wins
                                 over both.

More information on the %[1]s repository:
       https://github.com/mna/tin
`, binName)
)

// Cmd is the root command struct, parsed by mainer.Parser and dispatched to
// the method matching the first positional argument.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Input             string `flag:"input"`
	MaxSteps          int    `flag:"max-steps"`
	MaxRecursionDepth int    `flag:"max-recursion-depth"`
	Trace             bool   `flag:"trace"`
	ConfigFile        string `flag:"config"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: a program file must be provided", cmdName)
	}

	if c.flags["input"] && cmdName != "run" {
		return fmt.Errorf("%s: invalid flag 'input'", cmdName)
	}
	if (c.flags["max-steps"] || c.flags["max-recursion-depth"] || c.flags["trace"]) && cmdName != "run" {
		return fmt.Errorf("%s: invalid flag for this command", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	// internal/config supplies the env/file-driven defaults for the limits
	// the run command's flags can also set directly; an explicit flag always
	// wins over the config layer, mirroring the teacher's flag-over-env
	// precedence in this same method.
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid config: %s\n", err)
		return mainer.InvalidArgs
	}
	if !c.flags["max-steps"] {
		c.MaxSteps = cfg.MaxSteps
	}
	if !c.flags["max-recursion-depth"] {
		c.MaxRecursionDepth = cfg.MaxRecursionDepth
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a mainer.Stdio and a slice of strings
// as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
