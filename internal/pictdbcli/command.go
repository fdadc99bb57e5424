// Package pictdbcli implements the pictdbm command line: flag parsing,
// dispatch, and the Kind->exit-code mapping shared by every subcommand.
package pictdbcli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/panv/pictdb/pkg/pictdb"
)

// Command is one pictdbm subcommand.
type Command struct {
	// Flags defines command-specific flags. Command identity comes from
	// Usage, not the FlagSet's name.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "pictdbm".
	Usage string

	// Short is a one-line description shown in the top-level help.
	Short string

	// Exec runs the command after flags are parsed.
	Exec func(out, errOut io.Writer, args []string) error
}

// Name returns the command name (the first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine returns the one-line summary used by "pictdbm help".
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-28s %s", c.Usage, c.Short)
}

// Run parses flags and executes the command, returning a process exit
// code derived from the error's [pictdb.Kind] when Exec returns one.
func (c *Command) Run(out, errOut io.Writer, args []string) int {
	c.Flags.SetOutput(errOut)

	// Flags are written with a single dash ("-max_files 2"); pflag reads a
	// single dash as a run of shorthand letters, so rewrite each one to the
	// double-dash long form before parsing. Arguments after "--" are kept.
	longArgs := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			longArgs = append(longArgs, args[i:]...)

			break
		}

		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
			arg = "-" + arg
		}

		longArgs = append(longArgs, arg)
	}

	err := c.Flags.Parse(longArgs)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		fmt.Fprintln(errOut, "ERROR:", err)

		return exitCode(pictdb.KindInvalidArgument)
	}

	err = c.Exec(out, errOut, c.Flags.Args())
	if err != nil {
		fmt.Fprintln(errOut, "ERROR:", err)

		var kind pictdb.Kind
		if k, ok := pictdb.KindOf(err); ok {
			kind = k
		} else {
			kind = pictdb.KindIO
		}

		return exitCode(kind)
	}

	return 0
}

// exitCode maps a Kind to a small positive shell exit status, mirroring
// the enumerated error codes of the command this tool descends from.
func exitCode(k pictdb.Kind) int {
	switch k {
	case pictdb.KindInvalidArgument:
		return 1
	case pictdb.KindInvalidFilename:
		return 2
	case pictdb.KindInvalidPicId:
		return 3
	case pictdb.KindIO:
		return 4
	case pictdb.KindOutOfMemory:
		return 5
	case pictdb.KindFileNotFound:
		return 6
	case pictdb.KindFullDatabase:
		return 7
	case pictdb.KindDuplicateId:
		return 8
	case pictdb.KindMaxFiles:
		return 9
	case pictdb.KindResolutions:
		return 10
	case pictdb.KindImage:
		return 11
	case pictdb.KindNotEnoughArguments:
		return 12
	case pictdb.KindInvalidCommand:
		return 13
	default:
		return 1
	}
}
