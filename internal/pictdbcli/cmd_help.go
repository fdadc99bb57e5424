package pictdbcli

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// HelpCmd prints the top-level usage listing.
func HelpCmd(all func() []*Command) *Command {
	flags := flag.NewFlagSet("help", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "help",
		Short: "displays this help",
		Exec: func(out, errOut io.Writer, args []string) error {
			fmt.Fprintln(out, "pictdbm [COMMAND] [ARGUMENTS]")

			for _, cmd := range all() {
				fmt.Fprintln(out, cmd.HelpLine())
			}

			return nil
		},
	}
}
