package pictdbcli

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/panv/pictdb/pkg/pictdb"
)

// ListCmd prints a database's header and the ids of its pictures.
func ListCmd() *Command {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	asJSON := flags.Bool("json", false, "print the listing as JSON instead of plain text")

	return &Command{
		Flags: flags,
		Usage: "list <dbfilename>",
		Short: "list pictDB content",
		Exec: func(out, errOut io.Writer, args []string) error {
			if len(args) < 1 {
				return pictdb.NewCommandError(pictdb.KindNotEnoughArguments, "list", fmt.Errorf("missing <dbfilename>"))
			}

			db, err := pictdb.Open(args[0], pictdb.ReadOnly)
			if err != nil {
				return err
			}
			defer db.Close()

			mode := pictdb.ListStdout
			if *asJSON {
				mode = pictdb.ListJSON
			}

			text, err := db.List(mode)
			if err != nil {
				return err
			}

			fmt.Fprint(out, text)
			if *asJSON {
				fmt.Fprintln(out)
			}

			return nil
		},
	}
}
