package pictdbcli

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/panv/pictdb/pkg/pictdb"
)

// DeleteCmd removes a picture from a database.
func DeleteCmd() *Command {
	flags := flag.NewFlagSet("delete", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "delete <dbfilename> <pictID>",
		Short: "delete picture pictID from pictDB",
		Exec: func(out, errOut io.Writer, args []string) error {
			if len(args) < 2 {
				return pictdb.NewCommandError(pictdb.KindNotEnoughArguments, "delete", fmt.Errorf("missing <dbfilename> or <pictID>"))
			}

			db, err := pictdb.Open(args[0], pictdb.ReadWrite)
			if err != nil {
				return err
			}
			defer db.Close()

			err = db.Delete(args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Delete")

			return nil
		},
	}
}
