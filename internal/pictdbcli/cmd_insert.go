package pictdbcli

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/panv/pictdb/pkg/pictdb"
)

// InsertCmd inserts a JPEG file into a database under a given picture id.
func InsertCmd() *Command {
	flags := flag.NewFlagSet("insert", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "insert <dbfilename> <pictID> <filename>",
		Short: "insert a picture into pictDB",
		Exec: func(out, errOut io.Writer, args []string) error {
			if len(args) < 3 {
				return pictdb.NewCommandError(pictdb.KindNotEnoughArguments, "insert", fmt.Errorf("missing <dbfilename>, <pictID> or <filename>"))
			}

			bytes, err := os.ReadFile(args[2])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[2], err)
			}

			db, err := pictdb.Open(args[0], pictdb.ReadWrite)
			if err != nil {
				return err
			}
			defer db.Close()

			err = db.Insert(args[1], bytes)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Insert")

			return nil
		},
	}
}
