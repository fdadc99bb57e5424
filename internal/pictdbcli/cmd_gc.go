package pictdbcli

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/panv/pictdb/pkg/pictdb"
)

// GCCmd rebuilds a database file in place, reclaiming the space left by
// deleted pictures.
func GCCmd() *Command {
	flags := flag.NewFlagSet("gc", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "gc <dbfilename> <tmp_dbfilename>",
		Short: "garbage-collect a pictDB",
		Exec: func(out, errOut io.Writer, args []string) error {
			if len(args) < 2 {
				return pictdb.NewCommandError(pictdb.KindNotEnoughArguments, "gc", fmt.Errorf("missing <dbfilename> or <tmp_dbfilename>"))
			}

			db, err := pictdb.Open(args[0], pictdb.ReadWrite)
			if err != nil {
				return err
			}
			defer db.Close()

			err = db.GC(args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "GC")

			return nil
		},
	}
}
