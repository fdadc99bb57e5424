package pictdbcli

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/panv/pictdb/pkg/pictdb"
)

// ReadCmd reads a picture out of a database and writes it to a file named
// "<pictID>_<resolution>.jpg" in the current directory.
func ReadCmd() *Command {
	flags := flag.NewFlagSet("read", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "read <dbfilename> <pictID> [resolution]",
		Short: "read a picture from pictDB",
		Exec: func(out, errOut io.Writer, args []string) error {
			if len(args) < 2 {
				return pictdb.NewCommandError(pictdb.KindNotEnoughArguments, "read", fmt.Errorf("missing <dbfilename> or <pictID>"))
			}

			res := pictdb.Original
			if len(args) >= 3 {
				parsed, err := pictdb.ParseResolution(args[2])
				if err != nil {
					return err
				}

				res = parsed
			}

			db, err := pictdb.Open(args[0], pictdb.ReadWrite)
			if err != nil {
				return err
			}
			defer db.Close()

			bytes, err := db.Read(args[1], res)
			if err != nil {
				return err
			}

			outPath := fmt.Sprintf("%s_%s.jpg", args[1], res)

			err = os.WriteFile(outPath, bytes, 0o644)
			if err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}

			fmt.Fprintln(out, outPath)

			return nil
		},
	}
}
