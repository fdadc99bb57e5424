package pictdbcli

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/panv/pictdb/pkg/pictdb"
)

// CreateCmd creates a new, empty database file.
func CreateCmd() *Command {
	flags := flag.NewFlagSet("create", flag.ContinueOnError)
	maxFiles := flags.Uint32("max_files", pictdb.DefaultConfig().MaxFiles, "slot table capacity")
	thumbRes := flags.IntSlice("thumb_res", []int{64, 64}, "thumbnail width,height")
	smallRes := flags.IntSlice("small_res", []int{256, 256}, "small width,height")

	return &Command{
		Flags: flags,
		Usage: "create <dbfilename> [-max_files N] [-thumb_res W,H] [-small_res W,H]",
		Short: "create a new pictDB",
		Exec: func(out, errOut io.Writer, args []string) error {
			if len(args) < 1 {
				return pictdb.NewCommandError(pictdb.KindNotEnoughArguments, "create", fmt.Errorf("missing <dbfilename>"))
			}

			thumb, err := dimensionsOf(*thumbRes, "thumb_res")
			if err != nil {
				return err
			}

			small, err := dimensionsOf(*smallRes, "small_res")
			if err != nil {
				return err
			}

			cfg := pictdb.Config{MaxFiles: *maxFiles, ThumbRes: thumb, SmallRes: small}

			db, err := pictdb.Create(args[0], cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintln(out, "Create")

			return nil
		},
	}
}

func dimensionsOf(pair []int, flagName string) (pictdb.Dimensions, error) {
	if len(pair) != 2 {
		return pictdb.Dimensions{}, pictdb.NewCommandError(pictdb.KindInvalidCommand, "create",
			fmt.Errorf("-%s wants exactly two comma-separated values, got %v", flagName, pair))
	}

	return pictdb.Dimensions{Width: uint16(pair[0]), Height: uint16(pair[1])}, nil
}
