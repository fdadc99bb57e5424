// Command pictdbm is the pictDB command-line manager: create, list,
// insert, read, delete and garbage-collect database files.
package main

import (
	"os"

	"github.com/panv/pictdb/internal/pictdbcli"
)

func main() {
	os.Exit(pictdbcli.Run(os.Stdout, os.Stderr, os.Args[1:]))
}
