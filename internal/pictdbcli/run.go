package pictdbcli

import (
	"fmt"
	"io"

	"github.com/panv/pictdb/pkg/pictdb"
)

// Run is the pictdbm entry point. Returns a process exit code.
func Run(out, errOut io.Writer, args []string) int {
	commands := allCommands()

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	if len(args) < 1 {
		fmt.Fprintln(errOut, "ERROR: not enough arguments")
		printUsage(errOut, commands)

		return exitCode(pictdb.KindNotEnoughArguments)
	}

	cmd, ok := commandMap[args[0]]
	if !ok {
		fmt.Fprintln(errOut, "ERROR: invalid command:", args[0])
		printUsage(errOut, commands)

		return exitCode(pictdb.KindInvalidCommand)
	}

	return cmd.Run(out, errOut, args[1:])
}

func allCommands() []*Command {
	var commands []*Command

	all := func() []*Command { return commands }

	commands = []*Command{
		HelpCmd(all),
		ListCmd(),
		CreateCmd(),
		ReadCmd(),
		InsertCmd(),
		DeleteCmd(),
		GCCmd(),
	}

	return commands
}

func printUsage(w io.Writer, commands []*Command) {
	fmt.Fprintln(w, "pictdbm [COMMAND] [ARGUMENTS]")

	for _, cmd := range commands {
		fmt.Fprintln(w, cmd.HelpLine())
	}
}
