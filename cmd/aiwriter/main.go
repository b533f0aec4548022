package main

import (
	"fmt"
	"os"

	"github.com/earlysvahn/aiwriter/cmd/aiwriter/commands"
	"github.com/earlysvahn/aiwriter/internal/action"
	"github.com/earlysvahn/aiwriter/internal/config"
	"github.com/earlysvahn/aiwriter/internal/writer"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "[aiwriter] warning: load .env: %v\n", err)
	}

	if len(os.Args) < 2 {
		commands.PrintUsage()
		os.Exit(1)
	}

	sub, args := os.Args[1], os.Args[2:]
	var err error
	switch {
	case sub == "settings":
		err = commands.RunSettingsCommand(args)
	case sub == "history":
		err = commands.RunHistoryCommand(args)
	case sub == "help" || sub == "-h" || sub == "--help":
		commands.PrintUsage()
		return
	case action.Get(sub) != nil:
		err = commands.RunActionCommand(sub, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", sub)
		commands.PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, writer.Notice(err))
		os.Exit(1)
	}
}
