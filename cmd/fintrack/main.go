// Command fintrack inspects and maintains a fintrack database from the shell.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var (
	configPath = flag.String("config", os.Getenv("FINTRACK_CONFIG"), "path to a YAML config file")
	verbose    = flag.Bool("v", false, "log ledger operations at the configured level")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range currencyCommands {
		commander.Register(c, "currencies")
	}
	for _, c := range accountCommands {
		commander.Register(c, "accounts")
	}
	for _, c := range debtCommands {
		commander.Register(c, "debts")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
