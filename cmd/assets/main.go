package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", "", "Path to config.yaml. Defaults to the config directory next to the binary.")

var commands = []subcommands.Command{
	&basesCmd{},
	&summaryCmd{},
	&selectionCmd{name: "remove", merge: false},
	&selectionCmd{name: "merge", merge: true},
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands {
		commander.Register(c, "assets")
	}

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := commander.Execute(ctx)
	stop()
	os.Exit(int(code))
}
