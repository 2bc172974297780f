// Command ddtool inspects, converts and exports deluxepaint projects without
// opening a window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/ha1tch/deluxepaint/internal/config"
	"github.com/ha1tch/deluxepaint/internal/logger"
)

var errUsage = errors.New("usage")

type command struct {
	args string
	help string
	run  func(ctx context.Context, cfg *config.Config, args []string) error
}

var commands = map[string]command{
	"info":   {"<project>", "print project metadata", runInfo},
	"export": {"<project> <out.png|.jpg|.pdf>", "flatten and export", runExport},
	"thumbs": {"[-max N] <project> <outdir>", "write one thumbnail per layer", runThumbs},
	"new":    {"[-w W] [-h H] <project>", "create an empty project", runNew},
	"import": {"<image> <project>", "add an image as a new top layer", runImport},
	"pack":   {"<project> <out.ddd>", "pack a project directory into one file", runPack},
	"unpack": {"<in.ddd> <project>", "unpack an archive into a project directory", runUnpack},
}

var order = []string{"info", "export", "thumbs", "new", "import", "pack", "unpack"}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ddtool [-v] [-config file] <command> [args]\n\ncommands:\n")
	for _, name := range order {
		c := commands[name]
		fmt.Fprintf(os.Stderr, "  %-7s %-36s %s\n", name, c.args, c.help)
	}
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func main() {
	configFile := flag.String("config", config.DefaultFile, "settings file (TOML)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "ddtool: unknown command %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	l, err := logger.New(*verbose)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	cfg, err := config.Load(*configFile)
	if err != nil {
		l.Fatal("load config", zap.String("path", *configFile), zap.Error(err))
	}

	ctx := logger.NewContext(context.Background(), l.With(zap.String("cmd", flag.Arg(0))))
	if err := cmd.run(ctx, cfg, flag.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "usage: ddtool %s %s\n", flag.Arg(0), cmd.args)
			os.Exit(2)
		}
		logger.L(ctx).Error("failed", zap.Error(err))
		os.Exit(1)
	}
}
