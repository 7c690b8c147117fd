// Package main is the entry point for the blockwin viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"blockwin/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	application.SetScreen(screen)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.Fini()
		os.Exit(0)
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "blockwin - windowed block document viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blockwin [options] [document.yaml]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  j/k, arrows     scroll\n")
		fmt.Fprintf(os.Stderr, "  PgUp/PgDn       scroll by page\n")
		fmt.Fprintf(os.Stderr, "  g/G, Home/End   jump to first/last block\n")
		fmt.Fprintf(os.Stderr, "  Enter/Space     toggle the visible section\n")
		fmt.Fprintf(os.Stderr, "  v/V             extend/clear the selection\n")
		fmt.Fprintf(os.Stderr, "  s               save the document\n")
		fmt.Fprintf(os.Stderr, "  q/Esc           quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("blockwin %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if args := flag.Args(); len(args) > 0 {
		opts.DocumentPath = args[0]
	}

	return opts
}
