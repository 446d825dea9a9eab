// Command recolor resolves palette colors and applies batch color edits to
// scene project files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/yenyang/Recolor-sub000/internal/logger"
	"github.com/yenyang/Recolor-sub000/internal/vars"
)

type rootCmd struct {
	Verbose bool `short:"v" long:"verbose" description:"Verbose logging"`

	Version   versionCmd   `command:"version" description:"Show version information"`
	Resolve   resolveCmd   `command:"resolve" description:"Resolve palette colors for a seed"`
	Paint     paintCmd     `command:"paint" description:"Paint, reset or pick colors in a project"`
	Watch     watchCmd     `command:"watch" description:"Re-resolve a project while its palette files change"`
	Prefs     prefsCmd     `command:"prefs" description:"Convert palette preference blobs"`
	ColorSets colorSetsCmd `command:"colorsets" description:"Manage saved color sets"`
}

// runner is a command that takes the process context.
type runner interface {
	Run(ctx context.Context, args []string) error
}

func main() {
	var root rootCmd
	parser := flags.NewParser(&root, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}

		r, ok := cmd.(runner)
		if !ok {
			return cmd.Execute(args)
		}

		log, err := logger.New(root.Verbose)
		if err != nil {
			return err
		}
		defer func() {
			_ = log.Sync()
		}()
		zap.ReplaceGlobals(log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return r.Run(logger.NewContext(ctx, log), args)
	}

	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

type versionCmd struct{}

// Execute prints the version information.
func (c *versionCmd) Execute(_ []string) error {
	vars.Print()
	return nil
}
