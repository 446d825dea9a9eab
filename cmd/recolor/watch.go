package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/yenyang/Recolor-sub000/internal/logger"
	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/project"
)

type watchCmd struct {
	Args struct {
		Project string `positional-arg-name:"PROJECT" required:"true" description:"Project file (yaml/json) with palette_dir"`
	} `positional-args:"true"`

	Interval time.Duration `short:"i" long:"interval" default:"500ms" description:"Drain interval"`
	Format   string        `short:"f" long:"format" choice:"yaml" choice:"json" description:"Output format (default: from extension)"`
}

// Execute watches without a process context; it never stops on its own.
func (c *watchCmd) Execute(args []string) error {
	return c.Run(context.Background(), args)
}

// Run re-resolves bound palettes whenever palette files change and rewrites
// the project until ctx is done.
func (c *watchCmd) Run(ctx context.Context, _ []string) error {
	log := logger.FromContext(ctx)

	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}

	doc, err := project.Read(c.Args.Project)
	if err != nil {
		return err
	}

	s, err := project.Open(ctx, doc, filepath.Dir(c.Args.Project), 0)
	if err != nil {
		return err
	}
	if s.Dir == nil {
		return errors.New("project has no palette_dir")
	}

	w, err := palette.NewWatcher(ctx, s.Dir)
	if err != nil {
		return err
	}

	format := c.Format
	if format == "" {
		format = formatOf(c.Args.Project, "yaml")
	}

	log.Info("watching palettes", zap.String("dir", s.Dir.Dir()), zap.Strings("palettes", paletteIDs(s.Dir.IDs())))

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			events := w.Drain(ctx)
			if s.ApplyPaletteEvents(events) == 0 {
				continue
			}

			refreshed := s.World.TakeUpdated()
			if len(refreshed) == 0 {
				continue
			}

			if err := project.Write(c.Args.Project, s.Snapshot(), format); err != nil {
				log.Warn("write project", zap.String("path", c.Args.Project), zap.Error(err))
				continue
			}
			log.Info("project updated",
				zap.Int("events", len(events)),
				zap.Int("refreshed", len(refreshed)))
		}
	}
}

func paletteIDs(ids []palette.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}

	return out
}
