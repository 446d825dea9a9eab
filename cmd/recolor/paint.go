package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yenyang/Recolor-sub000/internal/colorsets"
	"github.com/yenyang/Recolor-sub000/internal/logger"
	"github.com/yenyang/Recolor-sub000/internal/painter"
	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/prefs"
	"github.com/yenyang/Recolor-sub000/internal/project"
	"github.com/yenyang/Recolor-sub000/internal/scene"
)

type paintCmd struct {
	Args struct {
		Project string `positional-arg-name:"PROJECT" required:"true" description:"Project file (yaml/json)"`
		Output  string `positional-arg-name:"OUT" description:"Output project file (default: overwrite input)"`
	} `positional-args:"true"`

	Mode       string   `short:"m" long:"mode" choice:"paint" choice:"reset" choice:"picker" default:"paint" description:"Tool mode"`
	Target     uint32   `short:"t" long:"target" description:"Single scope target id"`
	At         string   `short:"a" long:"at" description:"Radius scope anchor as x,z"`
	Radius     float32  `short:"r" long:"radius" default:"10" description:"Radius scope size"`
	Categories []string `long:"category" choice:"building" choice:"prop" choice:"vehicle" choice:"netlane" description:"Radius scope filter (repeatable, default: all)"`
	Channels   string   `long:"channels" default:"012" description:"Channels the tool touches"`
	Colors     []string `short:"c" long:"color" description:"Channel color as CHANNEL=COLOR (repeatable)"`
	Palettes   []string `short:"p" long:"palette" description:"Channel palette as CHANNEL=PALETTE (repeatable)"`
	Workers    int      `short:"w" long:"workers" description:"Parallel jobs (default: from GOMAXPROCS)"`
	Format     string   `short:"f" long:"format" choice:"yaml" choice:"json" description:"Output format (default: from extension)"`

	SetsDir   string `long:"sets-dir" default:"colorsets" description:"Saved color set directory"`
	UseSet    string `long:"use-set" description:"Start from a saved color set"`
	SaveSet   string `long:"save-set" description:"Save the picked colors under this name"`
	PrefsFile string `long:"prefs" description:"Preference blob updated with the painted palettes"`
}

// Execute paints without a process context.
func (c *paintCmd) Execute(args []string) error {
	return c.Run(context.Background(), args)
}

// Run opens the project, performs one tool action and writes the result.
func (c *paintCmd) Run(ctx context.Context, _ []string) error {
	log := logger.FromContext(ctx)

	doc, err := project.Read(c.Args.Project)
	if err != nil {
		return err
	}

	s, err := project.Open(ctx, doc, filepath.Dir(c.Args.Project), c.Workers)
	if err != nil {
		return err
	}

	tool, in, err := c.tool(ctx)
	if err != nil {
		return err
	}

	ctrl := painter.NewController(s.Mutator, tool)
	if tool.Mode == painter.ModePicker {
		return c.pick(ctx, ctrl, in)
	}

	targets := s.Mutator.Targets(ctrl.Tool())
	res, ran, err := ctrl.Update(ctx, in)
	if err != nil {
		return err
	}
	if !ran {
		return errors.New("nothing to paint")
	}

	if c.PrefsFile != "" && tool.Mode == painter.ModePaint && tool.HasPalettes() {
		if err := c.remember(ctx, s, tool, targets); err != nil {
			return err
		}
	}

	out := c.Args.Output
	if out == "" {
		out = c.Args.Project
	}
	format := c.Format
	if format == "" {
		format = formatOf(out, "yaml")
	}
	if err := project.Write(out, s.Snapshot(), format); err != nil {
		return err
	}

	log.Debug("paint done",
		zap.String("mode", string(tool.Mode)),
		zap.String("scope", string(tool.Scope)),
		zap.Strings("refreshed", idStrings(s.World.TakeUpdated())))
	printPaintStats(res, out)

	return nil
}

// tool builds the tool state and the input of one click.
func (c *paintCmd) tool(ctx context.Context) (painter.Tool, painter.Input, error) {
	tool := painter.DefaultTool()
	tool.Mode = painter.Mode(c.Mode)
	tool.Radius = c.Radius

	var in painter.Input
	switch {
	case c.Target != 0 && c.At != "":
		return tool, in, errors.New("--target and --at are exclusive")
	case c.Target != 0:
		tool.Scope = painter.ScopeSingle
		tool.Target = scene.ID(c.Target)
		in.Hover = tool.Target
	case c.At != "" && tool.Mode != painter.ModePicker:
		anchor, err := parseAnchor(c.At)
		if err != nil {
			return tool, in, err
		}
		tool.Scope = painter.ScopeRadius
		tool.Anchor = anchor
		in.Cursor = anchor
	default:
		return tool, in, errors.New("no target: use --target or --at")
	}

	var err error
	if tool.Categories, err = parseCategories(c.Categories); err != nil {
		return tool, in, err
	}
	if tool.Toggles, err = parseToggles(c.Channels); err != nil {
		return tool, in, err
	}

	if c.UseSet != "" {
		set, ok := colorsets.NewLibrary(c.SetsDir).Load(ctx, c.UseSet)
		if !ok {
			return tool, in, fmt.Errorf("color set %q not found", c.UseSet)
		}
		tool.Colors = set
	}
	if tool.Colors, err = parseColors(tool.Colors, c.Colors); err != nil {
		return tool, in, err
	}

	for _, item := range c.Palettes {
		ch, pid, err := splitChannel(item)
		if err != nil {
			return tool, in, err
		}
		tool.Palettes[ch] = palette.ID(pid)
	}

	if tool.Mode == painter.ModeReset {
		in.SecondaryPressed = true
	} else {
		in.ApplyPressed = true
	}

	return tool, in, nil
}

// pick prints the live colors of the hovered object and optionally saves them.
func (c *paintCmd) pick(ctx context.Context, ctrl *painter.Controller, in painter.Input) error {
	if _, _, err := ctrl.Update(ctx, in); err != nil {
		return err
	}
	if ctrl.Tool().Mode == painter.ModePicker {
		return fmt.Errorf("entity %d has no colors", in.Hover)
	}

	picked := ctrl.Tool().Colors
	for ch, color := range picked {
		fmt.Printf("%d=%s\n", ch, color)
	}

	if c.SaveSet == "" {
		return nil
	}

	return colorsets.NewLibrary(c.SetsDir).Save(ctx, c.SaveSet, picked)
}

// remember stores the painted palette choice as the preference of every
// painted prefab.
func (c *paintCmd) remember(ctx context.Context, s *project.Session, tool painter.Tool, targets []scene.ID) error {
	p := prefs.Load(ctx, c.PrefsFile)
	for _, id := range targets {
		e, ok := s.World.Get(id)
		if !ok {
			continue
		}
		for ch, pid := range tool.Palettes {
			if pid != "" && tool.Toggles[ch] {
				p.Set(e.Prefab, ch, pid)
				s.Prefs.Set(e.Prefab, ch, pid)
			}
		}
	}

	return prefs.Save(ctx, c.PrefsFile, p)
}

func idStrings(ids []scene.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprint(id))
	}

	return out
}
