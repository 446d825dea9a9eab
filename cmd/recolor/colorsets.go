package main

import (
	"context"
	"fmt"

	"github.com/yenyang/Recolor-sub000/internal/colorsets"
	"github.com/yenyang/Recolor-sub000/internal/colorstate"
)

// SetsDirOption is the color set directory shared by the colorsets commands.
type SetsDirOption struct {
	Dir string `short:"d" long:"dir" default:"colorsets" description:"Saved color set directory"`
}

type colorSetsCmd struct {
	List   setsListCmd   `command:"list" description:"List saved color sets"`
	Show   setsShowCmd   `command:"show" description:"Print a saved color set"`
	Save   setsSaveCmd   `command:"save" description:"Save a color set"`
	Delete setsDeleteCmd `command:"delete" description:"Delete a saved color set"`
}

type setsListCmd struct {
	SetsDirOption
}

// Execute lists without a process context.
func (c *setsListCmd) Execute(args []string) error {
	return c.Run(context.Background(), args)
}

// Run prints every saved set name.
func (c *setsListCmd) Run(ctx context.Context, _ []string) error {
	for _, name := range colorsets.NewLibrary(c.Dir).List(ctx) {
		fmt.Println(name)
	}

	return nil
}

type setsShowCmd struct {
	SetsDirOption

	Args struct {
		Name string `positional-arg-name:"NAME" required:"true" description:"Set name"`
	} `positional-args:"true"`
}

// Execute shows without a process context.
func (c *setsShowCmd) Execute(args []string) error {
	return c.Run(context.Background(), args)
}

// Run prints the colors of one set.
func (c *setsShowCmd) Run(ctx context.Context, _ []string) error {
	set, ok := colorsets.NewLibrary(c.Dir).Load(ctx, c.Args.Name)
	if !ok {
		return fmt.Errorf("color set %q not found", c.Args.Name)
	}

	for ch, color := range set {
		fmt.Printf("%d=%s\n", ch, color)
	}

	return nil
}

type setsSaveCmd struct {
	SetsDirOption

	Args struct {
		Name string `positional-arg-name:"NAME" required:"true" description:"Set name"`
	} `positional-args:"true"`

	Colors []string `short:"c" long:"color" required:"true" description:"Channel color as CHANNEL=COLOR (repeatable)"`
}

// Execute saves without a process context.
func (c *setsSaveCmd) Execute(args []string) error {
	return c.Run(context.Background(), args)
}

// Run saves the given colors. Channels not given stay transparent black.
func (c *setsSaveCmd) Run(ctx context.Context, _ []string) error {
	set, err := parseColors(colorstate.ColorSet{}, c.Colors)
	if err != nil {
		return err
	}

	return colorsets.NewLibrary(c.Dir).Save(ctx, c.Args.Name, set)
}

type setsDeleteCmd struct {
	SetsDirOption

	Args struct {
		Name string `positional-arg-name:"NAME" required:"true" description:"Set name"`
	} `positional-args:"true"`
}

// Execute deletes without a process context.
func (c *setsDeleteCmd) Execute(args []string) error {
	return c.Run(context.Background(), args)
}

// Run removes one set.
func (c *setsDeleteCmd) Run(_ context.Context, _ []string) error {
	return colorsets.NewLibrary(c.Dir).Delete(c.Args.Name)
}
