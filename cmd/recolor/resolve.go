package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yenyang/Recolor-sub000/internal/palette"
	"github.com/yenyang/Recolor-sub000/internal/swatch"
)

type resolveCmd struct {
	Args struct {
		Palette string `positional-arg-name:"PALETTE" required:"true" description:"Palette definition file (yaml/json)"`
	} `positional-args:"true"`

	Seeds   []uint16 `short:"s" long:"seed" default:"0" description:"Instance seed (repeatable)"`
	Channel []int    `short:"c" long:"channel" description:"Channel 0..2 (repeatable, default: all)"`
}

// Execute resolves without a process context.
func (c *resolveCmd) Execute(args []string) error {
	return c.Run(context.Background(), args)
}

// Run prints the resolved color of every requested seed and channel.
func (c *resolveCmd) Run(_ context.Context, _ []string) error {
	raw, err := os.ReadFile(c.Args.Palette)
	if err != nil {
		return err
	}

	def, err := palette.DecodeDefinition(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Args.Palette, err)
	}

	channels := c.Channel
	if len(channels) == 0 {
		channels = []int{0, 1, 2}
	}
	for _, ch := range channels {
		if !swatch.ValidChannel(ch) {
			return fmt.Errorf("channel %d out of range", ch)
		}
	}

	for _, seed := range c.Seeds {
		fmt.Printf("seed %d:", seed)
		for _, ch := range channels {
			color, ok := swatch.Resolve(def.Swatches, seed, ch)
			if !ok {
				fmt.Printf(" %d=-", ch)
				continue
			}
			fmt.Printf(" %d=%s", ch, color)
		}
		fmt.Println()
	}

	return nil
}
