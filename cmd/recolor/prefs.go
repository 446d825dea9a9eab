package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/invopop/yaml"

	"github.com/yenyang/Recolor-sub000/internal/prefs"
)

type prefsCmd struct {
	Args struct {
		Input  string `positional-arg-name:"IN" required:"true" description:"Preference blob, or yaml/json document"`
		Output string `positional-arg-name:"OUT" description:"Output file (default: stdout)"`
	} `positional-args:"true"`

	To string `long:"to" choice:"yaml" choice:"json" choice:"blob" default:"yaml" description:"Output format"`
}

// Execute converts without a process context.
func (c *prefsCmd) Execute(args []string) error {
	return c.Run(context.Background(), args)
}

// Run converts between the binary blob and its document form. Blobs of
// every version are read; blobs are always written in the current version.
func (c *prefsCmd) Run(_ context.Context, _ []string) error {
	raw, err := os.ReadFile(c.Args.Input)
	if err != nil {
		return err
	}

	var p prefs.Preferences
	if format := formatOf(c.Args.Input, ""); format != "" {
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%s: %w", c.Args.Input, err)
		}
	} else {
		var version uint16
		p, version, err = prefs.Decode(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Args.Input, err)
		}
		fmt.Fprintf(os.Stderr, "read version %d, %d prefabs\n", version, len(p))
	}

	out, err := encodePrefs(p, strings.ToLower(c.To))
	if err != nil {
		return err
	}

	if c.Args.Output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}

	return os.WriteFile(c.Args.Output, out, 0o600)
}

// encodePrefs encodes p as yaml, json or the binary blob.
func encodePrefs(p prefs.Preferences, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(p)
	case "json":
		return json.MarshalIndent(p, "", "  ")
	case "blob":
		return prefs.Encode(p)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
