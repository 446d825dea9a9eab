package main

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestWatchRejectsInterval(t *testing.T) {
	t.Parallel()

	for _, interval := range []string{"0s", "-1s"} {
		c := &watchCmd{}
		c.Args.Project = "scene.yaml"
		var err error
		if c.Interval, err = time.ParseDuration(interval); err != nil {
			t.Fatalf("parse: %v", err)
		}

		err = c.Run(context.Background(), nil)
		if err == nil || !strings.Contains(err.Error(), "interval must be positive") {
			t.Fatalf("%s: err=%v", interval, err)
		}
	}
}
