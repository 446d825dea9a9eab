package vars

import (
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		commit string
		want   string
	}{
		{name: "long", commit: "0123456789abcdef", want: "commit 01234567,"},
		{name: "short", commit: "abc", want: "commit abc,"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Info{Version: "1.2.3", Commit: tt.commit}.String()
			if !strings.HasPrefix(got, "recolor 1.2.3 ") || !strings.Contains(got, tt.want) {
				t.Fatalf("got=%q want %q", got, tt.want)
			}
		})
	}
}
