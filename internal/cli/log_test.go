package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func TestVerboseLogsLayers(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantDebug bool
	}{
		{"quiet", []string{"render", "--width", "60", "--height", "30"}, false},
		{"verbose", []string{"-v", "render", "--width", "60", "--height", "30"}, true},
		{"verbose root", []string{"--verbose"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			if _, err := executeLogged(t, &logs, tt.args...); err != nil {
				t.Fatalf("skyline error: %v", err)
			}

			// Info lines from the runner prove the command logger was used.
			if !strings.Contains(logs.String(), "rendered skyline") {
				t.Errorf("missing runner log line:\n%s", logs.String())
			}
			if got := strings.Contains(logs.String(), "drew layer"); got != tt.wantDebug {
				t.Errorf("layer debug lines present = %v, want %v:\n%s", got, tt.wantDebug, logs.String())
			}
		})
	}
}

func TestPersistentPreRunAttachesLogger(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	var got *log.Logger
	root.AddCommand(&cobra.Command{
		Use: "whoami",
		RunE: func(cmd *cobra.Command, args []string) error {
			got = loggerFromContext(cmd.Context())
			return nil
		},
	})
	root.SetArgs([]string{"whoami", "-v"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got != c.Logger {
		t.Error("subcommand did not receive the CLI logger")
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v after -v, want debug", c.Logger.GetLevel())
	}
}

func TestLoggerFromContextFallback(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield log.Default()")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Rendered skyline")

	line := regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} INFO Rendered skyline \(\d+(\.\d+)?[mµn]?s\)\n$`)
	if !line.MatchString(buf.String()) {
		t.Errorf("progress line = %q", buf.String())
	}
}
