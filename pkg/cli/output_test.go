package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestWriteActionOutput(t *testing.T) {
	t.Run("appends a heredoc block", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "output.txt")
		gt.NoError(t, os.WriteFile(path, []byte("existing=1\n"), 0644))

		value := "## Version: 1.0.0\n\n* change"
		gt.NoError(t, writeActionOutput(path, "changelog", value))

		raw, err := os.ReadFile(path)
		gt.NoError(t, err)
		content := string(raw)

		gt.String(t, content).Contains("existing=1\n")
		gt.String(t, content).Contains("changelog<<ghadelimiter_")
		gt.String(t, content).Contains(value + "\n")

		// the delimiter closes the block
		lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
		first := strings.TrimPrefix(lines[1], "changelog<<")
		gt.Value(t, lines[len(lines)-1]).Equal(first)
	})

	t.Run("no output path is a no-op", func(t *testing.T) {
		gt.NoError(t, writeActionOutput("", "changelog", "value"))
	})
}
