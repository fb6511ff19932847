package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// writeActionOutput appends a multi-line output value to the GITHUB_OUTPUT
// file using a heredoc with a random delimiter, so the value cannot break
// out of the output syntax. A missing path means the run is outside GitHub
// Actions and the output is simply skipped.
func writeActionOutput(path, name, value string) error {
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open the output file",
			goerr.V("path", path))
	}
	defer f.Close()

	delimiter := "ghadelimiter_" + uuid.NewString()
	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter); err != nil {
		return goerr.Wrap(err, "failed to write the output",
			goerr.V("path", path), goerr.V("name", name))
	}
	return nil
}
