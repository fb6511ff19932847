package types

import "github.com/m-mizutani/goerr/v2"

// Base errors of chronicle. Callers distinguish them with errors.Is; every
// wrapping site attaches its own context via goerr.V.
var (
	// ErrInvalidConfig means the user supplied configuration could not be
	// parsed or contains an invalid value. Fatal, raised before any network call.
	ErrInvalidConfig = goerr.New("invalid configuration")

	// ErrFetchFailed means the GitHub API returned an unexpected response.
	// The missing-release case is not an error and never carries this.
	ErrFetchFailed = goerr.New("GitHub API request failed")

	// ErrNoVersionMatch means no release version could be extracted from the
	// triggering pull request title, and none was supplied as an input.
	ErrNoVersionMatch = goerr.New("no release version found")

	// ErrNoMatchingChanges means every fetched change was filtered out.
	// Recoverable: the run ends successfully without publishing anything.
	ErrNoMatchingChanges = goerr.New("no matching changes found")
)
