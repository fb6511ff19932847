package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/chronicle/pkg/domain/types"
)

// ChangelogType selects the change source of a run
type ChangelogType string

const (
	ChangelogTypePullRequest   ChangelogType = "pull_request"
	ChangelogTypeCommitMessage ChangelogType = "commit_message"
)

// Dialect is the output markup format, selected by the changelog file extension
type Dialect string

const (
	DialectMarkdown         Dialect = "markdown"
	DialectRestructuredText Dialect = "restructuredtext"
)

const (
	DefaultChangelogFilename     = "CHANGELOG.md"
	DefaultHeaderPrefix          = "Version:"
	DefaultPullRequestTitleRegex = `^(?i:release)`
	DefaultUnlabeledGroupTitle   = "Other Changes"

	// DefaultVersionRegex is a slightly less restrictive modification of the
	// regular expression suggested by https://semver.org, with an optional
	// leading "v" and an optional trailing date in parentheses.
	DefaultVersionRegex = `v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.?(0|[1-9]\d*)?` +
		`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
		`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?` +
		`(?:\s+\((?P<date>[^)]+)\))?`
)

// GroupConfig is one named bucket of the changelog, matched by labels
type GroupConfig struct {
	Title  string
	Labels []string
}

// Settings is the validated, immutable configuration of a single run.
// It is built once by usecase.ResolveSettings and never mutated afterwards.
type Settings struct {
	ChangelogFilename       string
	ChangelogType           ChangelogType
	HeaderPrefix            string
	CommitChangelog         bool
	CommentChangelog        bool
	PullRequestTitleRegex   *regexp.Regexp
	VersionRegex            *regexp.Regexp
	GroupConfig             []GroupConfig
	IncludeUnlabeledChanges bool
	UnlabeledGroupTitle     string
	ExcludeLabels           []string
}

// DefaultSettings returns the documented default configuration
func DefaultSettings() *Settings {
	return &Settings{
		ChangelogFilename:       DefaultChangelogFilename,
		ChangelogType:           ChangelogTypePullRequest,
		HeaderPrefix:            DefaultHeaderPrefix,
		CommitChangelog:         true,
		CommentChangelog:        false,
		PullRequestTitleRegex:   regexp.MustCompile(DefaultPullRequestTitleRegex),
		VersionRegex:            regexp.MustCompile(DefaultVersionRegex),
		GroupConfig:             nil,
		IncludeUnlabeledChanges: true,
		UnlabeledGroupTitle:     DefaultUnlabeledGroupTitle,
		ExcludeLabels:           nil,
	}
}

// SupportedChangelogFilename reports whether the filename maps to a known dialect
func SupportedChangelogFilename(name string) bool {
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".rst")
}

// Dialect returns the markup dialect selected by the changelog file extension
func (s *Settings) Dialect() Dialect {
	if strings.HasSuffix(s.ChangelogFilename, ".rst") {
		return DialectRestructuredText
	}
	return DialectMarkdown
}

// WithChangelogFilename returns a copy of the settings with the filename
// replaced, validating the extension. The receiver is left untouched.
func (s *Settings) WithChangelogFilename(name string) (*Settings, error) {
	if !SupportedChangelogFilename(name) {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "unsupported changelog file extension",
			goerr.V("changelog_filename", name))
	}
	copied := *s
	copied.ChangelogFilename = name
	return &copied, nil
}

// IsExcluded reports whether any of the given labels is configured for exclusion
func (s *Settings) IsExcluded(labels []string) bool {
	for _, excluded := range s.ExcludeLabels {
		for _, label := range labels {
			if label == excluded {
				return true
			}
		}
	}
	return false
}
