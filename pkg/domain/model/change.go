package model

import (
	"strconv"
	"time"
)

// ReleaseBoundary is the most recent published release of the repository.
// A nil *ReleaseBoundary means the repository has no releases yet, in which
// case the entire history is considered.
type ReleaseBoundary struct {
	PublishedAt time.Time
	Tag         string
}

// ChangeEntry is one pull request or one commit considered for the changelog.
// Entries are created by the fetcher and never mutated downstream.
type ChangeEntry struct {
	Number   int    // pull request number, 0 for commits
	SHA      string // commit SHA, empty for pull requests
	Title    string // pull request title or first line of the commit message
	URL      string
	Labels   []string
	MergedAt time.Time // merge time for pull requests, commit time for commits
}

// DisplayID is the identifier rendered in front of each changelog line:
// "#123" for pull requests, the 7 character short SHA for commits.
func (e *ChangeEntry) DisplayID() string {
	if e.SHA != "" {
		if len(e.SHA) > 7 {
			return e.SHA[:7]
		}
		return e.SHA
	}
	return "#" + strconv.Itoa(e.Number)
}

// HasAnyLabel reports whether the entry carries at least one of the given labels
func (e *ChangeEntry) HasAnyLabel(labels []string) bool {
	for _, want := range labels {
		for _, label := range e.Labels {
			if label == want {
				return true
			}
		}
	}
	return false
}

// ChangeGroup is a named bucket of change entries. The synthesized unlabeled
// group and the implicit commit-mode group use it as well; the implicit group
// has an empty title.
type ChangeGroup struct {
	Title   string
	Entries []*ChangeEntry
}

// VersionHeader is the heading of the new changelog block
type VersionHeader struct {
	Prefix  string
	Version string
	Date    string // optional, extracted from the triggering title
}

// Text renders the heading line without any markup
func (h *VersionHeader) Text() string {
	text := h.Prefix + " " + h.Version
	if h.Date != "" {
		text += " (" + h.Date + ")"
	}
	return text
}

// RenderedBlock is the formatted changelog block for a single release
type RenderedBlock struct {
	Text    string
	Dialect Dialect
}
