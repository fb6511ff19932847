package model

// PublishPlan tells the publishing layer what to do with the generated
// changelog. It is computed purely from settings and pipeline outputs; all
// I/O (file write, git operations, API calls) happens outside the core.
type PublishPlan struct {
	ShouldCommit  bool
	CommitPath    string // changelog file path to write and commit
	CommitContent string // complete new file content
	CommitMessage string

	// Branch is the existing branch to commit to. Empty means the publisher
	// must create a fresh branch and open a pull request for it.
	Branch            string
	CreatePullRequest bool
	PullRequestTitle  string
	PullRequestBody   string // Markdown rendition of the block

	ShouldComment bool
	CommentBody   string // always Markdown, regardless of the file dialect
}

// ChangelogUpdate bundles everything a single pipeline run produced
type ChangelogUpdate struct {
	Boundary *ReleaseBoundary
	Header   *VersionHeader
	Groups   []*ChangeGroup
	Block    *RenderedBlock
	Merged   string // complete new changelog file content
	Plan     *PublishPlan
}
