package model

// EventName is the GitHub Actions event that started the run
type EventName string

const (
	EventPullRequest      EventName = "pull_request"
	EventWorkflowDispatch EventName = "workflow_dispatch"
)

// IsSupported reports whether chronicle can run for the event
func (e EventName) IsSupported() bool {
	return e == EventPullRequest || e == EventWorkflowDispatch
}

// Trigger is the context that started the run: the pull request being merged
// or a manually dispatched workflow. It is passed explicitly through the
// pipeline instead of being read from ambient state, so the same pipeline can
// run against arbitrary inputs in tests.
type Trigger struct {
	Event             EventName
	PullRequestTitle  string
	PullRequestNumber int
	PullRequestBranch string // head branch of the triggering pull request
	BaseBranch        string // ref the workflow ran against
	ReleaseVersion    string // externally supplied version, overrides extraction
}
