package action

import (
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/chronicle/pkg/domain/model"
)

// Environment is what the GitHub Actions runtime tells us about the run
type Environment struct {
	EventName         string
	EventPath         string
	PullRequestBranch string
	BaseBranch        string
	ReleaseVersion    string
}

// payload holds the parts of the event payload chronicle needs
type payload struct {
	Number      int `json:"number"`
	PullRequest struct {
		Title string `json:"title"`
	} `json:"pull_request"`
}

// LoadTrigger builds the triggering context of the run. For pull_request
// events the title and number of the triggering pull request are read from
// the event payload file the runtime provides.
func LoadTrigger(env Environment) (*model.Trigger, error) {
	trigger := &model.Trigger{
		Event:             model.EventName(env.EventName),
		PullRequestBranch: env.PullRequestBranch,
		BaseBranch:        env.BaseBranch,
		ReleaseVersion:    env.ReleaseVersion,
	}

	if trigger.Event != model.EventPullRequest {
		return trigger, nil
	}

	raw, err := os.ReadFile(env.EventPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read the event payload",
			goerr.V("path", env.EventPath))
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, goerr.Wrap(err, "failed to parse the event payload",
			goerr.V("path", env.EventPath))
	}

	trigger.PullRequestTitle = p.PullRequest.Title
	trigger.PullRequestNumber = p.Number

	return trigger, nil
}
