package usecase

import (
	"github.com/m-mizutani/chronicle/pkg/domain/model"
)

// BuildPublishPlan decides what the publishing layer has to do with the
// generated changelog. It is a pure computation over settings and pipeline
// outputs and performs no I/O. commentBody must be the Markdown rendition of
// the block; GitHub comments do not understand reStructuredText.
func BuildPublishPlan(settings *model.Settings, header *model.VersionHeader, merged, commentBody string, trigger *model.Trigger) *model.PublishPlan {
	plan := &model.PublishPlan{}
	message := "Add changelog for version " + header.Version

	if settings.CommitChangelog {
		plan.ShouldCommit = true
		plan.CommitPath = settings.ChangelogFilename
		plan.CommitContent = merged
		plan.CommitMessage = message

		if trigger.Event == model.EventPullRequest && trigger.PullRequestBranch != "" {
			plan.Branch = trigger.PullRequestBranch
		} else {
			// no triggering branch to push to: the publisher creates a fresh
			// branch and proposes the changelog as a pull request
			plan.CreatePullRequest = true
			plan.PullRequestTitle = message
			plan.PullRequestBody = commentBody
		}
	}

	if settings.CommentChangelog && trigger.Event == model.EventPullRequest && trigger.PullRequestNumber > 0 {
		plan.ShouldComment = true
		plan.CommentBody = commentBody
	}

	return plan
}
