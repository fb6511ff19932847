package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/chronicle/pkg/domain/interfaces"
	"github.com/m-mizutani/chronicle/pkg/domain/model"
)

type changelogUseCase struct {
	github   interfaces.GitHubClient
	repo     model.Repository
	settings *model.Settings
}

// NewChangelog creates a new instance of ChangelogUseCase
func NewChangelog(client interfaces.GitHubClient, repo model.Repository, settings *model.Settings) interfaces.ChangelogUseCase {
	return &changelogUseCase{
		github:   client,
		repo:     repo,
		settings: settings,
	}
}

// Generate runs the pipeline end to end: fetch the changes since the last
// release, classify them, render the block, merge it into the existing file
// content and compute the publish plan. Only the fetch stage touches the
// network; everything after it is a pure function of the stage before.
func (uc *changelogUseCase) Generate(ctx context.Context, trigger *model.Trigger, existing string) (*model.ChangelogUpdate, error) {
	logger := ctxlog.From(ctx)

	boundary, entries, err := uc.fetchChanges(ctx, trigger)
	if err != nil {
		return nil, err
	}

	logger.Info("Fetched changes",
		"repository", uc.repo.String(),
		"changelog_type", uc.settings.ChangelogType,
		"count", len(entries),
	)

	header, groups, err := Classify(entries, uc.settings, trigger)
	if err != nil {
		return nil, err
	}

	block := Render(header, groups, uc.settings.Dialect())
	merged := Merge(existing, block)

	commentBody := block.Text
	if uc.settings.Dialect() != model.DialectMarkdown {
		commentBody = Render(header, groups, model.DialectMarkdown).Text
	}

	plan := BuildPublishPlan(uc.settings, header, merged, commentBody, trigger)

	logger.Info("Generated changelog block",
		"version", header.Version,
		"groups", len(groups),
		"dialect", block.Dialect,
	)

	return &model.ChangelogUpdate{
		Boundary: boundary,
		Header:   header,
		Groups:   groups,
		Block:    block,
		Merged:   merged,
		Plan:     plan,
	}, nil
}

// fetchChanges looks up the release boundary and lists the changes after it,
// in ascending chronological order.
func (uc *changelogUseCase) fetchChanges(ctx context.Context, trigger *model.Trigger) (*model.ReleaseBoundary, []*model.ChangeEntry, error) {
	logger := ctxlog.From(ctx)

	boundary, err := uc.github.LatestRelease(ctx, uc.repo)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to look up the latest release",
			goerr.V("repository", uc.repo.String()))
	}

	var since *time.Time
	if boundary != nil {
		t := boundary.PublishedAt
		since = &t
		logger.Info("Found previous release", "tag", boundary.Tag, "published_at", boundary.PublishedAt)
	} else {
		logger.Info("No previous release found, using the entire history",
			"repository", uc.repo.String())
	}

	switch uc.settings.ChangelogType {
	case model.ChangelogTypeCommitMessage:
		entries, err := uc.github.Commits(ctx, uc.repo, uc.targetBranch(trigger), since)
		if err != nil {
			return nil, nil, err
		}
		return boundary, entries, nil

	default:
		entries, err := uc.github.MergedPullRequests(ctx, uc.repo, since)
		if err != nil {
			return nil, nil, err
		}
		return boundary, entries, nil
	}
}

func (uc *changelogUseCase) targetBranch(trigger *model.Trigger) string {
	if trigger.PullRequestBranch != "" {
		return trigger.PullRequestBranch
	}
	return strings.TrimPrefix(trigger.BaseBranch, "refs/heads/")
}
