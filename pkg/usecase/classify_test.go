package usecase_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/chronicle/pkg/domain/model"
	"github.com/m-mizutani/chronicle/pkg/domain/types"
	"github.com/m-mizutani/chronicle/pkg/usecase"
)

func releaseTrigger(title string) *model.Trigger {
	return &model.Trigger{
		Event:            model.EventPullRequest,
		PullRequestTitle: title,
	}
}

func entry(number int, title string, labels ...string) *model.ChangeEntry {
	return &model.ChangeEntry{
		Number: number,
		Title:  title,
		URL:    "https://github.com/octo/repo/pull/1",
		Labels: labels,
	}
}

func TestClassify_VersionExtraction(t *testing.T) {
	settings := model.DefaultSettings()
	settings.PullRequestTitleRegex = regexp.MustCompile(`.`)
	entries := []*model.ChangeEntry{entry(1, "Fix typo")}

	t.Run("plain semver", func(t *testing.T) {
		header, _, err := usecase.Classify(entries, settings, releaseTrigger("Release 2.0.0"))
		gt.NoError(t, err)
		gt.Value(t, header.Version).Equal("2.0.0")
		gt.Value(t, header.Date).Equal("")
		gt.Value(t, header.Text()).Equal("Version: 2.0.0")
	})

	t.Run("leading v", func(t *testing.T) {
		header, _, err := usecase.Classify(entries, settings, releaseTrigger("release v1.2.3-rc.1"))
		gt.NoError(t, err)
		gt.Value(t, header.Version).Equal("v1.2.3-rc.1")
	})

	t.Run("trailing date", func(t *testing.T) {
		header, _, err := usecase.Classify(entries, settings, releaseTrigger("Release 1.1.0 (2026-08-27)"))
		gt.NoError(t, err)
		gt.Value(t, header.Version).Equal("1.1.0")
		gt.Value(t, header.Date).Equal("2026-08-27")
		gt.Value(t, header.Text()).Equal("Version: 1.1.0 (2026-08-27)")
	})

	t.Run("no version in title", func(t *testing.T) {
		_, _, err := usecase.Classify(entries, settings, releaseTrigger("Release next"))
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, types.ErrNoVersionMatch)).Equal(true)
	})

	t.Run("release version input wins", func(t *testing.T) {
		trigger := releaseTrigger("Release 2.0.0")
		trigger.ReleaseVersion = "3.0.0"
		header, _, err := usecase.Classify(entries, settings, trigger)
		gt.NoError(t, err)
		gt.Value(t, header.Version).Equal("3.0.0")
	})
}

func TestClassify_TriggerTitleMismatch(t *testing.T) {
	settings := model.DefaultSettings()
	entries := []*model.ChangeEntry{entry(1, "Release 1.0.0")}

	_, _, err := usecase.Classify(entries, settings, releaseTrigger("Update docs"))
	gt.Error(t, err)
	gt.Value(t, errors.Is(err, types.ErrNoMatchingChanges)).Equal(true)
}

func TestClassify_EntryFiltering(t *testing.T) {
	settings := model.DefaultSettings()
	settings.PullRequestTitleRegex = regexp.MustCompile(`^(feat|fix)`)
	settings.ExcludeLabels = []string{"skip-changelog"}

	entries := []*model.ChangeEntry{
		entry(1, "fix: typo"),
		entry(2, "chore: bump deps"),
		entry(3, "feat: dark mode", "skip-changelog"),
		entry(4, "feat: search"),
	}

	trigger := releaseTrigger("fix 1.0.0")
	_, groups, err := usecase.Classify(entries, settings, trigger)
	gt.NoError(t, err)

	gt.Value(t, len(groups)).Equal(1)
	gt.Value(t, len(groups[0].Entries)).Equal(2)
	// fetch order is preserved
	gt.Value(t, groups[0].Entries[0].Number).Equal(1)
	gt.Value(t, groups[0].Entries[1].Number).Equal(4)
}

func TestClassify_ExclusionBeatsUnlabeledInclusion(t *testing.T) {
	settings := model.DefaultSettings()
	settings.PullRequestTitleRegex = regexp.MustCompile(`.`)
	settings.ExcludeLabels = []string{"wontfix"}
	settings.GroupConfig = []model.GroupConfig{{Title: "Bug Fixes", Labels: []string{"bug"}}}
	settings.IncludeUnlabeledChanges = true

	entries := []*model.ChangeEntry{
		entry(1, "Fix crash", "bug"),
		// excluded entries never reach the unlabeled group
		entry(2, "Old experiment", "wontfix"),
	}

	_, groups, err := usecase.Classify(entries, settings, releaseTrigger("Release 1.0.0"))
	gt.NoError(t, err)

	gt.Value(t, len(groups)).Equal(1)
	gt.Value(t, groups[0].Title).Equal("Bug Fixes")
	gt.Value(t, len(groups[0].Entries)).Equal(1)
}

func TestClassify_Grouping(t *testing.T) {
	settings := model.DefaultSettings()
	settings.PullRequestTitleRegex = regexp.MustCompile(`.`)
	settings.GroupConfig = []model.GroupConfig{
		{Title: "Bug Fixes", Labels: []string{"bug"}},
		{Title: "Documentation", Labels: []string{"docs"}},
	}

	entries := []*model.ChangeEntry{
		entry(1, "Fix crash", "bug"),
		entry(2, "Document the fix", "bug", "docs"),
		entry(3, "Refactor internals"),
	}

	t.Run("entry spanning groups is listed in each", func(t *testing.T) {
		_, groups, err := usecase.Classify(entries, settings, releaseTrigger("Release 1.0.0"))
		gt.NoError(t, err)

		gt.Value(t, len(groups)).Equal(3)
		gt.Value(t, groups[0].Title).Equal("Bug Fixes")
		gt.Value(t, len(groups[0].Entries)).Equal(2)
		gt.Value(t, groups[1].Title).Equal("Documentation")
		gt.Value(t, len(groups[1].Entries)).Equal(1)
		gt.Value(t, groups[1].Entries[0].Number).Equal(2)
		gt.Value(t, groups[2].Title).Equal("Other Changes")
		gt.Value(t, groups[2].Entries[0].Number).Equal(3)
	})

	t.Run("unlabeled entries dropped when disabled", func(t *testing.T) {
		disabled := *settings
		disabled.IncludeUnlabeledChanges = false

		_, groups, err := usecase.Classify(entries, &disabled, releaseTrigger("Release 1.0.0"))
		gt.NoError(t, err)
		gt.Value(t, len(groups)).Equal(2)
	})

	t.Run("nothing matches any group", func(t *testing.T) {
		disabled := *settings
		disabled.IncludeUnlabeledChanges = false

		_, _, err := usecase.Classify([]*model.ChangeEntry{entry(3, "Refactor internals")}, &disabled, releaseTrigger("Release 1.0.0"))
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, types.ErrNoMatchingChanges)).Equal(true)
	})
}

func TestClassify_CommitMode(t *testing.T) {
	settings := model.DefaultSettings()
	settings.ChangelogType = model.ChangelogTypeCommitMessage
	settings.GroupConfig = []model.GroupConfig{{Title: "Bug Fixes", Labels: []string{"bug"}}}

	entries := []*model.ChangeEntry{
		{SHA: "0123456789abcdef", Title: "Fix crash"},
		{SHA: "fedcba9876543210", Title: "Refactor internals"},
	}

	t.Run("requires a release version", func(t *testing.T) {
		trigger := &model.Trigger{Event: model.EventWorkflowDispatch}
		_, _, err := usecase.Classify(entries, settings, trigger)
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, types.ErrNoVersionMatch)).Equal(true)
	})

	t.Run("single untitled group, no title filter", func(t *testing.T) {
		trigger := &model.Trigger{Event: model.EventWorkflowDispatch, ReleaseVersion: "1.0.0"}
		header, groups, err := usecase.Classify(entries, settings, trigger)
		gt.NoError(t, err)

		gt.Value(t, header.Version).Equal("1.0.0")
		gt.Value(t, len(groups)).Equal(1)
		gt.Value(t, groups[0].Title).Equal("")
		gt.Value(t, len(groups[0].Entries)).Equal(2)
	})
}

func TestClassify_NoEntries(t *testing.T) {
	settings := model.DefaultSettings()

	_, _, err := usecase.Classify(nil, settings, releaseTrigger("Release 1.0.0"))
	gt.Error(t, err)
	gt.Value(t, errors.Is(err, types.ErrNoMatchingChanges)).Equal(true)
}
