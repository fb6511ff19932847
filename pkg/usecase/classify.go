package usecase

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/chronicle/pkg/domain/model"
	"github.com/m-mizutani/chronicle/pkg/domain/types"
)

// Classify filters the fetched entries and arranges the survivors into
// ordered groups, together with the version header of the new block.
//
// In pull_request mode entries whose title does not match the configured
// title pattern are dropped entirely, and entries carrying an excluded label
// are removed before grouping. An entry whose labels span several configured
// groups is listed in each of them. Entries matching no configured group end
// up in the synthesized unlabeled group, or are dropped when that group is
// disabled. In commit_message mode (or without group configuration) all
// surviving entries form a single untitled group.
func Classify(entries []*model.ChangeEntry, settings *model.Settings, trigger *model.Trigger) (*model.VersionHeader, []*model.ChangeGroup, error) {
	if settings.ChangelogType == model.ChangelogTypePullRequest && trigger.Event == model.EventPullRequest {
		if !settings.PullRequestTitleRegex.MatchString(trigger.PullRequestTitle) {
			return nil, nil, goerr.Wrap(types.ErrNoMatchingChanges, "triggering pull request title did not match",
				goerr.V("title", trigger.PullRequestTitle),
				goerr.V("pattern", settings.PullRequestTitleRegex.String()))
		}
	}

	header, err := extractVersionHeader(settings, trigger)
	if err != nil {
		return nil, nil, err
	}

	survivors := filterEntries(entries, settings)
	if len(survivors) == 0 {
		return nil, nil, goerr.Wrap(types.ErrNoMatchingChanges, "all fetched changes were filtered out",
			goerr.V("fetched", len(entries)))
	}

	groups := buildGroups(survivors, settings)
	if len(groups) == 0 {
		return nil, nil, goerr.Wrap(types.ErrNoMatchingChanges, "no change matched any configured group",
			goerr.V("surviving", len(survivors)))
	}

	return header, groups, nil
}

// extractVersionHeader resolves the version of the new block: an externally
// supplied release version wins, otherwise the version pattern is applied to
// the triggering pull request title.
func extractVersionHeader(settings *model.Settings, trigger *model.Trigger) (*model.VersionHeader, error) {
	if trigger.ReleaseVersion != "" {
		return &model.VersionHeader{Prefix: settings.HeaderPrefix, Version: trigger.ReleaseVersion}, nil
	}

	if settings.ChangelogType == model.ChangelogTypeCommitMessage {
		return nil, goerr.Wrap(types.ErrNoVersionMatch,
			"commit_message mode requires the release_version input")
	}

	match := settings.VersionRegex.FindStringSubmatch(trigger.PullRequestTitle)
	if match == nil {
		return nil, goerr.Wrap(types.ErrNoVersionMatch, "no version found in the triggering pull request title",
			goerr.V("title", trigger.PullRequestTitle),
			goerr.V("pattern", settings.VersionRegex.String()))
	}

	header := &model.VersionHeader{Prefix: settings.HeaderPrefix, Version: match[0]}
	if idx := settings.VersionRegex.SubexpIndex("date"); idx > 0 && idx < len(match) && match[idx] != "" {
		header.Date = match[idx]
		// the date suffix belongs to the header, not to the version string
		version := header.Version
		version = version[:len(version)-len(match[idx])-2] // strip "(date)"
		for len(version) > 0 && version[len(version)-1] == ' ' {
			version = version[:len(version)-1]
		}
		header.Version = version
	}

	return header, nil
}

func filterEntries(entries []*model.ChangeEntry, settings *model.Settings) []*model.ChangeEntry {
	if settings.ChangelogType != model.ChangelogTypePullRequest {
		return entries
	}

	survivors := make([]*model.ChangeEntry, 0, len(entries))
	for _, entry := range entries {
		if !settings.PullRequestTitleRegex.MatchString(entry.Title) {
			continue
		}
		// exclusion happens before grouping
		if settings.IsExcluded(entry.Labels) {
			continue
		}
		survivors = append(survivors, entry)
	}
	return survivors
}

func buildGroups(entries []*model.ChangeEntry, settings *model.Settings) []*model.ChangeGroup {
	if settings.ChangelogType != model.ChangelogTypePullRequest || len(settings.GroupConfig) == 0 {
		return []*model.ChangeGroup{{Entries: entries}}
	}

	var groups []*model.ChangeGroup
	grouped := make(map[*model.ChangeEntry]bool, len(entries))

	for _, gc := range settings.GroupConfig {
		var members []*model.ChangeEntry
		for _, entry := range entries {
			if entry.HasAnyLabel(gc.Labels) {
				members = append(members, entry)
				grouped[entry] = true
			}
		}
		if len(members) > 0 {
			groups = append(groups, &model.ChangeGroup{Title: gc.Title, Entries: members})
		}
	}

	var unlabeled []*model.ChangeEntry
	for _, entry := range entries {
		if !grouped[entry] {
			unlabeled = append(unlabeled, entry)
		}
	}
	if len(unlabeled) > 0 && settings.IncludeUnlabeledChanges {
		groups = append(groups, &model.ChangeGroup{Title: settings.UnlabeledGroupTitle, Entries: unlabeled})
	}

	return groups
}
