package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/chronicle/pkg/domain/model"
	"github.com/m-mizutani/chronicle/pkg/usecase"
)

func TestRender_Markdown(t *testing.T) {
	header := &model.VersionHeader{Prefix: "Version:", Version: "1.0.0"}

	t.Run("single ungrouped entry", func(t *testing.T) {
		groups := []*model.ChangeGroup{{
			Entries: []*model.ChangeEntry{{
				Number: 57,
				Title:  "Fix typo",
				URL:    "https://github.com/octo/repo/pull/57",
			}},
		}}

		block := usecase.Render(header, groups, model.DialectMarkdown)
		gt.Value(t, block.Text).Equal(
			"## Version: 1.0.0\n" +
				"\n" +
				"* [#57](https://github.com/octo/repo/pull/57): Fix typo\n")
		gt.Value(t, block.Dialect).Equal(model.DialectMarkdown)
	})

	t.Run("groups rendered in configured order", func(t *testing.T) {
		groups := []*model.ChangeGroup{
			{
				Title: "Bug Fixes",
				Entries: []*model.ChangeEntry{{
					Number: 12, Title: "Fix crash", URL: "https://github.com/octo/repo/pull/12",
				}},
			},
			{
				Title: "Other Changes",
				Entries: []*model.ChangeEntry{{
					Number: 34, Title: "Refactor internals", URL: "https://github.com/octo/repo/pull/34",
				}},
			},
		}

		block := usecase.Render(header, groups, model.DialectMarkdown)
		gt.Value(t, block.Text).Equal(
			"## Version: 1.0.0\n" +
				"\n" +
				"### Bug Fixes\n" +
				"\n" +
				"* [#12](https://github.com/octo/repo/pull/12): Fix crash\n" +
				"\n" +
				"### Other Changes\n" +
				"\n" +
				"* [#34](https://github.com/octo/repo/pull/34): Refactor internals\n")
	})

	t.Run("header with date", func(t *testing.T) {
		withDate := &model.VersionHeader{Prefix: "Version:", Version: "1.0.0", Date: "2026-08-27"}
		block := usecase.Render(withDate, nil, model.DialectMarkdown)
		gt.Value(t, block.Text).Equal("## Version: 1.0.0 (2026-08-27)\n")
	})

	t.Run("empty groups are skipped", func(t *testing.T) {
		groups := []*model.ChangeGroup{{Title: "Bug Fixes"}}
		block := usecase.Render(header, groups, model.DialectMarkdown)
		gt.Value(t, block.Text).Equal("## Version: 1.0.0\n")
	})
}

func TestRender_RestructuredText(t *testing.T) {
	header := &model.VersionHeader{Prefix: "Version:", Version: "1.0.0"}
	groups := []*model.ChangeGroup{
		{
			Title: "Bug Fixes",
			Entries: []*model.ChangeEntry{{
				Number: 12, Title: "Fix crash", URL: "https://github.com/octo/repo/pull/12",
			}},
		},
	}

	block := usecase.Render(header, groups, model.DialectRestructuredText)
	gt.Value(t, block.Text).Equal(
		"Version: 1.0.0\n" +
			"==============\n" +
			"\n" +
			"Bug Fixes\n" +
			"---------\n" +
			"\n" +
			"* `#12 <https://github.com/octo/repo/pull/12>`__: Fix crash\n")
	gt.Value(t, block.Dialect).Equal(model.DialectRestructuredText)
}

func TestRender_CommitEntries(t *testing.T) {
	header := &model.VersionHeader{Prefix: "Version:", Version: "1.0.0"}
	groups := []*model.ChangeGroup{{
		Entries: []*model.ChangeEntry{{
			SHA:   "0123456789abcdef",
			Title: "Fix crash",
			URL:   "https://github.com/octo/repo/commit/0123456789abcdef",
		}},
	}}

	block := usecase.Render(header, groups, model.DialectMarkdown)
	gt.Value(t, block.Text).Equal(
		"## Version: 1.0.0\n" +
			"\n" +
			"* [0123456](https://github.com/octo/repo/commit/0123456789abcdef): Fix crash\n")
}

func TestRender_Deterministic(t *testing.T) {
	header := &model.VersionHeader{Prefix: "Version:", Version: "1.0.0"}
	groups := []*model.ChangeGroup{
		{Title: "Bug Fixes", Entries: []*model.ChangeEntry{
			{Number: 1, Title: "Fix a", URL: "https://github.com/octo/repo/pull/1"},
			{Number: 2, Title: "Fix b", URL: "https://github.com/octo/repo/pull/2"},
		}},
	}

	first := usecase.Render(header, groups, model.DialectMarkdown)
	second := usecase.Render(header, groups, model.DialectMarkdown)
	gt.Value(t, first.Text).Equal(second.Text)
}
