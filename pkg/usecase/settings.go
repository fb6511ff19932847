package usecase

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/m-mizutani/chronicle/pkg/domain/model"
	"github.com/m-mizutani/chronicle/pkg/domain/types"
)

// ResolveSettings merges a user supplied configuration into the built-in
// defaults and returns validated settings. raw is the content of the
// configuration file, nil or empty when the user supplied none; path is the
// configuration file path and only its extension is consulted, to pick the
// TOML parser. JSON is tried first, then YAML.
//
// Unknown keys are ignored for forward compatibility. A known key holding a
// value of the wrong type is an error, not a silent fallback.
func ResolveSettings(raw []byte, path string) (*model.Settings, error) {
	settings := model.DefaultSettings()

	if len(bytes.TrimSpace(raw)) == 0 {
		return settings, nil
	}

	cfg, err := parseRawConfig(raw, path)
	if err != nil {
		return nil, err
	}

	for key, value := range cfg {
		if err := applyField(settings, key, value); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

func parseRawConfig(raw []byte, path string) (map[string]any, error) {
	var cfg map[string]any

	if strings.HasSuffix(path, ".toml") {
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return nil, goerr.Wrap(types.ErrInvalidConfig, "failed to parse configuration as TOML",
				goerr.V("path", path), goerr.V("parse_error", err.Error()))
		}
		return cfg, nil
	}

	jsonErr := json.Unmarshal(raw, &cfg)
	if jsonErr == nil {
		return cfg, nil
	}
	if yamlErr := yaml.Unmarshal(raw, &cfg); yamlErr != nil {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "failed to parse configuration as JSON or YAML",
			goerr.V("json_error", jsonErr.Error()), goerr.V("yaml_error", yamlErr.Error()))
	}
	return cfg, nil
}

func applyField(s *model.Settings, key string, value any) error {
	switch key {
	case "changelog_filename":
		name, err := asString(key, value)
		if err != nil {
			return err
		}
		if !model.SupportedChangelogFilename(name) {
			return goerr.Wrap(types.ErrInvalidConfig, "unsupported changelog file extension",
				goerr.V("field", key), goerr.V("changelog_filename", name))
		}
		s.ChangelogFilename = name

	case "changelog_type":
		v, err := asString(key, value)
		if err != nil {
			return err
		}
		switch model.ChangelogType(v) {
		case model.ChangelogTypePullRequest, model.ChangelogTypeCommitMessage:
			s.ChangelogType = model.ChangelogType(v)
		default:
			return invalidField(key, value)
		}

	case "header_prefix":
		v, err := asString(key, value)
		if err != nil {
			return err
		}
		s.HeaderPrefix = v

	case "commit_changelog":
		v, err := asBool(key, value)
		if err != nil {
			return err
		}
		s.CommitChangelog = v

	case "comment_changelog":
		v, err := asBool(key, value)
		if err != nil {
			return err
		}
		s.CommentChangelog = v

	case "pull_request_title_regex":
		re, err := asRegexp(key, value)
		if err != nil {
			return err
		}
		s.PullRequestTitleRegex = re

	case "version_regex":
		re, err := asRegexp(key, value)
		if err != nil {
			return err
		}
		s.VersionRegex = re

	case "group_config":
		groups, err := asGroupConfig(key, value)
		if err != nil {
			return err
		}
		s.GroupConfig = groups

	case "include_unlabeled_changes":
		v, err := asBool(key, value)
		if err != nil {
			return err
		}
		s.IncludeUnlabeledChanges = v

	case "unlabeled_group_title":
		v, err := asString(key, value)
		if err != nil {
			return err
		}
		s.UnlabeledGroupTitle = v

	case "exclude_labels":
		labels, err := asStringList(key, value)
		if err != nil {
			return err
		}
		s.ExcludeLabels = labels
	}

	// Unknown keys are silently ignored
	return nil
}

func invalidField(key string, value any) error {
	return goerr.Wrap(types.ErrInvalidConfig, "invalid configuration field",
		goerr.V("field", key), goerr.V("value", value))
}

func asString(key string, value any) (string, error) {
	v, ok := value.(string)
	if !ok || v == "" {
		return "", invalidField(key, value)
	}
	return v, nil
}

func asBool(key string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	// the original configuration format also accepted 0 and 1
	case int:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case int64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case float64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	}
	return false, invalidField(key, value)
}

func asRegexp(key string, value any) (*regexp.Regexp, error) {
	v, err := asString(key, value)
	if err != nil {
		return nil, err
	}
	re, compileErr := regexp.Compile(v)
	if compileErr != nil {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "invalid regular expression",
			goerr.V("field", key), goerr.V("pattern", v), goerr.V("compile_error", compileErr.Error()))
	}
	return re, nil
}

func asStringList(key string, value any) ([]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, invalidField(key, value)
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		v, ok := item.(string)
		if !ok || v == "" {
			return nil, invalidField(key, item)
		}
		result = append(result, v)
	}
	return result, nil
}

func asGroupConfig(key string, value any) ([]model.GroupConfig, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, invalidField(key, value)
	}

	groups := make([]model.GroupConfig, 0, len(items))
	seenTitles := map[string]struct{}{}

	for _, item := range items {
		entry, ok := toStringKeyMap(item)
		if !ok {
			return nil, invalidField(key, item)
		}

		title, err := asString(key, entry["title"])
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidConfig, "group_config item must contain a string title",
				goerr.V("item", item))
		}
		labels, err := asStringList(key, entry["labels"])
		if err != nil || len(labels) == 0 {
			return nil, goerr.Wrap(types.ErrInvalidConfig, "group_config item must contain an array of labels",
				goerr.V("title", title))
		}

		// Group titles must be unique within a run
		if _, seen := seenTitles[title]; seen {
			return nil, goerr.Wrap(types.ErrInvalidConfig, "duplicated group_config title",
				goerr.V("title", title))
		}
		seenTitles[title] = struct{}{}

		groups = append(groups, model.GroupConfig{Title: title, Labels: labels})
	}

	return groups, nil
}

// toStringKeyMap normalizes the map shapes the JSON, YAML and TOML parsers produce
func toStringKeyMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		result := make(map[string]any, len(v))
		for key, item := range v {
			name, ok := key.(string)
			if !ok {
				return nil, false
			}
			result[name] = item
		}
		return result, true
	default:
		return nil, false
	}
}
