package config

import "github.com/urfave/cli/v3"

// Action holds the inputs and environment of the GitHub Actions run
type Action struct {
	EventName         string
	EventPath         string
	PullRequestBranch string
	BaseBranch        string
	ReleaseVersion    string
	ChangelogFilename string
	ConfigFile        string
	CommitterUsername string
	CommitterEmail    string
	OutputPath        string
}

// Flags returns CLI flags for Actions configuration
func (c *Action) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "event-name",
			Usage:       "Name of the event that triggered the workflow",
			Required:    true,
			Destination: &c.EventName,
			Sources:     cli.EnvVars("GITHUB_EVENT_NAME"),
		},
		&cli.StringFlag{
			Name:        "event-path",
			Usage:       "Path of the event payload file",
			Destination: &c.EventPath,
			Sources:     cli.EnvVars("GITHUB_EVENT_PATH"),
		},
		&cli.StringFlag{
			Name:        "pull-request-branch",
			Usage:       "Head branch of the triggering pull request",
			Destination: &c.PullRequestBranch,
			Sources:     cli.EnvVars("GITHUB_HEAD_REF"),
		},
		&cli.StringFlag{
			Name:        "base-branch",
			Usage:       "Ref the workflow ran against",
			Destination: &c.BaseBranch,
			Sources:     cli.EnvVars("GITHUB_REF"),
		},
		&cli.StringFlag{
			Name:        "release-version",
			Usage:       "Release version when it cannot be extracted from a pull request title",
			Destination: &c.ReleaseVersion,
			Sources:     cli.EnvVars("INPUT_RELEASE_VERSION"),
		},
		&cli.StringFlag{
			Name:        "changelog-filename",
			Usage:       "Changelog file to update (.md or .rst)",
			Destination: &c.ChangelogFilename,
			Sources:     cli.EnvVars("INPUT_CHANGELOG_FILENAME"),
		},
		&cli.StringFlag{
			Name:        "config-file",
			Usage:       "Path of the user configuration file (JSON, YAML or TOML)",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("INPUT_CONFIG_FILE"),
		},
		&cli.StringFlag{
			Name:        "committer-username",
			Usage:       "Git committer username",
			Value:       "github-actions[bot]",
			Destination: &c.CommitterUsername,
			Sources:     cli.EnvVars("INPUT_COMMITTER_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "committer-email",
			Usage:       "Git committer email address",
			Value:       "github-actions[bot]@users.noreply.github.com",
			Destination: &c.CommitterEmail,
			Sources:     cli.EnvVars("INPUT_COMMITTER_EMAIL"),
		},
		&cli.StringFlag{
			Name:        "output-path",
			Usage:       "File to append action outputs to",
			Destination: &c.OutputPath,
			Sources:     cli.EnvVars("GITHUB_OUTPUT"),
		},
	}
}

// CommitAuthor returns the author string for git commits
func (c *Action) CommitAuthor() string {
	return c.CommitterUsername + " <" + c.CommitterEmail + ">"
}
