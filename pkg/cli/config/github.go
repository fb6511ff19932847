package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub API configuration
type GitHub struct {
	Repository string
	Token      string
	APIBaseURL string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Target repository in owner/name form",
			Required:    true,
			Destination: &c.Repository,
			Sources:     cli.EnvVars("GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token, required for private repositories",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN", "INPUT_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.APIBaseURL,
			Sources:     cli.EnvVars("GITHUB_API_URL"),
		},
	}
}
