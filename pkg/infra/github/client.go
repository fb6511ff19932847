package github

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/chronicle/pkg/domain/interfaces"
	"github.com/m-mizutani/chronicle/pkg/domain/model"
	"github.com/m-mizutani/chronicle/pkg/domain/types"
)

const perPage = 100

type client struct {
	githubClient *github.Client
}

// Option customizes the GitHub client
type Option func(*github.Client) error

// WithBaseURL points the client at a different API endpoint. Used for
// GitHub Enterprise and for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *github.Client) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", baseURL))
		}
		c.BaseURL = parsed
		return nil
	}
}

// NewClient creates a new GitHub client. token may be empty for public
// repositories; private repositories require it.
func NewClient(token string, options ...Option) (interfaces.GitHubClient, error) {
	githubClient := github.NewClient(nil)
	if token != "" {
		githubClient = githubClient.WithAuthToken(token)
	}

	for _, opt := range options {
		if err := opt(githubClient); err != nil {
			return nil, err
		}
	}

	return &client{githubClient: githubClient}, nil
}

// LatestRelease looks up the most recent published release of the repository.
// The API answers 404 when the repository has no releases yet; that case
// yields (nil, nil) so the caller falls back to the entire history.
func (c *client) LatestRelease(ctx context.Context, repo model.Repository) (*model.ReleaseBoundary, error) {
	release, resp, err := c.githubClient.Repositories.GetLatestRelease(ctx, repo.Owner, repo.Name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, c.apiError(err, resp, "failed to get the latest release", repo)
	}

	return &model.ReleaseBoundary{
		PublishedAt: release.GetPublishedAt().Time,
		Tag:         release.GetTagName(),
	}, nil
}

// MergedPullRequests lists merged pull requests of the repository, ascending
// by merge time, restricted to pull requests merged strictly after since when
// it is non-nil. Pages are requested sequentially until exhausted.
func (c *client) MergedPullRequests(ctx context.Context, repo model.Repository, since *time.Time) ([]*model.ChangeEntry, error) {
	opts := &github.PullRequestListOptions{
		State:       "closed",
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var entries []*model.ChangeEntry
	for {
		pulls, resp, err := c.githubClient.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, c.apiError(err, resp, "failed to list pull requests", repo)
		}

		for _, pull := range pulls {
			if pull.MergedAt == nil {
				continue
			}
			mergedAt := pull.GetMergedAt().Time
			if since != nil && !mergedAt.After(*since) {
				continue
			}

			labels := make([]string, 0, len(pull.Labels))
			for _, label := range pull.Labels {
				labels = append(labels, label.GetName())
			}

			entries = append(entries, &model.ChangeEntry{
				Number:   pull.GetNumber(),
				Title:    pull.GetTitle(),
				URL:      pull.GetHTMLURL(),
				Labels:   labels,
				MergedAt: mergedAt,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	// the listing is sorted by creation; display order follows merge time
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MergedAt.Before(entries[j].MergedAt)
	})

	return entries, nil
}

// Commits lists commits on the branch, ascending by commit time, skipping
// merge commits. The first line of each commit message becomes the title.
func (c *client) Commits(ctx context.Context, repo model.Repository, branch string, since *time.Time) ([]*model.ChangeEntry, error) {
	opts := &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	if since != nil {
		opts.Since = *since
	}

	var entries []*model.ChangeEntry
	for {
		commits, resp, err := c.githubClient.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, c.apiError(err, resp, "failed to list commits", repo)
		}

		for _, commit := range commits {
			message := commit.GetCommit().GetMessage()
			if strings.HasPrefix(message, "Merge pull request #") || strings.HasPrefix(message, "Merge branch") {
				continue
			}

			title, _, _ := strings.Cut(message, "\n")
			entries = append(entries, &model.ChangeEntry{
				SHA:      commit.GetSHA(),
				Title:    title,
				URL:      commit.GetHTMLURL(),
				MergedAt: commit.GetCommit().GetCommitter().GetDate().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	// the API answers newest first
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MergedAt.Before(entries[j].MergedAt)
	})

	return entries, nil
}

// CreateComment posts a comment on the pull request
func (c *client) CreateComment(ctx context.Context, repo model.Repository, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	_, resp, err := c.githubClient.Issues.CreateComment(ctx, repo.Owner, repo.Name, number, comment)
	if err != nil {
		return c.apiError(err, resp, "failed to create a comment", repo)
	}
	return nil
}

// CreatePullRequest opens a pull request and returns its HTML URL
func (c *client) CreatePullRequest(ctx context.Context, repo model.Repository, title, head, base, body string) (string, error) {
	pull, resp, err := c.githubClient.PullRequests.Create(ctx, repo.Owner, repo.Name, &github.NewPullRequest{
		Title: github.Ptr(title),
		Head:  github.Ptr(head),
		Base:  github.Ptr(base),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return "", c.apiError(err, resp, "failed to create a pull request", repo)
	}
	return pull.GetHTMLURL(), nil
}

func (c *client) apiError(err error, resp *github.Response, msg string, repo model.Repository) error {
	values := []goerr.Option{
		goerr.V("repository", repo.String()),
		goerr.V("error", err.Error()),
	}
	if resp != nil {
		values = append(values, goerr.V("status", resp.StatusCode))
	}
	return goerr.Wrap(types.ErrFetchFailed, msg, values...)
}
