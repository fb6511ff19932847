package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/chronicle/pkg/domain/model"
)

// GitHubClient defines operations for interacting with the GitHub API
type GitHubClient interface {
	// LatestRelease looks up the most recent published release. It returns
	// (nil, nil) when the repository has no releases; that is not an error.
	LatestRelease(ctx context.Context, repo model.Repository) (*model.ReleaseBoundary, error)

	// MergedPullRequests lists merged pull requests, ascending by merge time.
	// A non-nil since restricts the result to pull requests merged strictly after it.
	MergedPullRequests(ctx context.Context, repo model.Repository, since *time.Time) ([]*model.ChangeEntry, error)

	// Commits lists commits on the branch, ascending by commit time.
	// A non-nil since restricts the result to commits after it.
	Commits(ctx context.Context, repo model.Repository, branch string, since *time.Time) ([]*model.ChangeEntry, error)

	// CreateComment posts a comment on a pull request
	CreateComment(ctx context.Context, repo model.Repository, number int, body string) error

	// CreatePullRequest opens a pull request and returns its HTML URL
	CreatePullRequest(ctx context.Context, repo model.Repository, title, head, base, body string) (string, error)
}
