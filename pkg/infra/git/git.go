package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Client runs git commands in the checked out workspace of the action.
// All repository mutation lives here; the core pipeline never touches git.
type Client struct{}

// New creates a new git client
func New() *Client {
	return &Client{}
}

func (c *Client) run(ctx context.Context, args ...string) error {
	ctxlog.From(ctx).Debug("running git", "args", args)

	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return goerr.Wrap(err, "git command failed",
			goerr.V("args", args),
			goerr.V("output", strings.TrimSpace(string(output))))
	}
	return nil
}

// ConfigureAuthor sets the committer identity for subsequent commits
func (c *Client) ConfigureAuthor(ctx context.Context, username, email string) error {
	if err := c.run(ctx, "config", "user.name", username); err != nil {
		return err
	}
	return c.run(ctx, "config", "user.email", email)
}

// CheckoutBranch fetches the branch from origin and checks it out
func (c *Client) CheckoutBranch(ctx context.Context, branch string) error {
	if err := c.run(ctx, "fetch", "--prune", "--unshallow", "origin", branch); err != nil {
		// a complete clone cannot be unshallowed; retry with a plain fetch
		if err := c.run(ctx, "fetch", "origin", branch); err != nil {
			return err
		}
	}
	return c.run(ctx, "checkout", branch)
}

// CreateBranch creates and checks out a new branch from the base branch
func (c *Client) CreateBranch(ctx context.Context, base, name string) error {
	if err := c.run(ctx, "checkout", strings.TrimPrefix(base, "refs/heads/")); err != nil {
		return err
	}
	return c.run(ctx, "checkout", "-b", name)
}

// CommitAndPush stages the file, commits it with the given author and pushes
// the branch to origin.
func (c *Client) CommitAndPush(ctx context.Context, path, message, author, branch string) error {
	if err := c.run(ctx, "add", path); err != nil {
		return err
	}
	if err := c.run(ctx, "commit", "--author="+author, "-m", message); err != nil {
		return err
	}
	return c.run(ctx, "push", "-u", "origin", branch)
}
