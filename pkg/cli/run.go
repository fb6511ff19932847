package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/chronicle/pkg/cli/config"
	"github.com/m-mizutani/chronicle/pkg/controller/action"
	"github.com/m-mizutani/chronicle/pkg/domain/interfaces"
	"github.com/m-mizutani/chronicle/pkg/domain/model"
	"github.com/m-mizutani/chronicle/pkg/domain/types"
	"github.com/m-mizutani/chronicle/pkg/infra/git"
	infraGitHub "github.com/m-mizutani/chronicle/pkg/infra/github"
	"github.com/m-mizutani/chronicle/pkg/usecase"
)

func cmdRun() *cli.Command {
	var (
		actionCfg config.Action
		githubCfg config.GitHub
		notifyCfg config.Notify
	)

	flags := append(actionCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Generate and publish a changelog for the triggering event",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			repo, err := model.ParseRepository(githubCfg.Repository)
			if err != nil {
				return err
			}

			trigger, err := action.LoadTrigger(action.Environment{
				EventName:         actionCfg.EventName,
				EventPath:         actionCfg.EventPath,
				PullRequestBranch: actionCfg.PullRequestBranch,
				BaseBranch:        actionCfg.BaseBranch,
				ReleaseVersion:    actionCfg.ReleaseVersion,
			})
			if err != nil {
				return err
			}

			if !trigger.Event.IsSupported() {
				logger.Warn("Unsupported event, nothing to do",
					slog.String("event", string(trigger.Event)))
				return nil
			}

			settings, err := loadSettings(ctx, &actionCfg)
			if err != nil {
				return err
			}

			if !settings.CommitChangelog && !settings.CommentChangelog {
				return goerr.Wrap(types.ErrInvalidConfig,
					"both commit_changelog and comment_changelog are disabled, nothing to publish")
			}
			if settings.CommentChangelog && trigger.Event != model.EventPullRequest {
				logger.Warn("comment_changelog only works for pull_request events",
					slog.String("event", string(trigger.Event)))
			}

			var clientOpts []infraGitHub.Option
			if githubCfg.APIBaseURL != "" {
				clientOpts = append(clientOpts, infraGitHub.WithBaseURL(githubCfg.APIBaseURL))
			}
			client, err := infraGitHub.NewClient(githubCfg.Token, clientOpts...)
			if err != nil {
				return err
			}

			gitClient := git.New()
			if trigger.Event == model.EventPullRequest && trigger.PullRequestBranch != "" {
				if err := gitClient.CheckoutBranch(ctx, trigger.PullRequestBranch); err != nil {
					return err
				}
			}

			existing, err := readChangelog(settings.ChangelogFilename)
			if err != nil {
				return err
			}

			update, err := usecase.NewChangelog(client, repo, settings).Generate(ctx, trigger, existing)
			if err != nil {
				if errors.Is(err, types.ErrNoMatchingChanges) {
					logger.Warn("No matching changes found, skipping",
						slog.String("repository", repo.String()),
						slog.Any("reason", err))
					return nil
				}
				return err
			}

			if err := publish(ctx, update, &actionCfg, gitClient, client, repo, trigger); err != nil {
				return err
			}

			if err := writeActionOutput(actionCfg.OutputPath, "changelog", update.Block.Text); err != nil {
				return err
			}

			if notifier := notifyCfg.Notifier(); notifier != nil {
				if err := notifier.NotifyPublished(ctx, repo.String(), update.Header.Text()); err != nil {
					logger.Warn("Slack notification failed", slog.Any("error", err))
				}
			}

			logger.Info("Changelog published",
				slog.String("repository", repo.String()),
				slog.String("version", update.Header.Version),
			)
			return nil
		},
	}
}

// loadSettings reads the user configuration file (when one is given), applies
// it over the defaults and then applies the changelog filename input on top.
func loadSettings(ctx context.Context, cfg *config.Action) (*model.Settings, error) {
	var raw []byte
	if cfg.ConfigFile != "" {
		data, err := os.ReadFile(cfg.ConfigFile)
		if err != nil {
			ctxlog.From(ctx).Warn("Cannot read the configuration file, using defaults",
				slog.String("path", cfg.ConfigFile),
				slog.Any("error", err))
		} else {
			raw = data
		}
	}

	settings, err := usecase.ResolveSettings(raw, cfg.ConfigFile)
	if err != nil {
		return nil, err
	}

	if cfg.ChangelogFilename != "" {
		settings, err = settings.WithChangelogFilename(cfg.ChangelogFilename)
		if err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func readChangelog(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", goerr.Wrap(err, "failed to read the changelog file",
			goerr.V("path", path))
	}
	return string(data), nil
}

// publish applies the plan: write the file, commit and push, open a pull
// request when the run was not triggered by one, and post the comment.
func publish(ctx context.Context, update *model.ChangelogUpdate, cfg *config.Action, gitClient *git.Client, client interfaces.GitHubClient, repo model.Repository, trigger *model.Trigger) error {
	logger := ctxlog.From(ctx)
	plan := update.Plan

	if plan.ShouldCommit {
		branch := plan.Branch
		if branch == "" {
			branch = fmt.Sprintf("chronicle-%s-%s",
				update.Header.Version, uuid.NewString()[:8])
			if err := gitClient.CreateBranch(ctx, trigger.BaseBranch, branch); err != nil {
				return err
			}
		}

		if err := os.WriteFile(plan.CommitPath, []byte(plan.CommitContent), 0644); err != nil {
			return goerr.Wrap(err, "failed to write the changelog file",
				goerr.V("path", plan.CommitPath))
		}

		if err := gitClient.ConfigureAuthor(ctx, cfg.CommitterUsername, cfg.CommitterEmail); err != nil {
			return err
		}

		if err := gitClient.CommitAndPush(ctx, plan.CommitPath, plan.CommitMessage, cfg.CommitAuthor(), branch); err != nil {
			return err
		}
		logger.Info("Committed changelog", slog.String("branch", branch))

		if plan.CreatePullRequest {
			base := strings.TrimPrefix(trigger.BaseBranch, "refs/heads/")
			url, err := client.CreatePullRequest(ctx, repo,
				plan.PullRequestTitle, branch, base, plan.PullRequestBody)
			if err != nil {
				return err
			}
			logger.Info("Opened pull request", slog.String("url", url))
		}
	}

	if plan.ShouldComment {
		if err := client.CreateComment(ctx, repo, trigger.PullRequestNumber, plan.CommentBody); err != nil {
			return err
		}
		logger.Info("Posted changelog comment",
			slog.Int("pull_request", trigger.PullRequestNumber))
	}

	return nil
}
