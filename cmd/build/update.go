// Package main provides the update rule: commit and push the working
// tree, record the branch, and open the repository in a browser.
package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jgrd/build/internal/cache"
	"github.com/jgrd/build/internal/config"
	"github.com/jgrd/build/internal/git"
	"github.com/jgrd/build/internal/ui"
)

// updateCmd stages, commits, and pushes the current branch, then opens
// the remote repository's web page.
var updateCmd = &cobra.Command{
	Use:   "update [message]",
	Short: "Commit and push the working tree, then open the repo in a browser",
	Long: `Stage all working-tree changes, commit them with the given message
(or "updated" when none is given), fetch, pull, and push the current
branch, record it as the last successful branch, and open the remote
repository's web URL in a browser.

A failed step is reported and the sequence continues with the next step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			ui.PrintError("Failed to load config: %v", err)
			return err
		}

		message := ""
		if len(args) > 0 {
			message = args[0]
		}

		updateSequence(cmd.Context(), newUpdateDeps(cfg), cfg, message)
		return nil
	},
}

// gitService is the slice of the git client the update sequence uses.
type gitService interface {
	CurrentBranch(ctx context.Context) (string, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	Fetch(ctx context.Context) error
	Pull(ctx context.Context, branch string) error
	Push(ctx context.Context, branch string) error
	RemoteURL(ctx context.Context) (string, error)
}

// branchCache records the last successfully pushed branch.
type branchCache interface {
	Save(branch string) error
}

// updateDeps bundles the collaborators of the update sequence so tests
// can substitute fakes.
type updateDeps struct {
	git         gitService
	cache       branchCache
	openBrowser func(url string) error
}

// newUpdateDeps wires the real collaborators from the config.
func newUpdateDeps(cfg *config.Config) updateDeps {
	return updateDeps{
		git:         git.NewClient(".", cfg.Remote),
		cache:       cache.New(cfg.CacheFile),
		openBrowser: ui.OpenBrowser,
	}
}

// updateSequence runs the full commit-and-push cycle.
//
// Steps run in a fixed order: stage, commit, resolve branch, fetch, pull,
// push, record the branch, open the repo page. A failed step is reported
// as a warning and never aborts the steps after it; a failed commit in
// particular is the normal outcome when the tree has nothing to commit.
func updateSequence(ctx context.Context, deps updateDeps, cfg *config.Config, message string) {
	if message == "" {
		message = cfg.CommitMessage
	}

	if err := deps.git.StageAll(ctx); err != nil {
		reportStep("stage", err)
	}
	if err := deps.git.Commit(ctx, message); err != nil {
		reportStep("commit", err)
	}

	branch, err := deps.git.CurrentBranch(ctx)
	if err != nil {
		reportStep("resolve branch", err)
	}

	if err := deps.git.Fetch(ctx); err != nil {
		reportStep("fetch", err)
	}
	if err := deps.git.Pull(ctx, branch); err != nil {
		reportStep("pull", err)
	}
	if err := deps.git.Push(ctx, branch); err != nil {
		reportStep("push", err)
	}

	if err := deps.cache.Save(branch); err != nil {
		reportStep("record branch", err)
	} else {
		ui.PrintDim("Recorded last successful branch: %s", branch)
	}

	remote, err := deps.git.RemoteURL(ctx)
	if err != nil {
		reportStep("resolve remote URL", err)
	} else if url, err := git.BrowseURL(remote); err != nil {
		reportStep("derive repo URL", err)
	} else {
		ui.PrintLink("Repository", url)
		if err := deps.openBrowser(url); err != nil {
			reportStep("open browser", err)
		}
	}

	ui.PrintSuccess("Update sequence finished on branch '%s'", branch)
}

// reportStep prints a step failure without aborting the sequence.
func reportStep(step string, err error) {
	if errors.Is(err, git.ErrToolNotFound) {
		ui.PrintError("%s: %v", step, err)
		return
	}
	ui.PrintWarning("%s failed: %v", step, err)
}
