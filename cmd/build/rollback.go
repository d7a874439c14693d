// Package main provides the CTLFS rule: check out the last branch that
// completed a full update.
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jgrd/build/internal/cache"
	"github.com/jgrd/build/internal/config"
	"github.com/jgrd/build/internal/git"
	"github.com/jgrd/build/internal/ui"
)

// rollbackCmd checks out and pulls the cached last-successful branch.
var rollbackCmd = &cobra.Command{
	Use:     "CTLFS",
	Aliases: []string{"rollback"},
	Short:   "Check out the last successfully pushed branch",
	Long: `Check out the branch recorded by the most recent successful update
and pull it from the remote. Does nothing when no branch is cached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			ui.PrintError("Failed to load config: %v", err)
			return err
		}

		return rollbackSequence(cmd.Context(), cache.New(cfg.CacheFile), git.NewClient(".", cfg.Remote))
	},
}

// rollbackGit is the slice of the git client the rollback sequence uses.
type rollbackGit interface {
	Checkout(ctx context.Context, branch string) error
	Pull(ctx context.Context, branch string) error
}

// branchLoader reads the last successfully pushed branch.
type branchLoader interface {
	Load() (string, bool)
}

// rollbackSequence checks out and pulls the cached branch. An empty
// cache is reported and nothing else happens.
func rollbackSequence(ctx context.Context, store branchLoader, g rollbackGit) error {
	branch, ok := store.Load()
	if !ok {
		ui.PrintInfo("No cached branch found — run 'build update' first")
		return nil
	}

	if err := g.Checkout(ctx, branch); err != nil {
		ui.PrintError("Failed to check out '%s': %v", branch, err)
		return err
	}
	if err := g.Pull(ctx, branch); err != nil {
		ui.PrintError("Failed to pull '%s': %v", branch, err)
		return err
	}

	ui.PrintSuccess("Checked out last successful branch '%s'", branch)
	return nil
}
