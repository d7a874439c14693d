// Package main provides the exit rule: save work, then tear down local
// server processes and free the app port.
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jgrd/build/internal/config"
	"github.com/jgrd/build/internal/proc"
	"github.com/jgrd/build/internal/ui"
)

// exitCmd commits and pushes pending work, then stops known server
// processes, frees the app port, and cleans up lingering Node processes.
var exitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Commit, push, then stop local servers and free the app port",
	Long: `Run the full update sequence (save-before-close), then terminate all
server processes matching the configured server command, kill whatever
process owns the app port, and clean up lingering Node.js app processes.

Each teardown step is independent: a step finding nothing to stop is
reported and the remaining steps still run. Use --no-update to skip the
commit-and-push phase.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			ui.PrintError("Failed to load config: %v", err)
			return err
		}

		noUpdate, _ := cmd.Flags().GetBool("no-update")
		update := func() {
			updateSequence(cmd.Context(), newUpdateDeps(cfg), cfg, "")
		}
		if noUpdate {
			update = nil
		}

		exitSequence(cfg, realProcManager{}, update)
		return nil
	},
}

func init() {
	exitCmd.Flags().Bool("no-update", false, "Skip the commit-and-push phase before teardown")
}

// processManager is the slice of the proc package the exit sequence uses.
type processManager interface {
	KillByPattern(pattern string) (int, error)
	PortOwner(port int) (int, bool, error)
	Kill(pid int) error
}

// realProcManager delegates to the proc package.
type realProcManager struct{}

func (realProcManager) KillByPattern(pattern string) (int, error) { return proc.KillByPattern(pattern) }
func (realProcManager) PortOwner(port int) (int, bool, error)    { return proc.PortOwner(port) }
func (realProcManager) Kill(pid int) error                       { return proc.Kill(pid) }

// exitSequence performs the teardown steps in order. update is run first
// when non-nil. Every step runs regardless of earlier step outcomes.
func exitSequence(cfg *config.Config, procs processManager, update func()) {
	if update != nil {
		update()
	}

	// Stop server processes by command-line pattern.
	if n, err := procs.KillByPattern(cfg.Server.Command); err != nil {
		ui.PrintWarning("Failed to stop %s processes: %v", cfg.Server.Command, err)
	} else if n > 0 {
		ui.PrintSuccess("Stopped %d %s process(es)", n, cfg.Server.Command)
	} else {
		ui.PrintInfo("No %s processes running", cfg.Server.Command)
	}

	// Free the app port by owning process id.
	if pid, found, err := procs.PortOwner(cfg.Server.Port); err != nil {
		ui.PrintWarning("Failed to inspect port %d: %v", cfg.Server.Port, err)
	} else if !found {
		ui.PrintInfo("No process owns port %d", cfg.Server.Port)
	} else if err := procs.Kill(pid); err != nil {
		ui.PrintWarning("Failed to free port %d (pid %d): %v", cfg.Server.Port, pid, err)
	} else {
		ui.PrintSuccess("Freed port %d (killed pid %d)", cfg.Server.Port, pid)
	}

	// Clean up lingering Node.js app processes.
	if n, err := procs.KillByPattern(cfg.Node.Dir); err != nil {
		ui.PrintWarning("Failed to stop Node.js processes: %v", err)
	} else if n > 0 {
		ui.PrintSuccess("Stopped %d Node.js process(es)", n)
	} else {
		ui.PrintInfo("No Node.js app processes running")
	}
}

// defaultSequence implements the default rule: the update sequence
// followed by the exit sequence, as direct function calls. The exit phase
// runs its own update pass, mirroring an explicit `build update` followed
// by `build exit`.
func defaultSequence(ctx context.Context, cfg *config.Config, deps updateDeps, procs processManager) {
	updateSequence(ctx, deps, cfg, "")
	exitSequence(cfg, procs, func() {
		updateSequence(ctx, deps, cfg, "")
	})
}

// runDefaultSequence wires the real collaborators for the default rule.
func runDefaultSequence(cmd *cobra.Command) error {
	cfg, err := config.Load(".")
	if err != nil {
		ui.PrintError("Failed to load config: %v", err)
		return err
	}

	defaultSequence(cmd.Context(), cfg, newUpdateDeps(cfg), realProcManager{})
	return nil
}
