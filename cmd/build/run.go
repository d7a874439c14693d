// Package main provides the run rules: launch the local Python server or
// the Node.js app.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jgrd/build/internal/config"
	"github.com/jgrd/build/internal/node"
	"github.com/jgrd/build/internal/proc"
	"github.com/jgrd/build/internal/ui"
)

// runCmd launches the project's local server. With the "nodejs" argument
// it scaffolds or launches the Node.js app instead.
var runCmd = &cobra.Command{
	Use:   "run [nodejs]",
	Short: "Start the local Python server, or the Node.js app",
	Long: `Detect the project type and start its local server.

With no argument: if the Python dependency manifest (requirements.txt by
default) is present, start the WSGI server and open it in a browser.

With "nodejs": scaffold a minimal Node.js app skeleton if the app folder
is absent, or launch the existing entry point.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			ui.PrintError("Failed to load config: %v", err)
			return err
		}

		if len(args) > 0 {
			if args[0] != "nodejs" {
				fmt.Println(unknownRuleMessage("run " + args[0]))
				return nil
			}
			return runNodeSequence(cfg)
		}
		return runServerSequence(cfg)
	},
}

// runServerSequence starts the Python WSGI server when the project's
// dependency manifest is present. An absent manifest is informational,
// not an error.
func runServerSequence(cfg *config.Config) error {
	if _, err := os.Stat(cfg.Server.Marker); err != nil {
		ui.PrintInfo("No %s found — this does not look like a Python project.", cfg.Server.Marker)
		ui.PrintInfo("For a Node.js app, try: build run nodejs")
		return nil
	}

	pid, err := proc.Spawn(cfg.Server.Command, "--bind", cfg.Server.Addr(), cfg.Server.App)
	if err != nil {
		ui.PrintError("Failed to start %s: %v", cfg.Server.Command, err)
		return err
	}
	ui.PrintSuccess("Started %s on %s (pid %d)", cfg.Server.Command, cfg.Server.Addr(), pid)

	url := cfg.Server.URL()
	ui.PrintLink("Local server", url)
	if err := ui.OpenBrowser(url); err != nil {
		ui.PrintWarning("Failed to open browser: %v", err)
	}
	return nil
}

// runNodeSequence scaffolds the Node.js app skeleton, or launches the
// existing entry point when the folder already exists.
func runNodeSequence(cfg *config.Config) error {
	created, err := node.Bootstrap(cfg.Node.Dir)
	if err != nil {
		ui.PrintError("Failed to scaffold Node.js app: %v", err)
		return err
	}

	if created {
		ui.PrintSuccess("Scaffolded Node.js app in %s/", cfg.Node.Dir)
		ui.PrintDim("Run 'build run nodejs' again to start it")
		return nil
	}

	pid, err := proc.Spawn("node", node.EntryPoint(cfg.Node.Dir))
	if err != nil {
		ui.PrintError("Failed to start Node.js app: %v", err)
		return err
	}
	ui.PrintSuccess("Started Node.js app (pid %d)", pid)
	return nil
}
