// Package main provides the entry point for the build CLI.
//
// build is a personal project-automation tool: it sequences git
// commit/push operations, launches or tears down a local application
// process, and remembers the last branch that made it through a full
// update so it can be checked out again later.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jgrd/build/internal/ui"
)

// Version information set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd represents the base command. Invoked without a rule it runs the
// default sequence: update followed by exit.
var rootCmd = &cobra.Command{
	Use:   "build [rule]",
	Short: "Personal project automation: commit, push, run, and tear down",
	Long: `build sequences git commit/push operations, launches or tears down a
local application process, and caches the last successfully pushed branch.

Rules:
  (none), default   Run update, then exit
  update [message]  Stage, commit, fetch, pull, push, open the repo in a browser
  run [nodejs]      Start the local Python server, or the Node.js app
  exit              Update, then stop local servers and free the app port
  CTLFS             Check out the last successfully pushed branch
  watch             Re-run update whenever the working tree changes`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		if debug {
			log.SetLevel(log.DebugLevel)
			log.Debug("Debug logging enabled")
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		ui.SetQuietMode(quiet)
	},
	RunE: runRule,
}

// runRule handles the default rule and the unknown-rule fallback. Known
// rules are registered subcommands, so any argument reaching here is
// either "default" or not a rule at all.
func runRule(cmd *cobra.Command, args []string) error {
	rule := strings.Join(args, " ")
	if rule != "" && rule != "default" {
		fmt.Println(unknownRuleMessage(rule))
		return nil
	}
	return runDefaultSequence(cmd)
}

// unknownRuleMessage formats the make-style diagnostic for an
// unrecognized rule.
func unknownRuleMessage(rule string) string {
	return fmt.Sprintf("build: *** No rule to make target '%s'.  Stop.", rule)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintInfo("Version: %s", version)
		ui.PrintInfo("Commit: %s", commit)
		ui.PrintInfo("Built: %s", date)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")

	// Rules
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exitCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(watchCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
