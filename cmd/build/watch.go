// Package main provides the watch rule: re-run the update sequence when
// the working tree changes.
package main

import (
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jgrd/build/internal/config"
	"github.com/jgrd/build/internal/ui"
)

// watchCmd watches the working tree and runs the update sequence after a
// quiet period following each burst of changes.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the update sequence when files change",
	Long: `Watch the working directory tree and run the update sequence after a
debounce window whenever files change. The .git directory, node_modules,
and the branch cache file are ignored. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", 2*time.Second, "Quiet period before an update fires")
}

// runWatch sets up the recursive watcher and drives the debounce loop.
func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		ui.PrintError("Failed to load config: %v", err)
		return err
	}

	debounce, _ := cmd.Flags().GetDuration("debounce")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		ui.PrintError("Failed to create watcher: %v", err)
		return err
	}
	defer watcher.Close()

	if err := watchTree(watcher, ".", cfg.CacheFile); err != nil {
		ui.PrintError("Failed to watch working tree: %v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintInfo("Watching for changes (debounce %s) — Ctrl-C to stop", debounce)

	timer := newIdleTimer(debounce)
	pending := false

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignoredPath(event.Name, cfg.CacheFile) {
				continue
			}
			// Newly created directories need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn("Failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			log.Debug("change detected", "path", event.Name, "op", event.Op)
			timer.Stop()
			timer.Reset(debounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", "error", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			updateSequence(ctx, newUpdateDeps(cfg), cfg, "")

		case <-ctx.Done():
			ui.PrintInfo("Stopped watching")
			return nil
		}
	}
}

// newIdleTimer returns a stopped timer ready for Reset. Stop alone is
// enough: an unreceived fire stays buffered in the channel at worst, and
// the loop's pending flag guards against a stale delivery.
func newIdleTimer(d time.Duration) *time.Timer {
	t := time.NewTimer(d)
	t.Stop()
	return t
}

// watchTree registers every directory under root with the watcher,
// skipping ignored subtrees.
func watchTree(watcher *fsnotify.Watcher, root, cacheFile string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignoredPath(path, cacheFile) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// ignoredPath reports whether a path should never trigger an update:
// the .git directory, node_modules, and the cache file written by the
// update sequence itself.
func ignoredPath(path, cacheFile string) bool {
	if path == "" {
		return false
	}
	if filepath.Base(path) == filepath.Base(cacheFile) {
		return true
	}
	for _, elem := range strings.Split(filepath.ToSlash(path), "/") {
		if elem == ".git" || elem == "node_modules" {
			return true
		}
	}
	return false
}
