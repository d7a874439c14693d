// Package cache persists the last branch that completed a full
// commit-and-push cycle, so it can be checked out again later.
//
// The cache is a single JSON record on disk with one field,
// LastSuccessfulBranch. It is overwritten whole on every save and read
// back by the rollback rule.
package cache

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultFileName is the cache file created at the working directory root.
const DefaultFileName = ".build_cache.json"

// branchKey is the single field stored in the cache record.
const branchKey = "LastSuccessfulBranch"

// Cache stores the last successfully pushed branch in a file.
//
// The path is explicit so callers inject the location instead of relying
// on an ambient literal. Single writer, single reader; no locking.
type Cache struct {
	path string
}

// New creates a cache backed by the file at path.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// Save records branch as the last successful branch, replacing the whole
// cache file.
//
// Parameters:
//   - branch: The branch name to record
//
// Returns:
//   - error: Any error while serializing or writing the file
func (c *Cache) Save(branch string) error {
	body, err := sjson.Set("", branchKey, branch)
	if err != nil {
		return fmt.Errorf("failed to serialize cache record: %w", err)
	}
	if err := os.WriteFile(c.path, []byte(body+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Load returns the stored branch name.
//
// A missing, unreadable, or unparseable cache file is a normal outcome,
// not an error: Load reports it through the boolean.
//
// Returns:
//   - string: The cached branch name, empty if absent
//   - bool: True if a branch was found
func (c *Cache) Load() (string, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", false
	}
	if !gjson.ValidBytes(data) {
		return "", false
	}
	branch := gjson.GetBytes(data, branchKey)
	if !branch.Exists() || branch.String() == "" {
		return "", false
	}
	return branch.String(), true
}
