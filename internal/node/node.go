// Package node scaffolds and launches a minimal Node.js application.
package node

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/sjson"
)

// DefaultDir is the app folder created and launched by the nodejs rule.
const DefaultDir = "nodejs-app"

// entryPoint is the app's entry-point file name.
const entryPoint = "index.js"

// entrySource is the generated entry-point content.
const entrySource = "console.log('nodejs-app is running');\n"

// Bootstrap creates a minimal Node.js skeleton at dir if it does not
// already exist.
//
// The skeleton is a package.json manifest (name, version, description,
// entry point, start script, empty dependency set) and an entry-point
// file that prints a fixed message. An existing folder is left untouched;
// its contents are not validated.
//
// Parameters:
//   - dir: The app folder
//
// Returns:
//   - bool: True if the skeleton was created, false if dir already existed
//   - error: Any error creating the folder or its files
func Bootstrap(dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	manifest, err := buildManifest(filepath.Base(dir))
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0644); err != nil {
		return false, fmt.Errorf("failed to write package.json: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, entryPoint), []byte(entrySource), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", entryPoint, err)
	}

	return true, nil
}

// EntryPoint returns the path of the app's entry-point file.
func EntryPoint(dir string) string {
	return filepath.Join(dir, entryPoint)
}

// buildManifest produces the package.json content for a fresh app.
func buildManifest(name string) (string, error) {
	body := ""
	var err error
	for _, kv := range []struct {
		key   string
		value interface{}
	}{
		{"name", name},
		{"version", "1.0.0"},
		{"description", "Minimal Node.js app scaffolded by build"},
		{"main", entryPoint},
		{"scripts.start", "node " + entryPoint},
	} {
		body, err = sjson.Set(body, kv.key, kv.value)
		if err != nil {
			return "", fmt.Errorf("failed to build package.json: %w", err)
		}
	}

	body, err = sjson.SetRaw(body, "dependencies", "{}")
	if err != nil {
		return "", fmt.Errorf("failed to build package.json: %w", err)
	}

	return body + "\n", nil
}
