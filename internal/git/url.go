package git

import (
	"fmt"
	"strings"
)

// BrowseURL derives a browsable HTTPS URL from a git remote URL.
//
// A trailing .git suffix is stripped. HTTP(S) URLs pass through
// otherwise unchanged. SSH-style URLs — both the scp-like
// user@host:path form and the ssh://user@host/path form — are rewritten
// to https://host/path.
//
// Parameters:
//   - remote: The remote URL as reported by git
//
// Returns:
//   - string: The browsable URL
//   - error: An error if the URL shape is not recognized
func BrowseURL(remote string) (string, error) {
	url := strings.TrimSpace(remote)
	if url == "" {
		return "", fmt.Errorf("remote URL is empty")
	}
	url = strings.TrimSuffix(url, ".git")

	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url, nil
	}

	if rest, ok := strings.CutPrefix(url, "ssh://"); ok {
		if at := strings.Index(rest, "@"); at != -1 {
			rest = rest[at+1:]
		}
		return "https://" + rest, nil
	}

	// scp-like syntax: user@host:path
	if at := strings.Index(url, "@"); at != -1 {
		hostAndPath := url[at+1:]
		colon := strings.Index(hostAndPath, ":")
		if colon == -1 {
			return "", fmt.Errorf("unrecognized remote URL: %s", remote)
		}
		host := hostAndPath[:colon]
		path := strings.TrimPrefix(hostAndPath[colon+1:], "/")
		return fmt.Sprintf("https://%s/%s", host, path), nil
	}

	return "", fmt.Errorf("unrecognized remote URL: %s", remote)
}
