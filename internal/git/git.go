// Package git wraps the git command-line tool.
//
// Every invocation is classified into a typed result so callers can tell
// a missing git binary apart from a non-zero exit, and decide for
// themselves whether a failed step aborts a sequence.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrToolNotFound indicates the git executable is not installed or not on
// the PATH.
var ErrToolNotFound = errors.New("git executable not found in PATH")

// CommandError describes a git invocation that exited non-zero.
type CommandError struct {
	// Args are the git arguments, without the leading "git".
	Args []string

	// ExitCode is the process exit code.
	ExitCode int

	// Stderr is the captured standard error output, trimmed.
	Stderr string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Executor runs git commands. Swappable in tests.
type Executor interface {
	// Run executes git with args in dir and returns trimmed stdout.
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// execExecutor is the default Executor backed by os/exec.
type execExecutor struct{}

// Run implements Executor.
func (execExecutor) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("running git", "args", strings.Join(args, " "), "dir", dir)

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err == nil {
		return out, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return out, ErrToolNotFound
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, &CommandError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}

	return out, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
}

// Client issues git operations against a single repository.
type Client struct {
	dir    string
	remote string
	exec   Executor
}

// NewClient creates a client for the repository at dir using the named
// remote for fetch/pull/push.
func NewClient(dir, remote string) *Client {
	return &Client{dir: dir, remote: remote, exec: execExecutor{}}
}

// NewClientWithExecutor creates a client with a custom executor.
// Used by tests to avoid spawning real git processes.
func NewClientWithExecutor(dir, remote string, executor Executor) *Client {
	return &Client{dir: dir, remote: remote, exec: executor}
}

// CurrentBranch returns the symbolic name of the checked-out branch.
// Fails outside a repository or on a branch with no commits.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.exec.Run(ctx, c.dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// StageAll stages all working-tree changes.
func (c *Client) StageAll(ctx context.Context) error {
	_, err := c.exec.Run(ctx, c.dir, "add", "-A")
	return err
}

// Commit creates a commit with the given message.
// Exits non-zero when there is nothing to commit.
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.exec.Run(ctx, c.dir, "commit", "-m", message)
	return err
}

// Fetch updates remote-tracking refs from the configured remote.
func (c *Client) Fetch(ctx context.Context) error {
	_, err := c.exec.Run(ctx, c.dir, "fetch", c.remote)
	return err
}

// Pull pulls branch from the configured remote.
func (c *Client) Pull(ctx context.Context, branch string) error {
	_, err := c.exec.Run(ctx, c.dir, "pull", c.remote, branch)
	return err
}

// Push pushes branch to the configured remote.
func (c *Client) Push(ctx context.Context, branch string) error {
	_, err := c.exec.Run(ctx, c.dir, "push", c.remote, branch)
	return err
}

// Checkout switches the working tree to branch.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	_, err := c.exec.Run(ctx, c.dir, "checkout", branch)
	return err
}

// RemoteURL returns the configured URL of the remote.
func (c *Client) RemoteURL(ctx context.Context) (string, error) {
	return c.exec.Run(ctx, c.dir, "remote", "get-url", c.remote)
}
