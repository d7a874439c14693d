// Package proc spawns and terminates local application processes.
//
// Long-lived servers (WSGI server, Node app) are fire-and-forget: they
// are started in their own process group and never supervised beyond the
// initial spawn. Teardown finds them again by command-line pattern or by
// the TCP port they hold.
package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrToolNotFound indicates a required external binary is not installed
// or not on the PATH.
var ErrToolNotFound = errors.New("executable not found in PATH")

// Spawn starts a command detached from the CLI's lifetime.
//
// The child runs in its own process group so that killing the CLI does
// not take the server down with it. The exit status is reaped in the
// background and otherwise ignored.
//
// Parameters:
//   - name: The binary to run
//   - args: Its arguments
//
// Returns:
//   - int: The child process ID
//   - error: ErrToolNotFound if the binary is missing, or any start error
func Spawn(name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	setProcGroup(cmd)

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, fmt.Errorf("%s: %w", name, ErrToolNotFound)
		}
		return 0, fmt.Errorf("failed to start %s: %w", name, err)
	}

	pid := cmd.Process.Pid
	log.Debug("spawned process", "name", name, "pid", pid)

	// Reap the child when it exits so it never lingers as a zombie.
	go func() { _ = cmd.Wait() }()

	return pid, nil
}

// parseNetstatPID extracts the PID owning a TCP port from `netstat -ano`
// output. The PID is the last whitespace-delimited column of the first
// line whose local address ends in the port and whose state is LISTENING.
//
// Parameters:
//   - output: Raw netstat output
//   - port: The TCP port to look for
//
// Returns:
//   - int: The owning PID
//   - bool: True if a PID was found
func parseNetstatPID(output string, port int) (int, bool) {
	suffix := ":" + strconv.Itoa(port)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		if !strings.HasSuffix(fields[1], suffix) {
			continue
		}
		if !strings.EqualFold(fields[0], "TCP") {
			continue
		}
		if !strings.EqualFold(fields[3], "LISTENING") {
			continue
		}
		pid, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			continue
		}
		return pid, true
	}
	return 0, false
}
