//go:build !windows

package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
)

// setProcGroup configures the command to run in its own process group.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillByPattern force-terminates every process whose command line matches
// pattern, except the calling process itself.
//
// PIDs come from `pgrep -f`, which emits one PID per line; no positional
// text splitting is involved.
//
// Parameters:
//   - pattern: Substring matched against full command lines
//
// Returns:
//   - int: Number of processes signalled
//   - error: ErrToolNotFound if pgrep is missing; nil when nothing matches
func KillByPattern(pattern string) (int, error) {
	out, err := exec.Command("pgrep", "-f", pattern).Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, fmt.Errorf("pgrep: %w", ErrToolNotFound)
		}
		// pgrep exits 1 when no process matches.
		return 0, nil
	}

	self := os.Getpid()
	killed := 0
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		pid, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || pid == self {
			continue
		}
		if err := syscall.Kill(pid, syscall.SIGKILL); err != nil {
			log.Debug("process already gone", "pid", pid)
			continue
		}
		log.Debug("killed process", "pattern", pattern, "pid", pid)
		killed++
	}
	return killed, nil
}

// PortOwner returns the PID of the process listening on the TCP port.
//
// Uses `lsof -ti`, which prints bare PIDs, instead of scraping netstat
// columns.
//
// Parameters:
//   - port: The TCP port to inspect
//
// Returns:
//   - int: The owning PID
//   - bool: True if a process owns the port
//   - error: ErrToolNotFound if lsof is missing
func PortOwner(port int) (int, bool, error) {
	out, err := exec.Command("lsof", "-ti", "tcp:"+strconv.Itoa(port)).Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, false, fmt.Errorf("lsof: %w", ErrToolNotFound)
		}
		// lsof exits 1 when no process owns the port.
		return 0, false, nil
	}

	first := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0]
	pid, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, false, nil
	}
	return pid, true, nil
}

// Kill force-terminates the process with the given PID.
func Kill(pid int) error {
	if err := syscall.Kill(pid, syscall.SIGKILL); err != nil {
		return fmt.Errorf("failed to kill pid %d: %w", pid, err)
	}
	return nil
}
