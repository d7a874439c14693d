//go:build windows

package proc

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/charmbracelet/log"
)

// setProcGroup creates the child in a new process group.
func setProcGroup(cmd *exec.Cmd) {
	// CREATE_NEW_PROCESS_GROUP
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: 0x00000200}
}

// KillByPattern force-terminates every process whose image name matches
// pattern via taskkill's filter syntax.
//
// Parameters:
//   - pattern: Image name prefix (e.g. "gunicorn")
//
// Returns:
//   - int: 1 if taskkill reported success, 0 otherwise
//   - error: ErrToolNotFound if taskkill is missing
func KillByPattern(pattern string) (int, error) {
	filter := fmt.Sprintf("IMAGENAME eq %s*", pattern)
	err := exec.Command("taskkill", "/F", "/FI", filter).Run()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, fmt.Errorf("taskkill: %w", ErrToolNotFound)
		}
		// taskkill exits non-zero when nothing matched the filter.
		return 0, nil
	}
	log.Debug("taskkill completed", "filter", filter)
	return 1, nil
}

// PortOwner returns the PID of the process listening on the TCP port,
// extracted from the last column of the matching `netstat -ano` line.
//
// Parameters:
//   - port: The TCP port to inspect
//
// Returns:
//   - int: The owning PID
//   - bool: True if a process owns the port
//   - error: ErrToolNotFound if netstat is missing
func PortOwner(port int) (int, bool, error) {
	out, err := exec.Command("netstat", "-ano").Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, false, fmt.Errorf("netstat: %w", ErrToolNotFound)
		}
		return 0, false, fmt.Errorf("netstat failed: %w", err)
	}

	pid, found := parseNetstatPID(string(out), port)
	return pid, found, nil
}

// Kill force-terminates the process with the given PID.
func Kill(pid int) error {
	if err := exec.Command("taskkill", "/F", "/PID", strconv.Itoa(pid)).Run(); err != nil {
		return fmt.Errorf("failed to kill pid %d: %w", pid, err)
	}
	return nil
}
