package main

import (
	"context"
	"errors"
	"testing"

	"github.com/jgrd/build/internal/config"
)

// fakeProcManager records teardown calls and can fail selected steps.
type fakeProcManager struct {
	calls      []string
	killErr    error
	portPID    int
	portFound  bool
	portErr    error
	killPIDErr error
}

func (f *fakeProcManager) KillByPattern(pattern string) (int, error) {
	f.calls = append(f.calls, "kill-pattern "+pattern)
	if f.killErr != nil {
		return 0, f.killErr
	}
	return 1, nil
}

func (f *fakeProcManager) PortOwner(port int) (int, bool, error) {
	f.calls = append(f.calls, "port-owner")
	return f.portPID, f.portFound, f.portErr
}

func (f *fakeProcManager) Kill(pid int) error {
	f.calls = append(f.calls, "kill-pid")
	return f.killPIDErr
}

// TestExitSequenceOrder verifies update runs first and the teardown steps
// follow in order.
func TestExitSequenceOrder(t *testing.T) {
	cfg := config.Default()
	procs := &fakeProcManager{portPID: 4242, portFound: true}

	updated := false
	exitSequence(cfg, procs, func() {
		if len(procs.calls) != 0 {
			t.Error("update ran after teardown steps")
		}
		updated = true
	})

	if !updated {
		t.Error("update phase did not run")
	}

	want := []string{
		"kill-pattern gunicorn",
		"port-owner",
		"kill-pid",
		"kill-pattern nodejs-app",
	}
	if len(procs.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", procs.calls, want)
	}
	for i, call := range procs.calls {
		if call != want[i] {
			t.Errorf("call %d = %q, want %q", i, call, want[i])
		}
	}
}

// gitOpsBeforeTeardown wraps fakeProcManager to record how many git
// operations had run when the first teardown step fired.
type gitOpsBeforeTeardown struct {
	fakeProcManager
	git  *fakeGit
	ops  int
	seen bool
}

func (g *gitOpsBeforeTeardown) KillByPattern(pattern string) (int, error) {
	if !g.seen {
		g.seen = true
		g.ops = len(g.git.ops)
	}
	return g.fakeProcManager.KillByPattern(pattern)
}

// TestDefaultSequenceOrdering verifies the default rule is an update
// followed by a full exit: two complete update passes, both finished
// before any teardown step runs.
func TestDefaultSequenceOrdering(t *testing.T) {
	cfg := config.Default()
	g := &fakeGit{branch: "main", remote: "https://github.com/org/repo.git"}
	deps := updateDeps{
		git:         g,
		cache:       &fakeCache{},
		openBrowser: func(string) error { return nil },
	}
	procs := &gitOpsBeforeTeardown{git: g}

	defaultSequence(context.Background(), cfg, deps, procs)

	// One update pass issues seven git operations; the default rule runs
	// the explicit update plus exit's save-before-close pass.
	const passLen = 7
	if len(g.ops) != 2*passLen {
		t.Fatalf("recorded %d git ops, want %d (two update passes): %v", len(g.ops), 2*passLen, g.ops)
	}
	if !procs.seen {
		t.Fatal("teardown steps did not run")
	}
	if procs.ops != 2*passLen {
		t.Errorf("first teardown step ran after %d git ops, want %d (both update passes first)", procs.ops, 2*passLen)
	}

	want := []string{
		"kill-pattern gunicorn",
		"port-owner",
		"kill-pattern nodejs-app",
	}
	if len(procs.calls) != len(want) {
		t.Fatalf("teardown calls = %v, want %v", procs.calls, want)
	}
	for i, call := range procs.calls {
		if call != want[i] {
			t.Errorf("teardown call %d = %q, want %q", i, call, want[i])
		}
	}
}

// TestExitSequenceSkipsUpdate verifies a nil update function skips the
// commit-and-push phase.
func TestExitSequenceSkipsUpdate(t *testing.T) {
	procs := &fakeProcManager{}
	exitSequence(config.Default(), procs, nil)

	if len(procs.calls) == 0 {
		t.Error("teardown steps did not run")
	}
}

// TestExitSequenceStepsAreIndependent verifies a failed step never stops
// the steps after it.
func TestExitSequenceStepsAreIndependent(t *testing.T) {
	procs := &fakeProcManager{
		killErr: errors.New("pgrep missing"),
		portErr: errors.New("lsof missing"),
	}

	exitSequence(config.Default(), procs, nil)

	want := []string{
		"kill-pattern gunicorn",
		"port-owner",
		"kill-pattern nodejs-app",
	}
	if len(procs.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", procs.calls, want)
	}
	for i, call := range procs.calls {
		if call != want[i] {
			t.Errorf("call %d = %q, want %q", i, call, want[i])
		}
	}
}

// TestExitSequenceNoPortOwner verifies nothing is killed when no process
// owns the port.
func TestExitSequenceNoPortOwner(t *testing.T) {
	procs := &fakeProcManager{portFound: false}

	exitSequence(config.Default(), procs, nil)

	for _, call := range procs.calls {
		if call == "kill-pid" {
			t.Error("Kill called even though no process owns the port")
		}
	}
}
