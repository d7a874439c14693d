package main

import (
	"context"
	"errors"
	"testing"
)

// Checkout completes fakeGit for the rollback sequence.
func (f *fakeGit) Checkout(ctx context.Context, branch string) error {
	return f.step("checkout " + branch)
}

// fakeBranchLoader serves a canned cache record.
type fakeBranchLoader struct {
	branch string
	ok     bool
}

func (f *fakeBranchLoader) Load() (string, bool) { return f.branch, f.ok }

// TestRollbackSequenceEmptyCache verifies an empty cache is reported and
// no git operation is issued.
func TestRollbackSequenceEmptyCache(t *testing.T) {
	g := &fakeGit{}

	if err := rollbackSequence(context.Background(), &fakeBranchLoader{}, g); err != nil {
		t.Fatalf("rollbackSequence() error = %v", err)
	}

	if len(g.ops) != 0 {
		t.Errorf("git ops = %v, want none for an empty cache", g.ops)
	}
}

// TestRollbackSequenceCachedBranch verifies the cached branch is checked
// out and then pulled, in that order.
func TestRollbackSequenceCachedBranch(t *testing.T) {
	g := &fakeGit{}
	store := &fakeBranchLoader{branch: "feature-x", ok: true}

	if err := rollbackSequence(context.Background(), store, g); err != nil {
		t.Fatalf("rollbackSequence() error = %v", err)
	}

	want := []string{"checkout feature-x", "pull feature-x"}
	if len(g.ops) != len(want) {
		t.Fatalf("git ops = %v, want %v", g.ops, want)
	}
	for i, op := range g.ops {
		if op != want[i] {
			t.Errorf("op %d = %q, want %q", i, op, want[i])
		}
	}
}

// TestRollbackSequenceCheckoutFailure verifies a failed checkout stops
// the sequence before the pull.
func TestRollbackSequenceCheckoutFailure(t *testing.T) {
	g := &fakeGit{fail: map[string]error{"checkout feature-x": errors.New("local changes would be overwritten")}}
	store := &fakeBranchLoader{branch: "feature-x", ok: true}

	if err := rollbackSequence(context.Background(), store, g); err == nil {
		t.Fatal("rollbackSequence() error = nil, want checkout error")
	}

	for _, op := range g.ops {
		if op == "pull feature-x" {
			t.Error("pull issued after a failed checkout")
		}
	}
}
