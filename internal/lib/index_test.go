// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func indexSyncContext(clock *fakeClock) SyncContext {
	return SyncContext{
		Template:  "react-vite",
		RemoteURL: "https://example.com/templates.git",
		Now:       clock.Now,
	}
}

func TestRegenerateIndexCompleteness(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	sc := indexSyncContext(clock)

	f := newFakeClient()
	f.remote["zoo-keeper"] = map[string]string{"README.md": "x"}
	f.remote["alpha"] = map[string]string{"README.md": "y"}
	f.remote[IndexBranch] = map[string]string{"README.md": "stale"}

	res, err := RegenerateIndex(ctx, f, sc)
	if err != nil {
		t.Fatalf("RegenerateIndex: %v", err)
	}
	if res.UpToDate {
		t.Fatal("stale index should have been rewritten")
	}

	doc := f.remote[IndexBranch]["README.md"]
	if got, want := strings.Count(doc, "## "), 2; got != want {
		t.Fatalf("index has %d sections, want %d:\n%s", got, want, doc)
	}
	// Lexicographic order, and no section for the index branch itself.
	alpha, zoo := strings.Index(doc, "## Alpha"), strings.Index(doc, "## Zoo Keeper")
	if alpha < 0 || zoo < 0 || alpha > zoo {
		t.Errorf("sections missing or out of order:\n%s", doc)
	}
	if strings.Contains(doc, "## Main") {
		t.Errorf("index lists its own branch:\n%s", doc)
	}
}

func TestRegenerateIndexEmptyRemote(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}

	f := newFakeClient()
	res, err := RegenerateIndex(ctx, f, indexSyncContext(clock))
	if err != nil {
		t.Fatalf("RegenerateIndex: %v", err)
	}
	if !res.Created {
		t.Error("index branch should have been created as a root")
	}
	if !strings.Contains(f.remote[IndexBranch]["README.md"], "No templates yet.") {
		t.Errorf("placeholder missing:\n%s", f.remote[IndexBranch]["README.md"])
	}
}

func TestRegenerateIndexNoChange(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	sc := indexSyncContext(clock)

	f := newFakeClient()
	f.remote["alpha"] = map[string]string{"README.md": "y"}
	f.remote[IndexBranch] = map[string]string{
		"README.md": RenderIndex(IndexData{RemoteURL: sc.RemoteURL, Branches: []string{"alpha"}}),
	}

	res, err := RegenerateIndex(ctx, f, sc)
	if err != nil {
		t.Fatalf("RegenerateIndex: %v", err)
	}
	if !res.UpToDate {
		t.Errorf("unchanged branch set should be a no-op, got %+v", res)
	}
	if f.pushes != 0 || f.commits != 0 {
		t.Errorf("no-op regeneration made commits=%d pushes=%d", f.commits, f.pushes)
	}
}

func TestIndexBranchCarriesOnlyTheDocument(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	sc := testSyncContext(t, writeWorkspace(t), clock)
	f := newFakeClient()

	if _, err := SyncBranch(ctx, f, sc); err != nil {
		t.Fatalf("SyncBranch: %v", err)
	}
	if _, err := RegenerateIndex(ctx, f, sc); err != nil {
		t.Fatalf("RegenerateIndex: %v", err)
	}

	if diff := cmp.Diff([]string{"README.md"}, branchFiles(t, f, IndexBranch)); diff != "" {
		t.Errorf("index branch content mismatch (-want +got):\n%s", diff)
	}
}
