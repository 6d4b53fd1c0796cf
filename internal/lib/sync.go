// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Generated artifacts placed on every template branch.
const (
	descriptionFile = "README.md"
	ignoreFile      = ".gitignore"
)

// Run executes the whole pipeline for one invocation: locate the workspace,
// open a staging clone, mirror the template branch, regenerate the index.
// The staging directory is released on every exit path.
func Run(ctx context.Context, cfg Config) error {
	rep := NewReporter(cfg.Quiet)

	ws, err := LocateWorkspace(cfg.Workspace)
	if err != nil {
		return err
	}

	sc := SyncContext{
		Template:     cfg.TemplateName,
		RemoteURL:    cfg.RemoteURL,
		Workspace:    ws.Root,
		Devcontainer: ws.Devcontainer,
		Scripts:      ws.Scripts,
		Now:          time.Now,
	}

	rep.Stepf("Preparing staging clone of %s", sc.RemoteURL)
	st, err := OpenStaging(ctx, sc.RemoteURL)
	if err != nil {
		return err
	}
	defer st.Close()
	if st.Fresh {
		rep.Stepf("Remote has no content yet; the first push will create it")
	}

	return runPipeline(ctx, st.Client, sc, rep)
}

// runPipeline runs the synchronizer and the index regenerator against one
// repository client. Split from Run so the sequencing can be tested against
// an in-memory client.
func runPipeline(ctx context.Context, c RepoClient, sc SyncContext, rep *Reporter) error {
	rep.Stepf("Syncing template branch %s", sc.Template)
	res, err := SyncBranch(ctx, c, sc)
	if err != nil {
		rep.Failf("%s: sync failed", sc.Template)
		return err
	}
	switch {
	case res.UpToDate:
		rep.UpToDatef("%s: no changes to commit", res.Branch)
	case res.Created:
		rep.Donef("%s: created with %d file(s)", res.Branch, len(res.ChangedFiles))
	default:
		rep.Donef("%s: pushed %d changed file(s)", res.Branch, len(res.ChangedFiles))
	}

	rep.Stepf("Regenerating template index on %s", IndexBranch)
	ires, err := RegenerateIndex(ctx, c, sc)
	if err != nil {
		rep.Failf("%s: index regeneration failed", IndexBranch)
		if !res.UpToDate {
			// The template branch is already on the remote; the index stays
			// stale until the next successful sync rebuilds it.
			rep.Warnf("%s was pushed but the index was not regenerated", res.Branch)
		}
		return err
	}
	if ires.UpToDate {
		rep.UpToDatef("%s: no changes to commit", ires.Branch)
	} else {
		rep.Donef("%s: index updated", ires.Branch)
	}

	return nil
}

// SyncBranch mirrors the source subtrees onto the named template branch.
// After it returns, the branch on the remote holds exactly the two subtrees
// plus the generated ignore rules and description document. A commit and
// push happen only when the staged tree differs from the branch tip.
func SyncBranch(ctx context.Context, c RepoClient, sc SyncContext) (Result, error) {
	// The index branch never carries template files.
	if sc.Template == IndexBranch {
		return Result{}, usageErrorf("%s is the index branch and cannot be used as a template name", IndexBranch)
	}

	exists, err := c.RemoteBranchExists(ctx, sc.Template)
	if err != nil {
		return Result{}, err
	}

	if exists {
		if err := c.CheckoutBranch(ctx, sc.Template); err != nil {
			return Result{}, err
		}
	} else {
		// Templates never share ancestry with one another; a new branch
		// starts as a history-less root.
		if err := c.CreateRootBranch(sc.Template); err != nil {
			return Result{}, err
		}
	}

	prev, hadPrev, err := c.ReadFileAtHead(descriptionFile)
	if err != nil {
		return Result{}, err
	}

	// Full replace, never a merge: nothing orphaned from a previous sync
	// survives.
	if err := c.ClearWorktree(); err != nil {
		return Result{}, err
	}
	if err := c.CopyTree(sc.Devcontainer, DevcontainerDir); err != nil {
		return Result{}, fmt.Errorf("copying %s: %w", DevcontainerDir, err)
	}
	if err := c.CopyTree(sc.Scripts, ScriptsDir); err != nil {
		return Result{}, fmt.Errorf("copying %s: %w", ScriptsDir, err)
	}
	if err := c.WriteFile(ignoreFile, []byte(RenderIgnoreRules())); err != nil {
		return Result{}, err
	}

	desc := RenderDescription(DescriptionData{
		Branch:    sc.Template,
		RemoteURL: sc.RemoteURL,
		SyncedAt:  sc.Now(),
	})
	if hadPrev && descriptionsEquivalent(string(prev), desc) {
		// Only the timestamp would change; keep the recorded document so an
		// unchanged source tree stays a no-op.
		desc = string(prev)
	}
	if err := c.WriteFile(descriptionFile, []byte(desc)); err != nil {
		return Result{}, err
	}

	changed, err := c.StageAll()
	if err != nil {
		return Result{}, err
	}
	if len(changed) == 0 {
		return Result{Branch: sc.Template, Created: !exists, UpToDate: true}, nil
	}

	when := sc.Now()
	if err := c.Commit(syncCommitMessage(sc, changed, when), when); err != nil {
		return Result{}, err
	}
	if err := c.Push(ctx, sc.Template); err != nil {
		return Result{}, err
	}

	return Result{Branch: sc.Template, Created: !exists, ChangedFiles: changed}, nil
}

func syncCommitMessage(sc SyncContext, changed []string, when time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sync %s from %s at %s\n", sc.Template, sc.Workspace, when.UTC().Format(time.RFC3339))
	b.WriteString("\nChanged files:\n")
	for _, f := range changed {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	return b.String()
}
