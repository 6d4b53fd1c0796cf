// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"context"
	"fmt"
	"time"
)

// RegenerateIndex rebuilds the index document on the index branch from the
// live set of remote branches. The document is a pure function of that set
// and the remote URL, so regenerating with no branch change yields
// byte-identical output and no commit.
func RegenerateIndex(ctx context.Context, c RepoClient, sc SyncContext) (Result, error) {
	branches, err := c.ListRemoteBranches(ctx)
	if err != nil {
		return Result{}, err
	}

	var templates []string
	hasIndex := false
	for _, b := range branches {
		if b == IndexBranch {
			hasIndex = true
			continue
		}
		templates = append(templates, b)
	}

	if hasIndex {
		if err := c.CheckoutBranch(ctx, IndexBranch); err != nil {
			return Result{}, err
		}
	} else {
		if err := c.CreateRootBranch(IndexBranch); err != nil {
			return Result{}, err
		}
	}

	// The index branch carries the listing document and nothing else.
	if err := c.ClearWorktree(); err != nil {
		return Result{}, err
	}
	doc := RenderIndex(IndexData{RemoteURL: sc.RemoteURL, Branches: templates})
	if err := c.WriteFile(descriptionFile, []byte(doc)); err != nil {
		return Result{}, err
	}

	changed, err := c.StageAll()
	if err != nil {
		return Result{}, err
	}
	if len(changed) == 0 {
		return Result{Branch: IndexBranch, Created: !hasIndex, UpToDate: true}, nil
	}

	when := sc.Now()
	msg := indexCommitMessage(len(templates), when)
	if err := c.Commit(msg, when); err != nil {
		return Result{}, err
	}
	if err := c.Push(ctx, IndexBranch); err != nil {
		return Result{}, err
	}

	return Result{Branch: IndexBranch, Created: !hasIndex, ChangedFiles: changed}, nil
}

func indexCommitMessage(templates int, when time.Time) string {
	return fmt.Sprintf("Regenerate template index (%d templates) at %s", templates, when.UTC().Format(time.RFC3339))
}
