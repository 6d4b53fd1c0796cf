// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"context"
	"time"
)

// RepoClient is the narrow repository surface the synchronizer and index
// regenerator run against. The production implementation wraps a go-git
// clone in the staging directory; tests substitute an in-memory fake so the
// algorithms can be exercised without a live remote.
type RepoClient interface {
	// ListRemoteBranches returns the names of all branches currently on the
	// remote, sorted, excluding symbolic refs such as HEAD.
	ListRemoteBranches(ctx context.Context) ([]string, error)

	// RemoteBranchExists reports whether the named branch exists on the remote.
	RemoteBranchExists(ctx context.Context, name string) (bool, error)

	// CheckoutBranch makes name the current branch and resets the working
	// tree to its tip (the remote-tracking tip when the branch is not yet
	// local).
	CheckoutBranch(ctx context.Context, name string) error

	// CreateRootBranch points HEAD at a branch with no commits and no
	// ancestry, so the first commit on it becomes a history-less root.
	CreateRootBranch(name string) error

	// ClearWorktree removes every entry from the working tree except the
	// repository metadata. Deletions become visible to StageAll.
	ClearWorktree() error

	// CopyTree physically copies the file tree rooted at src into dst,
	// relative to the working tree root.
	CopyTree(src, dst string) error

	// WriteFile writes data to path relative to the working tree root.
	WriteFile(path string, data []byte) error

	// ReadFileAtHead returns the content of path at the current branch tip.
	// ok is false when the branch has no commits or the file is absent.
	ReadFileAtHead(path string) (data []byte, ok bool, err error)

	// StageAll stages every addition, modification and deletion and returns
	// the sorted list of paths that differ from the branch tip. An empty
	// list means the staged tree is identical to the tip.
	StageAll() ([]string, error)

	// Commit records the staged tree on the current branch.
	Commit(message string, when time.Time) error

	// Push publishes the named branch to the remote, creating it there on
	// first push.
	Push(ctx context.Context, branch string) error
}
