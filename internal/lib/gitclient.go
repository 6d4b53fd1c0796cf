// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/chainguard-dev/clog"
	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

const (
	commitAuthorName  = "devcontainer-templates"
	commitAuthorEmail = "devcontainer-templates@localhost"
)

// GitClient is the production RepoClient backed by a go-git clone.
type GitClient struct {
	repo *git.Repository
	wt   *git.Worktree
	root string
}

func newGitClient(repo *git.Repository) (*GitClient, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	return &GitClient{repo: repo, wt: wt, root: wt.Filesystem.Root()}, nil
}

// Root returns the working tree directory.
func (c *GitClient) Root() string {
	return c.root
}

func (c *GitClient) ListRemoteBranches(ctx context.Context) ([]string, error) {
	rem, err := c.repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return nil, fmt.Errorf("resolving remote: %w", err)
	}

	refs, err := rem.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		// An absent or empty remote simply has no branches yet; the first
		// push will create it.
		if errors.Is(err, transport.ErrEmptyRemoteRepository) || errors.Is(err, transport.ErrRepositoryNotFound) {
			return nil, nil
		}
		return nil, remoteAccessError("listing remote branches", err)
	}

	var branches []string
	for _, ref := range refs {
		if ref.Type() != plumbing.HashReference || !ref.Name().IsBranch() {
			continue
		}
		branches = append(branches, ref.Name().Short())
	}
	sort.Strings(branches)
	return branches, nil
}

func (c *GitClient) RemoteBranchExists(ctx context.Context, name string) (bool, error) {
	branches, err := c.ListRemoteBranches(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range branches {
		if b == name {
			return true, nil
		}
	}
	return false, nil
}

func (c *GitClient) CheckoutBranch(ctx context.Context, name string) error {
	clog.FromContext(ctx).Debugf("Checking out branch %s", name)

	branchRef := plumbing.NewBranchReferenceName(name)
	opts := &git.CheckoutOptions{Branch: branchRef, Force: true}

	if _, err := c.repo.Reference(branchRef, false); err != nil {
		// No local branch yet; start it at the remote-tracking tip the
		// clone fetched.
		remoteRef, err := c.repo.Reference(plumbing.NewRemoteReferenceName(git.DefaultRemoteName, name), true)
		if err != nil {
			return fmt.Errorf("resolving origin/%s: %w", name, err)
		}
		opts.Create = true
		opts.Hash = remoteRef.Hash()
	}

	if err := c.wt.Checkout(opts); err != nil {
		return fmt.Errorf("checking out %s: %w", name, err)
	}
	return nil
}

// CreateRootBranch points HEAD at an unborn branch. The next commit on it
// has no parent, so the branch never shares ancestry with any other.
func (c *GitClient) CreateRootBranch(name string) error {
	ref := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(name))
	if err := c.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("creating root branch %s: %w", name, err)
	}
	return nil
}

func (c *GitClient) ClearWorktree() error {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return fmt.Errorf("reading worktree: %w", err)
	}
	for _, e := range entries {
		if e.Name() == git.GitDirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.root, e.Name())); err != nil {
			return fmt.Errorf("clearing worktree entry %s: %w", e.Name(), err)
		}
	}
	return nil
}

// CopyTree copies files byte for byte rather than linking, so later edits to
// the source workspace never retroactively alter recorded history.
func (c *GitClient) CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(c.root, dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func (c *GitClient) WriteFile(path string, data []byte) error {
	target := filepath.Join(c.root, path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

func (c *GitClient) ReadFileAtHead(path string) ([]byte, bool, error) {
	head, err := c.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("resolving HEAD: %w", err)
	}

	commit, err := c.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, false, fmt.Errorf("reading tip commit: %w", err)
	}

	file, err := commit.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s at tip: %w", path, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, false, fmt.Errorf("reading %s at tip: %w", path, err)
	}
	return []byte(contents), true, nil
}

func (c *GitClient) StageAll() ([]string, error) {
	if err := c.wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return nil, fmt.Errorf("staging changes: %w", err)
	}

	status, err := c.wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	var changed []string
	for path, st := range status {
		if st.Staging == git.Unmodified && st.Worktree == git.Unmodified {
			continue
		}
		changed = append(changed, path)
	}
	sort.Strings(changed)
	return changed, nil
}

func (c *GitClient) Commit(message string, when time.Time) error {
	_, err := c.wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  commitAuthorName,
			Email: commitAuthorEmail,
			When:  when,
		},
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func (c *GitClient) Push(ctx context.Context, branch string) error {
	log := clog.FromContext(ctx)

	refSpec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	log.Infof("Pushing %s", refSpec)

	err := c.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	})
	if err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			log.Infof("Branch %s already up to date", branch)
			return nil
		}
		return remoteAccessError(fmt.Sprintf("pushing %s", branch), err)
	}
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
