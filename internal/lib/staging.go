// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chainguard-dev/clog"
	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
)

const stagingDirPrefix = "devcontainer-sync-"

// Staging is the disposable working copy all mutations run in. It is owned
// exclusively by one invocation; Close removes it and is meant to be
// deferred around the whole run so release happens on every exit path.
type Staging struct {
	Dir    string
	Client *GitClient

	// Fresh is true when the remote was empty or absent and the clone was
	// initialized locally instead; the first push then creates the remote
	// branch.
	Fresh bool
}

// OpenStaging allocates a unique temporary directory and populates it with a
// clone of the remote, or a fresh repository when the remote has no content
// yet. The remote is probed with a lightweight listing first so an empty
// remote does not turn into a clone failure.
func OpenStaging(ctx context.Context, remoteURL string) (*Staging, error) {
	log := clog.FromContext(ctx)

	dir, err := os.MkdirTemp("", stagingDirPrefix)
	if err != nil {
		return nil, fmt.Errorf("creating staging dir: %w", err)
	}

	hasContent, err := remoteHasContent(ctx, remoteURL)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	var repo *git.Repository
	if hasContent {
		log.Infof("Cloning %s into %s", remoteURL, dir)
		repo, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: remoteURL})
		if err != nil {
			os.RemoveAll(dir)
			return nil, remoteAccessError(fmt.Sprintf("cloning %s", remoteURL), err)
		}
	} else {
		log.Infof("Remote %s has no content yet, initializing fresh repository in %s", remoteURL, dir)
		repo, err = git.PlainInit(dir, false)
		if err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("initializing staging repository: %w", err)
		}
		_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: git.DefaultRemoteName,
			URLs: []string{remoteURL},
		})
		if err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("configuring origin: %w", err)
		}
	}

	client, err := newGitClient(repo)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	return &Staging{Dir: dir, Client: client, Fresh: !hasContent}, nil
}

// Close removes the staging directory. Safe to call more than once.
func (s *Staging) Close() {
	if s.Dir == "" {
		return
	}
	os.RemoveAll(s.Dir)
	s.Dir = ""
}

// remoteHasContent probes the remote with a detached listing. A missing or
// empty repository reports false; any other failure is a remote access
// error.
func remoteHasContent(ctx context.Context, remoteURL string) (bool, error) {
	rem := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{remoteURL},
	})

	refs, err := rem.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		if errors.Is(err, transport.ErrEmptyRemoteRepository) || errors.Is(err, transport.ErrRepositoryNotFound) {
			return false, nil
		}
		return false, remoteAccessError(fmt.Sprintf("probing remote %s", remoteURL), err)
	}
	return len(refs) > 0, nil
}
