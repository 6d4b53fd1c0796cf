// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	gopath "path"
	"path/filepath"
	"sort"
	"time"
)

// fakeClient is an in-memory RepoClient. Branch content is modeled as
// path -> content maps; the remote is the committed-and-pushed view.
type fakeClient struct {
	remote map[string]map[string]string // branch -> tip content
	tree   map[string]string            // working tree
	tip    map[string]string            // current branch tip
	head   string
	unborn bool

	commits int
	pushes  int
	touched []string // branches checked out or created, in order

	// failPush, when set, is consulted before a push takes effect.
	failPush func(branch string) error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		remote: map[string]map[string]string{},
		tree:   map[string]string{},
		tip:    map[string]string{},
	}
}

func (f *fakeClient) ListRemoteBranches(context.Context) ([]string, error) {
	names := make([]string, 0, len(f.remote))
	for n := range f.remote {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeClient) RemoteBranchExists(_ context.Context, name string) (bool, error) {
	_, ok := f.remote[name]
	return ok, nil
}

func (f *fakeClient) CheckoutBranch(_ context.Context, name string) error {
	tip, ok := f.remote[name]
	if !ok {
		return fmt.Errorf("no branch %s", name)
	}
	f.head = name
	f.unborn = false
	f.tip = copyContent(tip)
	f.tree = copyContent(tip)
	f.touched = append(f.touched, name)
	return nil
}

func (f *fakeClient) CreateRootBranch(name string) error {
	f.head = name
	f.unborn = true
	f.tip = map[string]string{}
	f.touched = append(f.touched, name)
	return nil
}

func (f *fakeClient) ClearWorktree() error {
	f.tree = map[string]string{}
	return nil
}

func (f *fakeClient) CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		f.tree[gopath.Join(dst, filepath.ToSlash(rel))] = string(data)
		return nil
	})
}

func (f *fakeClient) WriteFile(path string, data []byte) error {
	f.tree[path] = string(data)
	return nil
}

func (f *fakeClient) ReadFileAtHead(path string) ([]byte, bool, error) {
	if f.unborn {
		return nil, false, nil
	}
	v, ok := f.tip[path]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (f *fakeClient) StageAll() ([]string, error) {
	set := map[string]bool{}
	for p, v := range f.tree {
		if tv, ok := f.tip[p]; !ok || tv != v {
			set[p] = true
		}
	}
	for p := range f.tip {
		if _, ok := f.tree[p]; !ok {
			set[p] = true
		}
	}
	changed := make([]string, 0, len(set))
	for p := range set {
		changed = append(changed, p)
	}
	sort.Strings(changed)
	return changed, nil
}

func (f *fakeClient) Commit(string, time.Time) error {
	f.tip = copyContent(f.tree)
	f.unborn = false
	f.commits++
	return nil
}

func (f *fakeClient) Push(_ context.Context, branch string) error {
	if f.failPush != nil {
		if err := f.failPush(branch); err != nil {
			return remoteAccessError(fmt.Sprintf("pushing %s", branch), err)
		}
	}
	f.remote[branch] = copyContent(f.tip)
	f.pushes++
	return nil
}

func copyContent(m map[string]string) map[string]string {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
