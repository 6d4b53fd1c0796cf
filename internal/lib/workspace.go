// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"fmt"
	"os"
	"path/filepath"
)

// Names of the two source subtrees that make up a template.
const (
	DevcontainerDir = ".devcontainer"
	ScriptsDir      = "scripts"
)

// Workspace holds the resolved absolute paths of the template sources.
type Workspace struct {
	Root         string
	Devcontainer string
	Scripts      string
}

// LocateWorkspace resolves the source subtrees under root. An empty root
// means the directory containing the running executable, never the caller's
// working directory, so the command behaves the same from anywhere.
// A missing subtree is fatal and aborts before any remote interaction.
func LocateWorkspace(root string) (Workspace, error) {
	if root == "" {
		exe, err := os.Executable()
		if err != nil {
			return Workspace{}, fmt.Errorf("locating executable: %w", err)
		}
		root = filepath.Dir(exe)
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return Workspace{}, fmt.Errorf("resolving workspace root: %w", err)
	}

	ws := Workspace{
		Root:         root,
		Devcontainer: filepath.Join(root, DevcontainerDir),
		Scripts:      filepath.Join(root, ScriptsDir),
	}

	for _, dir := range []string{ws.Devcontainer, ws.Scripts} {
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return Workspace{}, missingSourceErrorf("source subtree %s not found in workspace %s", filepath.Base(dir), root)
			}
			return Workspace{}, fmt.Errorf("checking source subtree %s: %w", dir, err)
		}
		if !info.IsDir() {
			return Workspace{}, missingSourceErrorf("source %s is not a directory", dir)
		}
	}

	return ws, nil
}
