// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import "time"

// IndexBranch is the branch carrying the generated template index. Every
// other branch on the remote is a template.
const IndexBranch = "main"

// DefaultRemoteURL is used when no remote is given on the command line or
// via the environment.
const DefaultRemoteURL = "git@github.com:jcesarprog/devcontainer-templates.git"

// Config is the raw invocation configuration assembled in main.
type Config struct {
	TemplateName string
	RemoteURL    string
	Workspace    string // source workspace root; empty means "next to the executable"
	Quiet        bool
}

// SyncContext is the immutable resolved input for one run. It is built once
// after argument and workspace resolution and threaded through the pipeline;
// nothing downstream consults ambient process state.
type SyncContext struct {
	Template     string
	RemoteURL    string
	Workspace    string // resolved workspace root, for reporting
	Devcontainer string // absolute path of the .devcontainer source subtree
	Scripts      string // absolute path of the scripts source subtree
	Now          func() time.Time
}

// Result describes what one synchronization step did.
type Result struct {
	Branch       string
	Created      bool     // branch did not exist on the remote before this run
	UpToDate     bool     // staged tree matched the branch tip; nothing committed or pushed
	ChangedFiles []string // staged paths that differed from the tip
}
