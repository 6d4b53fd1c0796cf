// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DescriptionData is everything the description document is rendered from.
type DescriptionData struct {
	Branch    string
	RemoteURL string
	SyncedAt  time.Time
}

// IndexData is everything the index document is rendered from. Branches must
// already be sorted and must not include the index branch itself.
type IndexData struct {
	RemoteURL string
	Branches  []string
}

const lastSyncedPrefix = "Last synced: "

// DisplayName renders a branch name for humans: hyphens become spaces and
// each word is capitalized, so "react-vite" reads "React Vite".
func DisplayName(branch string) string {
	words := strings.Split(branch, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// RenderDescription produces the README placed on a template branch.
func RenderDescription(d DescriptionData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s DevContainer Template\n\n", DisplayName(d.Branch))
	fmt.Fprintf(&b, "Reusable devcontainer scaffold for %s projects, maintained as the\n`%s` branch of this repository.\n\n", DisplayName(d.Branch), d.Branch)
	b.WriteString("## Usage\n\n")
	b.WriteString(cloneCommand(d.Branch, d.RemoteURL))
	b.WriteString("\nThe `.devcontainer/` directory configures the container; the bootstrap\nscripts live under `scripts/`.\n\n")
	b.WriteString("---\n")
	fmt.Fprintf(&b, "Remote: %s\n", d.RemoteURL)
	fmt.Fprintf(&b, "%s%s\n", lastSyncedPrefix, d.SyncedAt.UTC().Format(time.RFC3339))
	return b.String()
}

// RenderIgnoreRules produces the .gitignore placed on every template branch.
// The content is fixed so re-rendering is always byte-identical.
func RenderIgnoreRules() string {
	return strings.Join([]string{
		"node_modules/",
		"dist/",
		"build/",
		".DS_Store",
		".idea/",
		"*.log",
		".env",
		".env.local",
	}, "\n") + "\n"
}

// RenderIndex produces the README placed on the index branch. It is a pure
// function of the branch set and the remote URL: rendering twice with the
// same inputs yields byte-identical output.
func RenderIndex(d IndexData) string {
	var b strings.Builder
	b.WriteString("# DevContainer Templates\n\n")
	b.WriteString("Each template lives on its own branch with no shared history.\nClone just the branch you need:\n\n")

	if len(d.Branches) == 0 {
		b.WriteString("No templates yet.\n")
		return b.String()
	}

	for _, branch := range d.Branches {
		fmt.Fprintf(&b, "## %s\n\n", DisplayName(branch))
		b.WriteString(cloneCommand(branch, d.RemoteURL))
		b.WriteString("\n")
	}
	return b.String()
}

func cloneCommand(branch, remoteURL string) string {
	return fmt.Sprintf("```bash\ngit clone --branch %s --single-branch %s %s\n```\n", branch, remoteURL, branch)
}

// descriptionsEquivalent reports whether two rendered descriptions differ
// only in their last-synced timestamp line. The synchronizer keeps the old
// document in that case so an unchanged source tree stays a no-op.
func descriptionsEquivalent(a, b string) bool {
	return stripSyncedLine(a) == stripSyncedLine(b)
}

func stripSyncedLine(doc string) string {
	lines := strings.Split(doc, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, lastSyncedPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
