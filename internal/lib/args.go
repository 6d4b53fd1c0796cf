// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import "strings"

// ResolveArgs turns the raw positional arguments into a (templateName,
// remoteURL) pair. Two orderings are accepted: the current one,
// "<name> [url]", and the legacy one, "<url> <name>". The legacy form is
// detected by the first token carrying a URI scheme marker or being an
// scp-like git address. The remote defaults to defaultRemote when omitted.
// The index branch name is not a valid template name.
func ResolveArgs(args []string, defaultRemote string) (templateName, remoteURL string, err error) {
	templateName, remoteURL, err = resolveArgs(args, defaultRemote)
	if err != nil {
		return "", "", err
	}
	if templateName == IndexBranch {
		return "", "", usageErrorf("%s is the index branch and cannot be used as a template name", IndexBranch)
	}
	return templateName, remoteURL, nil
}

func resolveArgs(args []string, defaultRemote string) (templateName, remoteURL string, err error) {
	switch len(args) {
	case 0:
		return "", "", usageErrorf("template name is required")
	case 1:
		if looksLikeRemoteURL(args[0]) {
			return "", "", usageErrorf("template name is required, got only a remote URL %q", args[0])
		}
		return args[0], defaultRemote, nil
	case 2:
		first, second := args[0], args[1]
		if looksLikeRemoteURL(first) {
			if looksLikeRemoteURL(second) {
				return "", "", usageErrorf("expected a template name, got two remote URLs")
			}
			// Legacy ordering: URL first, name second.
			return second, first, nil
		}
		return first, second, nil
	default:
		return "", "", usageErrorf("too many arguments")
	}
}

// looksLikeRemoteURL reports whether s should be treated as a remote URL
// rather than a template name: either it carries a URI scheme (https://,
// ssh://, file://, ...) or it is an scp-like address such as
// git@github.com:owner/repo.git.
func looksLikeRemoteURL(s string) bool {
	if strings.Contains(s, "://") {
		return true
	}
	at := strings.Index(s, "@")
	colon := strings.Index(s, ":")
	return at > 0 && colon > at
}
