// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"errors"
	"fmt"
)

// Kind classifies the fatal failure modes of a sync run.
type Kind string

const (
	// KindUsage means the command line could not be resolved into a
	// template name and remote URL. Reported together with usage text.
	KindUsage Kind = "usage"

	// KindMissingSource means a required source subtree is absent from the
	// workspace. Raised before any remote interaction.
	KindMissingSource Kind = "missing source"

	// KindRemoteAccess means a clone, fetch or push against the remote
	// failed. Aborts the remaining pipeline steps; commits already pushed
	// stay pushed.
	KindRemoteAccess Kind = "remote access"
)

// Error is the standard error type for sync failures.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func usageErrorf(format string, a ...any) error {
	return &Error{Kind: KindUsage, Msg: fmt.Sprintf(format, a...)}
}

func missingSourceErrorf(format string, a ...any) error {
	return &Error{Kind: KindMissingSource, Msg: fmt.Sprintf(format, a...)}
}

func remoteAccessError(msg string, cause error) error {
	return &Error{Kind: KindRemoteAccess, Msg: msg, Cause: cause}
}

// KindOf returns the Kind of err, or the empty string for errors that did
// not originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsUsage reports whether err is a usage error, so main can print the usage
// text alongside it.
func IsUsage(err error) bool {
	return KindOf(err) == KindUsage
}

// ExitCode maps an error to the process exit status: 0 for nil (including
// the no-op outcome, which is not an error), 1 for every fatal error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
