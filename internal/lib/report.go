// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package lib

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter writes color-coded status lines per pipeline step.
type Reporter struct {
	out io.Writer
}

func NewReporter(quiet bool) *Reporter {
	out := io.Writer(os.Stderr)
	if quiet {
		out = io.Discard
	}
	return &Reporter{out: out}
}

// Stepf announces a pipeline step.
func (r *Reporter) Stepf(format string, a ...any) {
	fmt.Fprintf(r.out, "%s %s\n", color.CyanString("==>"), fmt.Sprintf(format, a...))
}

// Donef reports a step that mutated the remote.
func (r *Reporter) Donef(format string, a ...any) {
	fmt.Fprintf(r.out, "%s %s\n", color.GreenString("ok"), fmt.Sprintf(format, a...))
}

// UpToDatef reports the no-op outcome.
func (r *Reporter) UpToDatef(format string, a ...any) {
	fmt.Fprintf(r.out, "%s %s\n", color.YellowString("up to date"), fmt.Sprintf(format, a...))
}

// Warnf reports a non-fatal anomaly, such as a stale index after a partial
// failure.
func (r *Reporter) Warnf(format string, a ...any) {
	fmt.Fprintf(r.out, "%s %s\n", color.YellowString("warning:"), fmt.Sprintf(format, a...))
}

// Failf reports a step that failed.
func (r *Reporter) Failf(format string, a ...any) {
	fmt.Fprintf(r.out, "%s %s\n", color.RedString("failed"), fmt.Sprintf(format, a...))
}
