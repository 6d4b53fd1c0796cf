// Copyright 2026 The devcontainer-templates authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jcesarprog/devcontainer-templates/internal/lib"
	"github.com/sethvargo/go-envconfig"
)

const usage = `usage: sync <template-name> [remote-url]
       sync <remote-url> <template-name>   (legacy ordering)

Mirrors the workspace's .devcontainer/ and scripts/ subtrees onto the named
template branch of the remote repository, then regenerates the template
index on the main branch.

Flags:
  -quiet          suppress all output
  -workspace DIR  source workspace root (default: the executable's directory)

Optional environment:
  DEVCTL_REMOTE   overrides the default remote URL
  DEVCTL_QUIET    same as -quiet
`

type envConfig struct {
	Remote string `env:"DEVCTL_REMOTE"`
	Quiet  bool   `env:"DEVCTL_QUIET"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		if lib.IsUsage(err) {
			fmt.Fprint(os.Stderr, usage)
		}
		os.Exit(lib.ExitCode(err))
	}
}

func run(ctx context.Context) error {
	var cfg lib.Config

	flag.BoolVar(&cfg.Quiet, "quiet", false, "suppress all output")
	flag.StringVar(&cfg.Workspace, "workspace", "", "source workspace root")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	var env envConfig
	if err := envconfig.Process(ctx, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if env.Quiet {
		cfg.Quiet = true
	}

	defaultRemote := lib.DefaultRemoteURL
	if env.Remote != "" {
		defaultRemote = env.Remote
	}

	name, remote, err := lib.ResolveArgs(flag.Args(), defaultRemote)
	if err != nil {
		return err
	}
	cfg.TemplateName = name
	cfg.RemoteURL = remote

	return lib.Run(ctx, cfg)
}
