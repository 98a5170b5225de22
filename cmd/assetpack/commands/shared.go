// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/bureau-foundation/assetpack/cmd/assetpack/cli"
	"github.com/bureau-foundation/assetpack/lib/codec"
	"github.com/bureau-foundation/assetpack/lib/config"
	"github.com/bureau-foundation/assetpack/lib/embed"
	"github.com/bureau-foundation/assetpack/lib/resolve"
)

// configParams selects the configuration file.
type configParams struct {
	Config  string `flag:"config,c" desc:"config file (default: $ASSETPACK_CONFIG, else built-in targets)"`
	Verbose bool   `flag:"verbose,v" desc:"log per-stage detail"`
}

// compressionParams override the configured compression.
type compressionParams struct {
	Compression string `flag:"compression" desc:"compression format: gzip, zstd, lz4, none (default: from config)"`
	Level       int    `flag:"level" desc:"compression level; 0 uses the format default"`
	Stamp       bool   `flag:"stamp" desc:"record the source name and mtime in the gzip header (output is no longer reproducible)"`
}

// targetParams pick the target and control path resolution.
type targetParams struct {
	Target   string `flag:"target,t" desc:"target name from the config (default: default_target)"`
	NoPrompt bool   `flag:"no-prompt" desc:"never ask for missing paths interactively"`
}

func loadConfig(params configParams) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if params.Config != "" {
		cfg, err = config.LoadFile(params.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(env Environment, params configParams) *slog.Logger {
	level := slog.LevelInfo
	if params.Verbose {
		level = slog.LevelDebug
	}
	return cli.NewLogger(env.Stderr, level)
}

// codecFor merges the configured compression with flag overrides.
func codecFor(settings config.CompressionConfig, params compressionParams) (codec.Codec, error) {
	formatName := settings.Format
	if params.Compression != "" {
		formatName = params.Compression
	}
	format, err := codec.ParseFormat(formatName)
	if err != nil {
		return codec.Codec{}, cli.Validation("%w (valid: %v)", err, codec.Formats())
	}

	level := settings.Level
	if params.Level != 0 {
		level = params.Level
	}

	return codec.Codec{
		Format: format,
		Level:  level,
		Stamp:  settings.Stamp || params.Stamp,
	}, nil
}

func layoutFor(cfg *config.Config) embed.Layout {
	return embed.Layout{
		RowWidth:   cfg.Layout.RowWidth,
		Indent:     cfg.Layout.Indent,
		LineEnding: cfg.Layout.LineEndingBytes(),
	}
}

// pathChain describes one path to resolve: the positional argument
// slot, the configured default, and where to look for it.
type pathChain struct {
	label     string
	argument  int
	fallback  string
	root      string
	recursive bool
}

// resolvePath runs argument, discovery, prompt, and default in that
// order and logs which provider answered.
func resolvePath(env Environment, args []string, chain pathChain, interactive bool, logger *slog.Logger) (string, error) {
	var discovery resolve.Provider
	if chain.root != "" && chain.fallback != "" {
		discovery = resolve.Discovery{
			Root:      chain.root,
			Filename:  filepath.Base(chain.fallback),
			Recursive: chain.recursive,
		}
	}

	prompt := resolve.Prompt{
		Label:      chain.label,
		Suggestion: chain.fallback,
		Output:     env.Stderr,
	}
	if interactive && env.promptInput != nil {
		prompt.Input = env.promptInput
	}

	resolution, err := resolve.Resolve(
		resolve.Argument(args, chain.argument),
		discovery,
		prompt,
		resolve.Default(chain.fallback),
	)
	if err != nil {
		if errors.Is(err, resolve.ErrUnresolved) {
			return "", cli.Validation("no %s supplied: pass it as an argument or configure a default (%w)", chain.label, err)
		}
		return "", cli.Internal("resolving %s: %w", chain.label, err)
	}

	logger.Debug("resolved path",
		"label", chain.label,
		"path", resolution.Value,
		"provider", resolution.Provider,
	)
	return resolution.Value, nil
}

// categorize attaches a cli category to errors coming out of the embed
// package, keeping the chain intact.
func categorize(err error) error {
	var (
		notFound *embed.MarkerNotFoundError
		order    *embed.MarkerOrderError
		tool     *cli.ToolError
	)
	switch {
	case errors.As(err, &tool):
		return err
	case errors.As(err, &notFound), errors.As(err, &order):
		return &cli.ToolError{Category: cli.CategoryNotFound, Err: err}
	case errors.Is(err, fs.ErrNotExist):
		return &cli.ToolError{Category: cli.CategoryNotFound, Err: err}
	default:
		return &cli.ToolError{Category: cli.CategoryInternal, Err: err}
	}
}
