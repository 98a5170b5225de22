// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/bureau-foundation/assetpack/cmd/assetpack/cli"
	"github.com/bureau-foundation/assetpack/lib/embed"
)

type embedParams struct {
	configParams
	targetParams
	compressionParams
	Manifest string `flag:"manifest,m" desc:"also write a CBOR manifest of the embedding to this file"`
}

func embedCommand(env Environment) *cli.Command {
	var params embedParams

	return &cli.Command{
		Name:    "embed",
		Summary: "Compress an asset into the marked array of a source file",
		Description: `Compress an asset and write it as a hex byte array between the
target's header and footer markers in the destination file.

Each path is taken from, in order: the positional argument, a search of
the target's discovery root for the conventional file name, an
interactive prompt (only when stdin is a terminal), and the target's
configured default.

The destination is rewritten in one step. If either marker is missing
the file is left untouched.`,
		Usage: "assetpack embed [flags] [source] [destination]",
		Examples: []cli.Example{
			{
				Description: "Pack the web UI script into Form.h using the built-in paths",
				Command:     "assetpack embed",
			},
			{
				Description: "Pack explicit files",
				Command:     "assetpack embed ../RTK_Surveyor/AP-Config/src/main.js ../RTK_Surveyor/Form.h",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 2 {
				return cli.Validation("expected at most 2 arguments (source, destination), got %d", len(args))
			}

			cfg, err := loadConfig(params.configParams)
			if err != nil {
				return err
			}
			target, err := cfg.Target(params.Target)
			if err != nil {
				return cli.Validation("%w", err)
			}
			targetName := params.Target
			if targetName == "" {
				targetName = cfg.DefaultTarget
			}

			logger := newLogger(env, params.configParams).With(
				"command", "embed",
				"target", targetName,
			)

			assetCodec, err := codecFor(cfg.CompressionFor(target), params.compressionParams)
			if err != nil {
				return err
			}

			interactive := !params.NoPrompt
			source, err := resolvePath(env, args, pathChain{
				label:     "source filename",
				argument:  0,
				fallback:  target.Source,
				root:      target.Discovery.SourceRoot,
				recursive: target.Discovery.Recursive,
			}, interactive, logger)
			if err != nil {
				return err
			}
			destination, err := resolvePath(env, args, pathChain{
				label:     "destination filename",
				argument:  1,
				fallback:  target.Destination,
				root:      target.Discovery.DestinationRoot,
				recursive: target.Discovery.Recursive,
			}, interactive, logger)
			if err != nil {
				return err
			}

			request := embed.Request{
				SourcePath:      source,
				DestinationPath: destination,
				Markers: embed.Markers{
					Header: target.HeaderMarker,
					Footer: target.FooterMarker,
				},
				Codec:  assetCodec,
				Layout: layoutFor(cfg),
				Logger: logger,
			}
			result, err := embed.Embed(request)
			if err != nil {
				return categorize(err)
			}
			if params.Manifest != "" {
				if err := embed.WriteManifest(params.Manifest, embed.NewManifest(request, result)); err != nil {
					return cli.Internal("writing manifest: %w", err)
				}
				logger.Debug("wrote manifest", "path", params.Manifest)
			}

			styles := cli.NewStyles(env.Stdout)
			outcome := "embedded"
			if !result.Changed {
				outcome = "unchanged"
			}
			fmt.Fprintf(env.Stdout, "%s %s into %s: %s -> %s %s, %d rows %s\n",
				styles.Success("%s", outcome),
				styles.Label(filepath.Base(source)),
				styles.Label(destination),
				cli.Size(result.AssetSize),
				cli.Size(result.PayloadSize),
				result.Format,
				result.Rows,
				styles.Muted("blake3:%s", result.Digest.Short()),
			)
			return nil
		},
	}
}
