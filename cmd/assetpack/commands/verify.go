// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/assetpack/cmd/assetpack/cli"
	"github.com/bureau-foundation/assetpack/lib/embed"
)

type verifyParams struct {
	configParams
	targetParams
	Compression string `flag:"compression" desc:"format of the embedded array (default: from config)"`
}

func verifyCommand(env Environment) *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check that an embedded array matches its asset",
		Description: `Decode the array between the target's markers, decompress it, and
compare it with the asset. Exits 0 when they match and 1 when the array
is stale. Nothing is written.

Paths resolve the same way as for "embed".`,
		Usage: "assetpack verify [flags] [source] [destination]",
		Examples: []cli.Example{
			{
				Description: "Fail a build when Form.h is out of date",
				Command:     "assetpack verify --no-prompt",
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
			logger := newLogger(env, params.configParams).With("command", "verify")

			assetCodec, err := codecFor(cfg.CompressionFor(target), compressionParams{Compression: params.Compression})
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

			verification, err := embed.Verify(embed.Request{
				SourcePath:      source,
				DestinationPath: destination,
				Markers: embed.Markers{
					Header: target.HeaderMarker,
					Footer: target.FooterMarker,
				},
				Codec:  assetCodec,
				Logger: logger,
			})
			if err != nil {
				return categorize(err)
			}

			styles := cli.NewStyles(env.Stdout)
			if verification.Match() {
				fmt.Fprintf(env.Stdout, "%s %s matches %s %s\n",
					styles.Success("ok"),
					styles.Label(destination),
					styles.Label(source),
					styles.Muted("blake3:%s", verification.AssetDigest.Short()),
				)
				return nil
			}

			fmt.Fprintf(env.Stdout, "%s %s is stale: embedded %s (%s), asset %s (%s)\n",
				styles.Failure("mismatch"),
				styles.Label(destination),
				cli.Size(verification.EmbeddedSize),
				verification.EmbeddedDigest.Short(),
				cli.Size(verification.AssetSize),
				verification.AssetDigest.Short(),
			)
			return &cli.ExitError{Code: 1}
		},
	}
}
