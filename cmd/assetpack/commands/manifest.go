// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/assetpack/cmd/assetpack/cli"
	"github.com/bureau-foundation/assetpack/lib/codec"
	"github.com/bureau-foundation/assetpack/lib/embed"
)

type manifestParams struct {
	Check bool `flag:"check" desc:"exit 1 when the recorded asset has changed since the embedding"`
}

func manifestCommand(env Environment) *cli.Command {
	var params manifestParams

	return &cli.Command{
		Name:    "manifest",
		Summary: "Show or check a manifest written by embed --manifest",
		Description: `Print a manifest in CBOR diagnostic notation. With --check, hash the
recorded asset and exit 1 if it no longer matches the digest recorded
at embedding time. Unlike verify, --check never opens the destination.`,
		Usage: "assetpack manifest [--check] <manifest>",
		Examples: []cli.Example{
			{
				Description: "Decide in a build rule whether Form.h needs regenerating",
				Command:     "assetpack manifest --check build/main_js.manifest || assetpack embed -m build/main_js.manifest",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly 1 argument (manifest), got %d", len(args))
			}
			path := args[0]

			manifest, err := embed.ReadManifest(path)
			if err != nil {
				return categorize(err)
			}

			if !params.Check {
				data, err := os.ReadFile(path)
				if err != nil {
					return categorize(err)
				}
				diagnostic, err := codec.DiagnoseRecord(data)
				if err != nil {
					return cli.Internal("rendering %s: %w", path, err)
				}
				fmt.Fprintln(env.Stdout, diagnostic)
				return nil
			}

			current, err := manifest.Current()
			if err != nil {
				return categorize(err)
			}
			styles := cli.NewStyles(env.Stdout)
			if current {
				fmt.Fprintf(env.Stdout, "%s %s is current %s\n",
					styles.Success("ok"),
					styles.Label(manifest.Source),
					styles.Muted("blake3:%s", manifest.AssetDigest.Short()),
				)
				return nil
			}
			fmt.Fprintf(env.Stdout, "%s %s changed since it was embedded into %s\n",
				styles.Failure("stale"),
				styles.Label(manifest.Source),
				styles.Label(manifest.Destination),
			)
			return &cli.ExitError{Code: 1}
		},
	}
}
