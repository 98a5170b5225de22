// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/assetpack/cmd/assetpack/cli"
	"github.com/bureau-foundation/assetpack/lib/embed"
)

type hexParams struct {
	configParams
	compressionParams
	Output   string `flag:"output,o" desc:"output file (default: <source>.gzip_hex for gzip)"`
	NoPrompt bool   `flag:"no-prompt" desc:"never ask for the source interactively"`
}

func hexCommand(env Environment) *cli.Command {
	var params hexParams

	return &cli.Command{
		Name:    "hex",
		Summary: "Compress an asset into a standalone hex array file",
		Description: `Compress an asset and write only the rendered array rows to a file of
their own, for pasting into a source file by hand. Images such as the
setup page logo are packed this way.

The output defaults to the source path with ".<format>_hex" appended:
rtk-setup.png becomes rtk-setup.png.gzip_hex.`,
		Usage: "assetpack hex [flags] [source]",
		Examples: []cli.Example{
			{
				Description: "Convert the setup page logo",
				Command:     "assetpack hex ../RTK_Surveyor/AP-Config/src/rtk-setup.png",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 1 {
				return cli.Validation("expected at most 1 argument (source), got %d", len(args))
			}

			cfg, err := loadConfig(params.configParams)
			if err != nil {
				return err
			}
			logger := newLogger(env, params.configParams).With("command", "hex")

			assetCodec, err := codecFor(cfg.Compression, params.compressionParams)
			if err != nil {
				return err
			}

			source, err := resolvePath(env, args, pathChain{
				label:    "source filename",
				argument: 0,
			}, !params.NoPrompt, logger)
			if err != nil {
				return err
			}

			result, outputPath, err := embed.WriteHexFile(embed.HexRequest{
				SourcePath: source,
				OutputPath: params.Output,
				Codec:      assetCodec,
				Layout:     layoutFor(cfg),
				Logger:     logger,
			})
			if err != nil {
				return categorize(err)
			}

			styles := cli.NewStyles(env.Stdout)
			fmt.Fprintf(env.Stdout, "%s %s: %s -> %s %s, %d rows\n",
				styles.Success("wrote"),
				styles.Label(outputPath),
				cli.Size(result.AssetSize),
				cli.Size(result.PayloadSize),
				result.Format,
				result.Rows,
			)
			return nil
		},
	}
}
