package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-nbt"
)

var (
	recompressOutput   string
	recompressCompress string
	recompressUnnamed  bool
)

func init() {
	cmd := newRecompressCmd()
	cmd.Flags().StringVarP(&recompressOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&recompressCompress, "compress", "gzip", "Compression (none, gzip, zstd, lz4)")
	cmd.Flags().BoolVar(&recompressUnnamed, "unnamed", false, "Root has no name field")
	rootCmd.AddCommand(cmd)
}

func newRecompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompress <file>",
		Short: "Rewrite a binary NBT file with different compression",
		Long: `The recompress command decodes a binary NBT file and writes the same tree,
root name included, with the requested compression.

Example:
  nbt recompress level.dat -o level.zst --compress zstd
  nbt recompress level.dat -o level.raw --compress none`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecompress(cmd, args)
		},
	}
}

func runRecompress(cmd *cobra.Command, args []string) error {
	c, err := nbt.ParseCompression(recompressCompress)
	if err != nil {
		return err
	}
	var opts []nbt.Option
	if recompressUnnamed {
		opts = append(opts, nbt.Unnamed())
	}
	name, v, err := readTree(cmd, args[0], opts...)
	if err != nil {
		return err
	}

	if !recompressUnnamed {
		opts = append(opts, nbt.RootName(name))
	}
	opts = append(opts, nbt.Compress(c))
	logger.Debug("writing", "compression", c)
	return writeOutput(cmd, recompressOutput, func(w io.Writer) error {
		return nbt.Write(w, v, opts...)
	})
}
