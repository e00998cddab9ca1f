package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-nbt"
)

var (
	encodeOutput   string
	encodeCompress string
	encodeName     string
	encodeUnnamed  bool
)

func init() {
	cmd := newEncodeCmd()
	cmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&encodeCompress, "compress", "none", "Compression (none, gzip, zstd, lz4)")
	cmd.Flags().StringVar(&encodeName, "name", "", "Root name")
	cmd.Flags().BoolVar(&encodeUnnamed, "unnamed", false, "Write the root without a name field")
	rootCmd.AddCommand(cmd)
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <file.snbt>",
		Short: "Convert SNBT text to a binary NBT file",
		Long: `The encode command parses a value in text notation and writes it in the
binary format.

Example:
  nbt encode player.snbt -o player.dat --compress gzip
  echo '{a:1b}' | nbt encode - --unnamed > packet.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, args)
		},
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	c, err := nbt.ParseCompression(encodeCompress)
	if err != nil {
		return err
	}

	in, err := openInput(cmd, args[0])
	if err != nil {
		return err
	}
	text, err := io.ReadAll(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	v, err := nbt.ParseValue(string(text))
	if err != nil {
		return err
	}
	logger.Debug("parsed", "file", args[0], "tag", v.Tag())

	opts := []nbt.Option{nbt.Compress(c), nbt.RootName(encodeName)}
	if encodeUnnamed {
		opts = append(opts, nbt.Unnamed())
	}
	return writeOutput(cmd, encodeOutput, func(w io.Writer) error {
		return nbt.Write(w, v, opts...)
	})
}
