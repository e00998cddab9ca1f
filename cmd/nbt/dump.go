package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-nbt"
)

var (
	dumpIndent  int
	dumpUnnamed bool
	dumpName    bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpIndent, "indent", 2, "Spaces per nesting level (0 for compact output)")
	cmd.Flags().BoolVar(&dumpUnnamed, "unnamed", false, "Input root has no name field")
	cmd.Flags().BoolVar(&dumpName, "name", false, "Print the root name before the value")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a binary NBT file as SNBT",
		Long: `The dump command decodes a binary NBT file, compressed or not, and
prints it in text notation.

Example:
  nbt dump level.dat
  nbt dump --indent 0 player.dat
  nbt dump --unnamed packet.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args)
		},
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	var opts []nbt.Option
	if dumpUnnamed {
		opts = append(opts, nbt.Unnamed())
	}
	name, v, err := readTree(cmd, args[0], opts...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if dumpName && !dumpUnnamed {
		if _, err := fmt.Fprintf(w, "%s: ", nbt.String(name)); err != nil {
			return err
		}
	}
	if err := nbt.Format(w, v, nbt.Indent(dumpIndent)); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
