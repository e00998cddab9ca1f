package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-nbt"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// logger writes diagnostics to stderr. It discards everything until the
// root command has parsed its flags.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var rootCmd = &cobra.Command{
	Use:   "nbt",
	Short: "Inspect and convert NBT files",
	Long: `nbt reads and writes files in the binary NBT format and its text
notation (SNBT). Compressed input (gzip, zstd, LZ4) is detected automatically.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func setupLogger(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		w = io.Discard
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openInput opens path for reading; "-" is standard input.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

// writeOutput calls write with the file at path, or with the command's
// standard output when path is empty or "-". A file is removed again if
// write fails.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return write(f)
}

// readTree decodes the binary file at path.
func readTree(cmd *cobra.Command, path string, opts ...nbt.Option) (string, nbt.Value, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return "", nil, err
	}
	defer in.Close()

	d := nbt.NewDecoder(in, opts...)
	defer d.Close()
	c, err := d.Compression()
	if err != nil {
		return "", nil, err
	}
	name, v, err := d.DecodeNamed()
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	logger.Debug("decoded", "file", path, "compression", c, "name", name, "tag", v.Tag())
	if n := d.LongStrings(); n > 0 {
		logger.Warn("strings over 32767 bytes may not load in other readers", "file", path, "count", n)
	}
	return name, v, nil
}
