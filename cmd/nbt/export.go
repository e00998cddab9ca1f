package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-nbt"
)

var (
	exportFormat  string
	exportOutput  string
	exportUnnamed bool
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, yaml, cbor)")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&exportUnnamed, "unnamed", false, "Input root has no name field")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export a binary NBT file as JSON, YAML or CBOR",
		Long: `The export command converts the tree in a binary NBT file to plain data:
compounds become objects, lists and arrays become sequences and numbers lose
their NBT type. The conversion is one way.

Example:
  nbt export level.dat
  nbt export level.dat --format yaml -o level.yaml
  nbt export level.dat --format cbor -o level.cbor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args)
		},
	}
}

// cborMode encodes maps with sorted keys so the same tree always produces
// the same bytes.
var cborMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("nbt: CBOR encoder initialization failed: " + err.Error())
	}
	return em
}()

func runExport(cmd *cobra.Command, args []string) error {
	var encode func(io.Writer, any) error
	switch exportFormat {
	case "json":
		encode = func(w io.Writer, x any) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(x)
		}
	case "yaml":
		encode = func(w io.Writer, x any) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(x); err != nil {
				return err
			}
			return enc.Close()
		}
	case "cbor":
		encode = func(w io.Writer, x any) error {
			return cborMode.NewEncoder(w).Encode(x)
		}
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or cbor)", exportFormat)
	}

	var opts []nbt.Option
	if exportUnnamed {
		opts = append(opts, nbt.Unnamed())
	}
	_, v, err := readTree(cmd, args[0], opts...)
	if err != nil {
		return err
	}
	return writeOutput(cmd, exportOutput, func(w io.Writer) error {
		if err := encode(w, plain(v)); err != nil {
			return fmt.Errorf("failed to encode %s: %w", exportFormat, err)
		}
		return nil
	})
}

// plain is nbt.Revert with byte arrays turned into signed numbers, which
// every output format writes as a sequence rather than as binary data.
func plain(v nbt.Value) any {
	switch x := v.(type) {
	case *nbt.ByteArray:
		out := make([]int8, x.Len())
		for i := range out {
			out[i] = x.At(i)
		}
		return out
	case *nbt.List:
		out := make([]any, 0, x.Len())
		for _, e := range x.All() {
			out = append(out, plain(e))
		}
		return out
	case *nbt.Compound:
		out := make(map[string]any, x.Len())
		for k, e := range x.All() {
			out[k] = plain(e)
		}
		return out
	}
	return nbt.Revert(v)
}
