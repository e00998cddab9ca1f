package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-nbt"
)

var (
	getIndent  int
	getUnnamed bool
	getType    bool
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().IntVar(&getIndent, "indent", 0, "Spaces per nesting level (0 for compact output)")
	cmd.Flags().BoolVar(&getUnnamed, "unnamed", false, "Input root has no name field")
	cmd.Flags().BoolVar(&getType, "type", false, "Print the tag name before the value")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Print one value from a binary NBT file",
		Long: `The get command walks a slash-separated path from the root and prints the
value found there. Path elements are compound keys, or indices into lists
and arrays.

Example:
  nbt get level.dat Data/LevelName
  nbt get player.dat Inventory/0/id --type`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args)
		},
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	var opts []nbt.Option
	if getUnnamed {
		opts = append(opts, nbt.Unnamed())
	}
	_, root, err := readTree(cmd, args[0], opts...)
	if err != nil {
		return err
	}
	v, err := walk(root, args[1])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if getType {
		if _, err := fmt.Fprintf(w, "%s ", v.Tag().TypeName()); err != nil {
			return err
		}
	}
	if err := nbt.Format(w, v, nbt.Indent(getIndent)); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// walk follows a slash-separated path of compound keys and list or array
// indices from v.
func walk(v nbt.Value, path string) (nbt.Value, error) {
	var walked []string
	for elem := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
		if elem == "" {
			continue
		}
		walked = append(walked, elem)
		at := strings.Join(walked, "/")

		if c, ok := v.(*nbt.Compound); ok {
			next, ok := c.Get(elem)
			if !ok {
				return nil, fmt.Errorf("%s: no such key", at)
			}
			v = next
			continue
		}

		i, err := strconv.Atoi(elem)
		if err != nil {
			return nil, fmt.Errorf("%s: %s is not a container", at, v.Tag())
		}
		n := length(v)
		if n < 0 {
			return nil, fmt.Errorf("%s: %s is not a container", at, v.Tag())
		}
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%s: index out of range [0,%d)", at, n)
		}
		switch x := v.(type) {
		case *nbt.List:
			v = x.At(i)
		case *nbt.ByteArray:
			v = nbt.Byte(x.At(i))
		case *nbt.IntArray:
			v = nbt.Int(x.At(i))
		case *nbt.LongArray:
			v = nbt.Long(x.At(i))
		}
	}
	return v, nil
}

// length returns the element count of a list or array, or -1.
func length(v nbt.Value) int {
	switch x := v.(type) {
	case *nbt.List:
		return x.Len()
	case *nbt.ByteArray:
		return x.Len()
	case *nbt.IntArray:
		return x.Len()
	case *nbt.LongArray:
		return x.Len()
	}
	return -1
}
