// Package testutil gives tests access to shared fixture documents.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"testing"
)

// TestdataFS holds the embedded fixture documents.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded fixture.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// SNBT returns an embedded fixture as text, failing the test if it is
// missing.
func SNBT(tb testing.TB, name string) string {
	tb.Helper()
	data, err := ReadTestData(name)
	if err != nil {
		tb.Fatal(err)
	}
	return string(data)
}

// Names lists the embedded fixtures.
func Names() []string {
	entries, err := fs.ReadDir(TestdataFS, "testdata")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
