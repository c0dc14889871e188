// Package input reads multi-line list values from named configuration inputs.
//
// CI runtimes hand list-like settings over as a single string with one entry
// per line:
//
//	includes: |
//	  coverage-report
//	  test-results
//
// List turns such a value into its entries:
//
//	names := input.List(src, "includes") // ["coverage-report", "test-results"]
package input

import "strings"

// Source provides raw textual values for named inputs.
// Implementations return the empty string for unset inputs.
type Source interface {
	GetInput(name string) string
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(name string) string

// GetInput implements Source.
func (f SourceFunc) GetInput(name string) string {
	return f(name)
}

// Map is a Source backed by a map. Missing keys read as empty.
type Map map[string]string

// GetInput implements Source.
func (m Map) GetInput(name string) string {
	return m[name]
}

// List reads the named input and returns its non-empty lines, trimmed,
// in their original order. Duplicates are kept.
// An unset, empty or whitespace-only value yields an empty slice.
func List(src Source, name string) []string {
	return Split(src.GetInput(name))
}

// Split splits raw on newlines and returns the trimmed non-empty pieces.
func Split(raw string) []string {
	result := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		if item := strings.TrimSpace(line); item != "" {
			result = append(result, item)
		}
	}
	return result
}
