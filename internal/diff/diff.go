// Package diff renders unified diffs of a CMakeLists before and after
// patching, for the --show-diff flag and debug logging. It uses
// github.com/pmezard/go-difflib/difflib to produce classic unified patches
// (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch rendering.
type Options struct {
	// MaxBytes is a guardrail on input size (old+new). When exceeded,
	// a minimal placeholder patch is returned and oversize=true.
	// 0 means "no limit".
	MaxBytes int

	// Context is the number of context lines in unified hunks. 0 means 4.
	Context int
}

// Unified produces a classic unified patch for a↦b.
// Returns the patch body and a flag indicating it was omitted due to size.
func Unified(aName, bName string, a, b []byte, opt Options) (body string, oversize bool) {
	if opt.MaxBytes > 0 && (len(a)+len(b)) > opt.MaxBytes {
		return omitted(aName, bName), true
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  contextLines(opt),
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		// Identical inputs or a difflib failure; never return an empty body.
		return omitted(aName, bName), false
	}
	return s, false
}

// Added produces a patch that adds the entire content b (no old version),
// used for companion files created next to the patched CMakeLists.
func Added(bName string, b []byte, opt Options) (string, bool) {
	if opt.MaxBytes > 0 && len(b) > opt.MaxBytes {
		return omitted("/dev/null", bName), true
	}
	u := difflib.UnifiedDiff{
		A:        []string{},
		B:        splitLinesKeepNL(string(b)),
		FromFile: "/dev/null",
		ToFile:   bName,
		Context:  contextLines(opt),
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		return omitted("/dev/null", bName), false
	}
	return s, false
}

func contextLines(opt Options) int {
	if opt.Context <= 0 {
		return 4
	}
	return opt.Context
}

// splitLinesKeepNL splits into lines and keeps newline characters,
// which produces better unified hunks.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}

// omitted returns a compact placeholder when size limits are exceeded.
func omitted(aName, bName string) string {
	return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted (oversize)\n", aName, bName)
}
