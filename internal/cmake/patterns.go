// Package cmake provides the CMake-specific pattern tables and the two patch
// recipes (root and src CMakeLists.txt).
//
// Matching is structural regex matching, not parsing. Argument captures of
// the form [^)]+ assume no nested parentheses inside the statement, which
// holds for the statements these tables target; anything beyond that is out
// of scope and surfaces as a missed anchor, never a guess.
package cmake

import (
	"regexp"
	"sort"

	"apcmake/internal/splice"
)

// Anchor kinds produced by the tables below.
const (
	KindMinimumRequired = "minimum_required"
	KindProject         = "project"
	KindDependency      = "dependency"
	KindExecutable      = "executable"
	KindMainTarget      = "main_target"
	KindSubdirectory    = "subdirectory"
	KindForeachSubdir   = "foreach_subdir"
	KindSourceFiles     = "source_files"
)

var (
	reMinimumRequired = regexp.MustCompile(`cmake_minimum_required\s*\([^)]+\)[^\S\n]*\n?`)
	reProject         = regexp.MustCompile(`project\s*\([^)]+\)[^\S\n]*\n?`)

	// Dependency-like statements scanned for near the project declaration.
	reFindPackage = regexp.MustCompile(`find_package\s*\([^)]+\)\s*\n`)
	reInclude     = regexp.MustCompile(`include\s*\([^)]+\)\s*\n`)
	reCMakeSet    = regexp.MustCompile(`set\s*\([^)]+\)\s*\n.*CMAKE.*\n`)

	// Executable discovery: binds the first argument token, tolerating an
	// optional quote and ${...} wrapper.
	reExecutable = regexp.MustCompile(`add_executable\s*\(\s*"?\$?\{?([^}")\s]+)\}?"?`)

	reSubdirectory  = regexp.MustCompile(`add_subdirectory\s*\([^)]+\)`)
	reForeachSubdir = regexp.MustCompile(`foreach\s*\([^)]*SUBDIR[^)]*\)\s*\n\s*add_subdirectory\s*\([^)]*\)\s*\nendforeach\s*\(\s*\)`)
	reSourceFiles   = regexp.MustCompile(`(?s)set\s*\([^)]*SOURCE_FILES[^)]*\)[^#]*`)
)

// StructurePatterns anchors the top-of-file skeleton of a root CMakeLists.
var StructurePatterns = splice.PatternSet{
	{Kind: KindMinimumRequired, Re: reMinimumRequired},
	{Kind: KindProject, Re: reProject},
}

// DependencyPatterns anchors statements that typically follow project() and
// mark the dependency section.
var DependencyPatterns = splice.PatternSet{
	{Kind: KindDependency, Re: reFindPackage},
	{Kind: KindDependency, Re: reInclude},
	{Kind: KindDependency, Re: reCMakeSet},
}

// SubdirPatterns anchors the insertion candidates for the src recipe's
// subdirectory block, in preference order.
var SubdirPatterns = splice.PatternSet{
	{Kind: KindForeachSubdir, Re: reForeachSubdir},
	{Kind: KindSubdirectory, Re: reSubdirectory},
	{Kind: KindSourceFiles, Re: reSourceFiles},
}

// DiscoveryPatterns finds every add_executable declaration with its name.
var DiscoveryPatterns = splice.PatternSet{
	{Kind: KindExecutable, Re: reExecutable, NameGroup: 1},
}

// findEach scans every pattern independently and returns all anchors in
// document order. Unlike a single FindAnchors call, overlapping anchors from
// different patterns all survive — the recipes' greedy captures (SOURCE_FILES
// setup, CMAKE-set lines) may legitimately span other statements, and the
// Resolver filters by kind anyway.
func findEach(text string, sets ...splice.PatternSet) []splice.Anchor {
	var out []splice.Anchor
	for _, ps := range sets {
		for _, p := range ps {
			out = append(out, splice.FindAnchors(text, splice.PatternSet{p})...)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// FindMainTarget locates the main executable target. Candidate names are
// tried in priority order over the whole document, so a preferred name late
// in the file still beats a generic match near the top; the generic
// add_executable fallback runs only when no candidate matched at all.
func FindMainTarget(text string, candidates []string) (splice.Anchor, bool) {
	for _, name := range candidates {
		re := regexp.MustCompile(`(?i)add_executable\s*\(\s*(` + regexp.QuoteMeta(name) + `)\s+`)
		if m := re.FindStringSubmatchIndex(text); m != nil {
			return splice.Anchor{
				Kind:  KindMainTarget,
				Name:  text[m[2]:m[3]],
				Start: m[0],
				End:   m[1],
			}, true
		}
	}
	if m := reExecutable.FindStringSubmatchIndex(text); m != nil {
		return splice.Anchor{
			Kind:  KindMainTarget,
			Name:  text[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		}, true
	}
	return splice.Anchor{}, false
}

var reProjectName = regexp.MustCompile(`project\s*\(\s*([^\s)]+)`)

// ProjectName extracts the name from the first project() declaration.
func ProjectName(text string) (string, bool) {
	if m := reProjectName.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// DiscoverExecutables returns every add_executable target name in
// declaration order, deduped.
func DiscoverExecutables(text string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, a := range splice.FindAnchors(text, DiscoveryPatterns) {
		if a.Name == "" {
			continue
		}
		if _, dup := seen[a.Name]; dup {
			continue
		}
		seen[a.Name] = struct{}{}
		names = append(names, a.Name)
	}
	return names
}

// wrapTarget builds the "maybe quoted, maybe ${...}" form used when
// re-locating a previously discovered target name.
func wrapTarget(name string) string {
	return `"?\$?\{?` + regexp.QuoteMeta(name) + `\}?"?`
}

// declPattern re-locates the full declaration of one named executable.
func declPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`add_executable\s*\(\s*` + wrapTarget(name) + `[^)]*\)`)
}

// linkPattern locates the target's target_link_libraries call; the match
// ends at the closing parenthesis.
func linkPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`target_link_libraries\s*\(\s*` + wrapTarget(name) + `\s+[^)]*\)`)
}

// includePattern locates the target's target_include_directories call.
func includePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`target_include_directories\s*\(\s*` + wrapTarget(name) + `\s+[^)]*\)`)
}

// nextSection bounds fresh-statement insertion after a declaration in the
// src recipe: the next target_* or add_* statement.
var nextSection = regexp.MustCompile(`\n\s*(?:target_|add_)`)

// nextRootSection is the root recipe's variant: a blank line or the next
// add_* statement.
var nextRootSection = regexp.MustCompile(`\n\s*\n|\nadd_`)
