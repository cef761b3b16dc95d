// Package cmake — src/CMakeLists.txt recipe.
package cmake

import (
	"fmt"
	"strings"

	"apcmake/internal/config"
	"apcmake/internal/splice"
)

// Src applies the source-tree recipe: the subdirectory/include block, a link
// statement per discovered game executable, and the include-directory
// extension on targets that already declare target_include_directories.
func Src(doc splice.Document, cfg config.Config) splice.PatchResult {
	res := splice.PatchResult{Doc: doc, AlreadyApplied: true}
	res = splice.Merge(res, srcSubdir(res.Doc, cfg))
	res = splice.Merge(res, splice.LinkAllTargets(res.Doc, linkOptions(cfg)))
	res = splice.Merge(res, splice.LinkAllTargets(res.Doc, includeOptions(cfg)))
	return res
}

// srcSubdir inserts the add_subdirectory block after the subdirectory
// foreach loop, else after the last add_subdirectory call, else after the
// SOURCE_FILES setup. There is deliberately no end-of-document fallback: a
// file with none of these anchors is left alone and reported, since blindly
// appending the block would place it after the targets that need it.
func srcSubdir(doc splice.Document, cfg config.Config) splice.PatchResult {
	anchors := findEach(doc.Text, SubdirPatterns)
	off, reason, ok := splice.Resolve(doc.Text, anchors,
		splice.AfterFirst(KindForeachSubdir),
		splice.AfterLast(KindSubdirectory),
		splice.AfterFirst(KindSourceFiles),
	)
	if !ok {
		return splice.PatchResult{
			Doc:     doc,
			Skipped: []string{"no insertion point for the subdirectory block; step skipped"},
		}
	}
	return splice.Apply(doc, splice.InsertionPlan{
		Offset: off,
		Block:  renderSubdirBlock(cfg),
		Reason: reason,
	}, subdirSignature(cfg))
}

// linkOptions configures the per-target link pass over game executables.
func linkOptions(cfg config.Config) splice.LinkOptions {
	return splice.LinkOptions{
		Discovery:   DiscoveryPatterns,
		Relevant:    relevantTarget(cfg.Keywords),
		DeclPattern: declPattern,
		ListPattern: linkPattern,
		NextSection: nextSection,
		Library:     cfg.Library,
		Extension:   " " + cfg.Library,
		NewStatement: func(name string) string {
			return fmt.Sprintf("\ntarget_link_libraries(%s %s)\n", name, cfg.Library)
		},
	}
}

// includeOptions configures the extend-only pass that adds the integration
// include directory to existing target_include_directories calls.
func includeOptions(cfg config.Config) splice.LinkOptions {
	return splice.LinkOptions{
		Discovery:   DiscoveryPatterns,
		Relevant:    relevantTarget(cfg.Keywords),
		DeclPattern: declPattern,
		ListPattern: includePattern,
		Library:     cfg.Library,
		Extension:   " ${PROJECT_SOURCE_DIR}/" + cfg.SourceDir,
	}
}

// relevantTarget reports whether a discovered executable name looks like a
// game target: it contains one of the configured keywords, or the
// PROGRAM_PREFIX variable marking per-game binaries.
func relevantTarget(keywords []string) func(string) bool {
	return func(name string) bool {
		lc := strings.ToLower(name)
		for _, k := range keywords {
			if strings.Contains(lc, strings.ToLower(k)) {
				return true
			}
		}
		return strings.Contains(name, "PROGRAM_PREFIX")
	}
}
