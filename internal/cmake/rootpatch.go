// Package cmake — root CMakeLists.txt recipe.
package cmake

import (
	"fmt"

	"apcmake/internal/config"
	"apcmake/internal/splice"
)

// CompletionSignature is the whole-file marker that a document has been
// through a recipe before. The CLI checks it to decide whether to ask for
// confirmation; the per-block signatures below are what actually make
// re-application a no-op.
func CompletionSignature(cfg config.Config) string { return cfg.LibraryTarget }

// Root applies the top-level recipe: the FetchContent dependency block, the
// integration library target, the link statement for the main executable and
// a completion status message. Each step re-scans the text produced by the
// previous one; nothing is cached across splices.
func Root(doc splice.Document, cfg config.Config) splice.PatchResult {
	res := splice.PatchResult{Doc: doc, AlreadyApplied: true}
	res = splice.Merge(res, rootDeps(res.Doc, cfg))
	res = splice.Merge(res, rootLibrary(res.Doc, cfg))
	res = splice.Merge(res, rootMainLink(res.Doc, cfg))
	res = splice.Merge(res, rootStatus(res.Doc, cfg))
	return res
}

// rootDeps inserts the dependency block after the last dependency-like
// statement found within WindowBytes of the project declaration, preferring
// a nearby anchor over a distant one.
func rootDeps(doc splice.Document, cfg config.Config) splice.PatchResult {
	anchors := findEach(doc.Text, StructurePatterns, DependencyPatterns)

	var chain []splice.Policy
	if origin, _, ok := splice.Resolve(doc.Text, anchors, splice.AfterLast(KindProject)); ok {
		chain = append(chain, splice.WithinWindow(KindDependency, origin, cfg.WindowBytes))
	}
	chain = append(chain,
		splice.AfterLast(KindProject),
		splice.AfterLast(KindMinimumRequired),
		splice.AtEnd(),
	)

	off, reason, _ := splice.Resolve(doc.Text, anchors, chain...)
	return splice.Apply(doc, splice.InsertionPlan{
		Offset: off,
		Block:  renderDepsBlock(cfg),
		Reason: reason,
	}, depsSignature())
}

// rootLibrary inserts the library target block directly before the main
// executable, so the target exists by the time it is referenced.
func rootLibrary(doc splice.Document, cfg config.Config) splice.PatchResult {
	plan := splice.InsertionPlan{
		Offset: len(doc.Text),
		Block:  renderLibraryBlock(cfg),
		Reason: "end of document (no main target found)",
	}
	if mt, ok := FindMainTarget(doc.Text, cfg.Executables); ok {
		plan.Offset = mt.Start
		plan.Reason = fmt.Sprintf("before main target %s at %d", mt.Name, mt.Start)
	}
	return splice.Apply(doc, plan, librarySignature())
}

// rootMainLink appends the link statement for the main executable: after its
// existing target_link_libraries call when one exists, otherwise after its
// declaration, otherwise at the end of the document.
func rootMainLink(doc splice.Document, cfg config.Config) splice.PatchResult {
	mt, ok := FindMainTarget(doc.Text, cfg.Executables)
	if !ok {
		return splice.PatchResult{
			Doc:     doc,
			Skipped: []string{"main executable target not found; link step skipped"},
		}
	}

	plan := splice.InsertionPlan{
		Offset: len(doc.Text),
		Block:  renderMainLinkBlock(mt.Name, cfg),
		Reason: "end of document",
	}
	if lm := linkPattern(mt.Name).FindStringIndex(doc.Text); lm != nil {
		plan.Offset = lm[1]
		plan.Reason = fmt.Sprintf("after existing link list for %s", mt.Name)
	} else if dm := declPattern(mt.Name).FindStringIndex(doc.Text); dm != nil {
		plan.Offset = dm[1]
		plan.Reason = fmt.Sprintf("after declaration of %s", mt.Name)
		if nm := nextRootSection.FindStringIndex(doc.Text[dm[1]:]); nm != nil {
			plan.Offset = dm[1] + nm[0]
		}
	}
	return splice.Apply(doc, plan, mainLinkStatement(mt.Name, cfg))
}

func rootStatus(doc splice.Document, cfg config.Config) splice.PatchResult {
	return splice.Apply(doc, splice.InsertionPlan{
		Offset: len(doc.Text),
		Block:  renderStatusBlock(cfg),
		Reason: "end of document",
	}, statusMessage(cfg))
}
