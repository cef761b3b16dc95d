// Package splice — multi-target link patching.
//
// LinkAllTargets repeats the match→resolve→apply pipeline once per target
// discovered in the document. Targets are processed in declaration order and
// each step runs against the cumulative result of the previous steps, because
// every insertion shifts the offsets of everything behind it. Anchors are
// re-scanned from scratch per step; nothing is cached across splices.
package splice

import (
	"fmt"
	"regexp"
	"strings"
)

// LinkOptions configures a multi-target link pass.
type LinkOptions struct {
	// Discovery finds target declarations; its patterns must bind the target
	// name via NameGroup.
	Discovery PatternSet

	// Relevant filters discovered names. Nil means every name is relevant.
	Relevant func(name string) bool

	// DeclPattern re-locates the declaration of one named target.
	DeclPattern func(name string) *regexp.Regexp

	// ListPattern locates the target's existing association list. The match
	// must end at the list's closing delimiter: Extension is inserted
	// immediately before the final byte of the match.
	ListPattern func(name string) *regexp.Regexp

	// NextSection bounds fresh-statement insertion after a declaration: the
	// statement goes at the start of the first NextSection match following
	// the declaration, or directly after the declaration if none.
	NextSection *regexp.Regexp

	// Library is the name being linked; its presence inside the target's own
	// association-list span (not the whole document) marks that target done.
	Library string

	// Extension is spliced into an existing association list.
	Extension string

	// NewStatement renders a fresh association statement for name. When nil
	// the pass is extend-only: targets without an existing list are left
	// alone instead of gaining a fresh statement.
	NewStatement func(name string) string
}

// LinkAllTargets links opt.Library into every relevant target found in doc.
// A target whose list already mentions the library is left untouched; a
// target whose declaration cannot be re-located after earlier insertions is
// skipped with a diagnostic. AlreadyApplied is true when at least one target
// was found and none needed a change.
func LinkAllTargets(doc Document, opt LinkOptions) PatchResult {
	names := discoverTargets(doc.Text, opt)
	if len(names) == 0 {
		return PatchResult{Doc: doc, Skipped: []string{"no relevant targets discovered"}}
	}

	res := PatchResult{Doc: doc}
	already := 0
	for _, name := range names {
		step := linkOne(res.Doc, name, opt)
		if step.AlreadyApplied {
			already++
		}
		res = PatchResult{
			Doc:     step.Doc,
			Applied: append(res.Applied, step.Applied...),
			Skipped: append(res.Skipped, step.Skipped...),
		}
	}
	res.AlreadyApplied = len(res.Applied) == 0 && already > 0
	return res
}

// discoverTargets returns relevant target names in declaration order, deduped.
func discoverTargets(text string, opt LinkOptions) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, a := range FindAnchors(text, opt.Discovery) {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		if opt.Relevant != nil && !opt.Relevant(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func linkOne(doc Document, name string, opt LinkOptions) PatchResult {
	td, ok := describeTarget(doc.Text, name, opt)
	if !ok {
		return PatchResult{
			Doc:     doc,
			Skipped: []string{fmt.Sprintf("target %s: declaration not re-located after prior insertions; skipped", name)},
		}
	}

	// Extend-existing takes precedence over creating a fresh statement.
	if td.Link != nil {
		span := doc.Text[td.Link.Start:td.Link.End]
		if strings.Contains(span, opt.Library) {
			return PatchResult{Doc: doc, AlreadyApplied: true}
		}
		return Apply(doc, InsertionPlan{
			Offset: td.Link.End - 1,
			Block:  opt.Extension,
			Reason: fmt.Sprintf("extend existing association list for %s", name),
		}, "")
	}

	if opt.NewStatement == nil {
		return PatchResult{Doc: doc, AlreadyApplied: true}
	}

	off := td.Decl.End
	if opt.NextSection != nil {
		if nm := opt.NextSection.FindStringIndex(doc.Text[td.Decl.End:]); nm != nil {
			off = td.Decl.End + nm[0]
		}
	}
	return Apply(doc, InsertionPlan{
		Offset: off,
		Block:  opt.NewStatement(name),
		Reason: fmt.Sprintf("fresh association statement for %s", name),
	}, "")
}

// describeTarget rebuilds the descriptor for one named target against the
// current text. Descriptors are never carried across edits; every linkOne
// step starts from a fresh scan. ok is false when neither the declaration
// nor an association list could be located.
func describeTarget(text, name string, opt LinkOptions) (TargetDescriptor, bool) {
	td := TargetDescriptor{Name: name}
	found := false
	if dm := opt.DeclPattern(name).FindStringIndex(text); dm != nil {
		td.Decl = Anchor{Kind: "declaration", Name: name, Start: dm[0], End: dm[1]}
		found = true
	}
	if lm := opt.ListPattern(name).FindStringIndex(text); lm != nil {
		td.Link = &Anchor{Kind: "association_list", Name: name, Start: lm[0], End: lm[1]}
		found = true
	}
	return td, found
}
