// Package splice — idempotent patch application.
package splice

import "strings"

// Apply splices plan.Block into doc at plan.Offset unless signature already
// occurs anywhere in the document, in which case the document is returned
// unchanged with AlreadyApplied set. A non-empty signature is the caller's
// proof token that this block was inserted on a previous run.
//
// Applying the same plan twice is a no-op on the second application: the
// block must contain its own signature for that law to hold, which every
// block in this codebase does.
//
// The offset is clamped to [0, len(text)]; the result is always either the
// original text or one complete splice, never a partial edit.
func Apply(doc Document, plan InsertionPlan, signature string) PatchResult {
	if signature != "" && strings.Contains(doc.Text, signature) {
		return PatchResult{Doc: doc, AlreadyApplied: true}
	}
	off := plan.Offset
	if off < 0 {
		off = 0
	}
	if off > len(doc.Text) {
		off = len(doc.Text)
	}
	plan.Offset = off
	return PatchResult{
		Doc: Document{
			Name: doc.Name,
			Text: doc.Text[:off] + plan.Block + doc.Text[off:],
		},
		Applied: []InsertionPlan{plan},
	}
}

// Merge folds next into acc: the document advances, applied plans and skip
// diagnostics accumulate, and AlreadyApplied stays true only while every
// merged step was a no-op.
func Merge(acc, next PatchResult) PatchResult {
	out := PatchResult{
		Doc:            next.Doc,
		AlreadyApplied: acc.AlreadyApplied && next.AlreadyApplied,
		Applied:        append(acc.Applied, next.Applied...),
		Skipped:        append(acc.Skipped, next.Skipped...),
	}
	return out
}
