// Package splice defines the core data types for text splicing: documents,
// anchors, insertion plans and patch results.
package splice

// Document is one configuration file held fully in memory. Documents are
// never mutated; every edit produces a new Document with the same Name.
type Document struct {
	Name string // originating path or logical name, for diagnostics
	Text string
}

// Anchor is a located syntactic feature in a Document. Offsets are byte
// positions forming the half-open span [Start, End). Anchors are transient:
// they are recomputed on every scan and must not be held across edits.
type Anchor struct {
	Kind  string // pattern kind that produced the anchor
	Name  string // identifier bound by the pattern, if any (e.g., a target name)
	Start int    // byte offset, inclusive
	End   int    // byte offset, exclusive
}

// InsertionPlan is a resolved offset into a specific Document version plus
// the block to splice there. Reason records why that offset was chosen.
type InsertionPlan struct {
	Offset int
	Block  string
	Reason string
}

// PatchResult is the outcome of one patch invocation. AlreadyApplied is true
// when the idempotence check found the signature present and nothing changed.
// Skipped lists per-target diagnostics for steps that could not be placed.
type PatchResult struct {
	Doc            Document
	AlreadyApplied bool
	Applied        []InsertionPlan
	Skipped        []string
}

// TargetDescriptor is a discovered build target: its declaration anchor and,
// when one exists, the anchor of the link-association list referencing it.
// Descriptors are rebuilt on every scan, never updated in place.
type TargetDescriptor struct {
	Name string
	Decl Anchor
	Link *Anchor
}
