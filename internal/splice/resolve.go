// Package splice — insertion point resolution.
//
// Resolve turns a set of anchors plus an ordered policy chain into exactly
// one byte offset. Each policy is tried in turn; the first one that yields an
// offset wins. EndOfDocument always yields len(text), so a chain ending in it
// is total. A chain without EndOfDocument may fail, which callers must treat
// as "skip this patch, report a warning" — never as a fatal error.
package splice

import "fmt"

// PolicyKind enumerates the positional rules a Policy can apply.
type PolicyKind int

const (
	// AfterFirstOfKind inserts after the end of the first anchor of Kind.
	AfterFirstOfKind PolicyKind = iota
	// AfterLastOfKind inserts after the end of the last anchor of Kind.
	AfterLastOfKind
	// AfterLastWithinWindow inserts after the end of the last anchor of Kind
	// that lies entirely inside [Origin, Origin+Window). Used to prefer a
	// nearby dependency declaration over a distant one.
	AfterLastWithinWindow
	// BeforeAnchor inserts at the start of the first anchor of Kind.
	BeforeAnchor
	// EndOfDocument inserts at len(text). Always succeeds.
	EndOfDocument
)

// Policy is one step in a resolution chain.
type Policy struct {
	Kind   PolicyKind
	Anchor string // anchor kind the rule operates on (unused by EndOfDocument)
	Origin int    // AfterLastWithinWindow: offset the window opens at
	Window int    // AfterLastWithinWindow: window size in bytes
}

// Convenience constructors, so chains read like the policy they express.

func AfterFirst(kind string) Policy { return Policy{Kind: AfterFirstOfKind, Anchor: kind} }
func AfterLast(kind string) Policy  { return Policy{Kind: AfterLastOfKind, Anchor: kind} }
func Before(kind string) Policy     { return Policy{Kind: BeforeAnchor, Anchor: kind} }
func AtEnd() Policy                 { return Policy{Kind: EndOfDocument} }

func WithinWindow(kind string, origin, window int) Policy {
	return Policy{Kind: AfterLastWithinWindow, Anchor: kind, Origin: origin, Window: window}
}

// Resolve evaluates the policy chain against anchors and returns the chosen
// offset plus a human-readable reason for diagnostics. ok is false only when
// every policy failed and none was EndOfDocument.
func Resolve(text string, anchors []Anchor, chain ...Policy) (offset int, reason string, ok bool) {
	for _, p := range chain {
		if off, why, hit := apply(text, anchors, p); hit {
			return off, why, true
		}
	}
	return 0, "no policy matched", false
}

func apply(text string, anchors []Anchor, p Policy) (int, string, bool) {
	if p.Kind == EndOfDocument {
		return len(text), "end of document", true
	}
	kin := OfKind(anchors, p.Anchor)
	if len(kin) == 0 {
		return 0, "", false
	}
	switch p.Kind {
	case AfterFirstOfKind:
		a := kin[0]
		return a.End, fmt.Sprintf("after first %s at %d", p.Anchor, a.Start), true
	case AfterLastOfKind:
		a := kin[len(kin)-1]
		return a.End, fmt.Sprintf("after last %s at %d", p.Anchor, a.Start), true
	case AfterLastWithinWindow:
		end := p.Origin + p.Window
		best := -1
		for i, a := range kin {
			if a.Start >= p.Origin && a.End <= end {
				best = i
			}
		}
		if best < 0 {
			return 0, "", false
		}
		a := kin[best]
		return a.End, fmt.Sprintf("after last %s within %d bytes of %d", p.Anchor, p.Window, p.Origin), true
	case BeforeAnchor:
		a := kin[0]
		return a.Start, fmt.Sprintf("before %s at %d", p.Anchor, a.Start), true
	}
	return 0, "", false
}
