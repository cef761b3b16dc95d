// Package splice — anchor matching.
//
// This file implements best-effort structural matching of declarative build
// text against an ordered pattern set. It is not a parser: argument lists are
// captured up to the first closing delimiter at the opener's nesting level,
// and captures of the form [^)]+ are only used where the grammar guarantees
// no nested parentheses. That is a documented limitation; when matching is
// unreliable the caller sees an empty result, never a guess.
package splice

import (
	"regexp"
	"sort"
)

// Pattern is one matching rule in a PatternSet. Kind labels the anchors it
// produces; NameGroup, when non-zero, is the submatch index whose capture
// becomes the anchor's Name.
type Pattern struct {
	Kind      string
	Re        *regexp.Regexp
	NameGroup int
}

// PatternSet is an ordered list of patterns. Order is priority: when two
// patterns match at overlapping positions, the one appearing earlier in the
// set wins and the later match is dropped.
type PatternSet []Pattern

// FindAnchors scans text with every pattern in ps and returns the surviving
// anchors in left-to-right document order. The function is pure: calling it
// again on the same inputs yields the same sequence. An empty result means no
// pattern matched anywhere; callers must have their own fallback.
func FindAnchors(text string, ps PatternSet) []Anchor {
	type candidate struct {
		a    Anchor
		prio int
	}
	var cands []candidate
	for prio, p := range ps {
		for _, m := range p.Re.FindAllStringSubmatchIndex(text, -1) {
			a := Anchor{Kind: p.Kind, Start: m[0], End: m[1]}
			if p.NameGroup > 0 && 2*p.NameGroup+1 < len(m) && m[2*p.NameGroup] >= 0 {
				a.Name = text[m[2*p.NameGroup]:m[2*p.NameGroup+1]]
			}
			cands = append(cands, candidate{a: a, prio: prio})
		}
	}
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].a.Start != cands[j].a.Start {
			return cands[i].a.Start < cands[j].a.Start
		}
		return cands[i].prio < cands[j].prio
	})

	// First match wins per position: a candidate overlapping an already
	// accepted anchor is discarded. Anchors of different kinds coexist as
	// long as their spans are disjoint.
	out := make([]Anchor, 0, len(cands))
	lastEnd := -1
	for _, c := range cands {
		if c.a.Start < lastEnd {
			continue
		}
		out = append(out, c.a)
		lastEnd = c.a.End
	}
	return out
}

// OfKind filters anchors down to a single kind, preserving order.
func OfKind(anchors []Anchor, kind string) []Anchor {
	var out []Anchor
	for _, a := range anchors {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
