package splice

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
)

// gameLinkOptions mirrors the CMake link pass: discover add_executable
// targets and link "archipelago" into each one.
func gameLinkOptions(keywords ...string) LinkOptions {
	return LinkOptions{
		Discovery: PatternSet{{
			Kind:      "executable",
			Re:        regexp.MustCompile(`add_executable\s*\(\s*([^\s)]+)`),
			NameGroup: 1,
		}},
		Relevant: func(name string) bool {
			lc := strings.ToLower(name)
			for _, k := range keywords {
				if strings.Contains(lc, k) {
					return true
				}
			}
			return len(keywords) == 0
		},
		DeclPattern: func(name string) *regexp.Regexp {
			return regexp.MustCompile(`add_executable\s*\(\s*` + regexp.QuoteMeta(name) + `[^)]*\)`)
		},
		ListPattern: func(name string) *regexp.Regexp {
			return regexp.MustCompile(`target_link_libraries\s*\(\s*` + regexp.QuoteMeta(name) + `\s+[^)]*\)`)
		},
		NextSection: regexp.MustCompile(`\n\s*(?:target_|add_)`),
		Library:     "archipelago",
		Extension:   " archipelago",
		NewStatement: func(name string) string {
			return fmt.Sprintf("\ntarget_link_libraries(%s archipelago)\n", name)
		},
	}
}

func TestLinkAllTargetsDocumentOrderFold(t *testing.T) {
	doc := Document{Text: "add_executable(doom a.c)\nadd_executable(heretic b.c)\n"}
	res := LinkAllTargets(doc, gameLinkOptions("doom", "heretic"))
	if res.AlreadyApplied {
		t.Fatalf("fresh document must not report alreadyApplied")
	}
	if len(res.Applied) != 2 {
		t.Fatalf("expected 2 insertions, got %d (%v)", len(res.Applied), res.Skipped)
	}
	want := "add_executable(doom a.c)\ntarget_link_libraries(doom archipelago)\n" +
		"\nadd_executable(heretic b.c)\ntarget_link_libraries(heretic archipelago)\n\n"
	if res.Doc.Text != want {
		t.Fatalf("unexpected result:\n%q\nwant:\n%q", res.Doc.Text, want)
	}
	// The second insertion is placed in the text produced by the first one.
	if res.Applied[1].Offset <= res.Applied[0].Offset {
		t.Fatalf("second offset must account for the first insertion: %#v", res.Applied)
	}
}

func TestLinkAllTargetsExtendsExistingList(t *testing.T) {
	doc := Document{Text: "add_executable(doom a.c)\ntarget_link_libraries(doom m z)\n"}
	res := LinkAllTargets(doc, gameLinkOptions("doom"))
	if len(res.Applied) != 1 {
		t.Fatalf("expected 1 insertion, got %#v", res)
	}
	if !strings.Contains(res.Doc.Text, "target_link_libraries(doom m z archipelago)") {
		t.Fatalf("existing list not extended: %q", res.Doc.Text)
	}
	// Extend-existing wins: no fresh statement may appear.
	if strings.Count(res.Doc.Text, "target_link_libraries") != 1 {
		t.Fatalf("fresh statement created despite existing list: %q", res.Doc.Text)
	}
}

func TestLinkAllTargetsScopedIdempotence(t *testing.T) {
	// heretic is already linked; that must not block doom's patch.
	doc := Document{Text: "add_executable(doom a.c)\n" +
		"add_executable(heretic b.c)\ntarget_link_libraries(heretic archipelago)\n"}
	res := LinkAllTargets(doc, gameLinkOptions("doom", "heretic"))
	if len(res.Applied) != 1 {
		t.Fatalf("expected exactly doom to be patched: %#v", res)
	}
	if !strings.Contains(res.Doc.Text, "target_link_libraries(doom archipelago)") {
		t.Fatalf("doom not linked: %q", res.Doc.Text)
	}
	if strings.Count(res.Doc.Text, "heretic archipelago") != 1 {
		t.Fatalf("heretic must stay untouched: %q", res.Doc.Text)
	}
}

func TestLinkAllTargetsPerTargetIsolation(t *testing.T) {
	declB := "add_executable(heretic b.c)"
	listB := "target_link_libraries(heretic base archipelago)"
	doc := Document{Text: "add_executable(doom a.c)\n" + declB + "\n" + listB + "\n"}
	res := LinkAllTargets(doc, gameLinkOptions("doom", "heretic"))
	if !strings.Contains(res.Doc.Text, declB) || !strings.Contains(res.Doc.Text, listB) {
		t.Fatalf("target B's bytes were altered: %q", res.Doc.Text)
	}
}

func TestLinkAllTargetsAlreadyApplied(t *testing.T) {
	doc := Document{Text: "add_executable(doom a.c)\ntarget_link_libraries(doom archipelago)\n"}
	res := LinkAllTargets(doc, gameLinkOptions("doom"))
	if !res.AlreadyApplied || len(res.Applied) != 0 || res.Doc.Text != doc.Text {
		t.Fatalf("fully linked document must be a no-op: %#v", res)
	}
}

func TestLinkAllTargetsRelevanceFilterAndNoTargets(t *testing.T) {
	doc := Document{Text: "add_executable(tooling t.c)\n"}
	res := LinkAllTargets(doc, gameLinkOptions("doom"))
	if len(res.Applied) != 0 || len(res.Skipped) == 0 {
		t.Fatalf("irrelevant targets must produce a diagnostic, not a patch: %#v", res)
	}
	if res.Doc.Text != doc.Text {
		t.Fatalf("document changed without relevant targets")
	}
}
