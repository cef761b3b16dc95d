package notes

import (
	"strings"
	"testing"

	"apcmake/internal/config"
)

func TestRootNotes(t *testing.T) {
	out := string(GenerateRootNotes(Options{
		Config:     config.Default(),
		MainTarget: "selaco",
	}))
	for _, want := range []string{
		"libwebsockets v4.3.3",
		"nlohmann/json v3.11.3",
		`"selaco_archipelago"`,
		"(selaco)",
		"src/archipelago/archipelago_client.cpp",
		"CMakeLists.txt.backup",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "MANUAL FOLLOW-UP") {
		t.Fatalf("follow-up section rendered without skipped steps:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n\n") {
		t.Fatalf("bad trailing whitespace: %q", out[len(out)-8:])
	}
}

func TestSrcNotesSkipped(t *testing.T) {
	out := string(GenerateSrcNotes(Options{
		Config:  config.Default(),
		Skipped: []string{"no insertion point for the subdirectory block; step skipped"},
	}))
	if !strings.Contains(out, "MANUAL FOLLOW-UP REQUIRED") ||
		!strings.Contains(out, "no insertion point for the subdirectory block") {
		t.Fatalf("skipped steps not rendered:\n%s", out)
	}
	if !strings.Contains(out, "${PROJECT_SOURCE_DIR}/src/archipelago") {
		t.Fatalf("include extension path missing:\n%s", out)
	}
}
