package cmake

import (
	"strings"
	"testing"

	"apcmake/internal/config"
	"apcmake/internal/splice"
)

const sampleRoot = `cmake_minimum_required(VERSION 3.16)
project(Selaco)

include(CheckFunctionExists)
find_package(ZLIB REQUIRED)

add_executable(selaco src/main.cpp)
target_link_libraries(selaco ZLIB::ZLIB)
`

func TestRootPatchPlacement(t *testing.T) {
	cfg := config.Default()
	res := Root(splice.Document{Name: "CMakeLists.txt", Text: sampleRoot}, cfg)
	if res.AlreadyApplied {
		t.Fatalf("fresh document reported alreadyApplied")
	}
	if len(res.Applied) != 4 {
		t.Fatalf("expected 4 insertions, got %d (skipped: %v)", len(res.Applied), res.Skipped)
	}
	out := res.Doc.Text

	deps := strings.Index(out, "ARCHIPELAGO INTEGRATION DEPENDENCIES")
	lib := strings.Index(out, "ARCHIPELAGO INTEGRATION LIBRARY")
	exe := strings.Index(out, "add_executable(selaco")
	dep := strings.Index(out, "find_package(ZLIB")
	if deps < 0 || lib < 0 {
		t.Fatalf("blocks missing:\n%s", out)
	}
	if !(dep < deps && deps < lib && lib < exe) {
		t.Fatalf("blocks out of order: find_package=%d deps=%d lib=%d exe=%d", dep, deps, lib, exe)
	}

	link := strings.Index(out, "target_link_libraries(selaco PRIVATE selaco_archipelago)")
	if link < 0 || link < strings.Index(out, "ZLIB::ZLIB") {
		t.Fatalf("main link statement missing or misplaced:\n%s", out)
	}
	if !strings.HasSuffix(out, "integration configured successfully\")\n") {
		t.Fatalf("status message must close the file: %q", out[len(out)-80:])
	}

	// Pure insertion: every original line survives verbatim.
	for _, line := range strings.Split(strings.TrimRight(sampleRoot, "\n"), "\n") {
		if !strings.Contains(out, line) {
			t.Fatalf("original line lost: %q", line)
		}
	}
}

func TestRootPatchIdempotent(t *testing.T) {
	cfg := config.Default()
	first := Root(splice.Document{Text: sampleRoot}, cfg)
	second := Root(first.Doc, cfg)
	if !second.AlreadyApplied {
		t.Fatalf("second run must be a no-op, got %d insertions", len(second.Applied))
	}
	if second.Doc.Text != first.Doc.Text {
		t.Fatalf("second run changed the document")
	}
}

func TestRootPatchFallsBackToMinimumRequired(t *testing.T) {
	text := "cmake_minimum_required(VERSION 3.5)\nadd_custom_target(docs)\n"
	res := Root(splice.Document{Text: text}, config.Default())
	out := res.Doc.Text

	mr := strings.Index(out, "cmake_minimum_required")
	deps := strings.Index(out, "ARCHIPELAGO INTEGRATION DEPENDENCIES")
	if deps < mr {
		t.Fatalf("deps block must follow cmake_minimum_required:\n%s", out)
	}
	// No executable at all: the link step is skipped with a diagnostic.
	if len(res.Skipped) == 0 {
		t.Fatalf("missing main target must be reported")
	}
	if strings.Contains(out, "PRIVATE selaco_archipelago") {
		t.Fatalf("link statement emitted without a target")
	}
}

func TestRootPatchEmptyDocument(t *testing.T) {
	res := Root(splice.Document{Text: ""}, config.Default())
	if len(res.Applied) != 3 {
		t.Fatalf("empty document: want deps+library+status, got %d", len(res.Applied))
	}
	out := res.Doc.Text
	if !strings.Contains(out, "ARCHIPELAGO INTEGRATION DEPENDENCIES") ||
		!strings.Contains(out, "add_library(selaco_archipelago STATIC") {
		t.Fatalf("blocks missing on empty input:\n%s", out)
	}
}

func TestFindMainTargetPriority(t *testing.T) {
	// A preferred name later in the file beats a generic match near the top.
	text := "add_executable(tooling t.c)\nadd_executable(selaco main.cpp)\n"
	mt, ok := FindMainTarget(text, config.Default().Executables)
	if !ok || mt.Name != "selaco" {
		t.Fatalf("expected selaco, got %#v ok=%v", mt, ok)
	}

	// Generic fallback when no candidate matches.
	mt, ok = FindMainTarget("add_executable(tooling t.c)\n", config.Default().Executables)
	if !ok || mt.Name != "tooling" {
		t.Fatalf("generic fallback failed: %#v ok=%v", mt, ok)
	}

	if _, ok = FindMainTarget("project(Foo)\n", config.Default().Executables); ok {
		t.Fatalf("no executable must mean no main target")
	}
}
