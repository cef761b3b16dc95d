// Package notes generates the companion instruction files written next to a
// patched CMakeLists. They give a human reviewer the manual recipe for
// anything the patcher skipped, plus verification steps. All fields are
// rendered deterministically; no timestamps or environment data.
package notes

import (
	"bytes"
	"strings"
	"text/template"

	"apcmake/internal/config"
)

// Companion file names, written into the same directory as the patched file.
const (
	RootFileName = "archipelago_cmake_integration.txt"
	SrcFileName  = "archipelago_src_cmake_manual.txt"
)

// Options carries everything the templates need.
type Options struct {
	Config config.Config

	// MainTarget is the executable the root recipe linked, empty when none
	// was found.
	MainTarget string

	// Skipped lists the diagnostics for steps the patcher could not place.
	Skipped []string
}

type notesCtx struct {
	Library       string
	LibraryTarget string
	SourceDir     string
	Sources       []string
	WebsocketsTag string
	JSONTag       string
	MainTarget    string
	Skipped       []string
}

const rootNotesTemplate = `
ARCHIPELAGO CMAKE INTEGRATION — root CMakeLists.txt
===================================================

The root CMakeLists.txt has been patched with three blocks:

1. Dependency block ({{.Library}} transport + JSON):
   - FetchContent pins: libwebsockets {{.WebsocketsTag}}, nlohmann/json {{.JSONTag}}.
   - Placed after the dependency section near project(); re-running the
     patcher will not duplicate it.

2. Static library target "{{.LibraryTarget}}" built from:
{{- range .Sources}}
   - {{.}}
{{- end}}

3. Link statement for the main executable{{if .MainTarget}} ({{.MainTarget}}){{end}}:
   target_link_libraries(<main target> PRIVATE {{.LibraryTarget}})

{{if .Skipped -}}
MANUAL FOLLOW-UP REQUIRED
-------------------------
The patcher could not place the following steps; apply them by hand:
{{- range .Skipped}}
   - {{.}}
{{- end}}
{{- end}}

VERIFICATION
------------
- Configure the build and check for the status line:
  "{{.Library}} integration configured successfully"
- Confirm {{.LibraryTarget}} appears in the generated target list.
- A pristine copy of the original file is kept next to it as
  CMakeLists.txt.backup.
`

const srcNotesTemplate = `
ARCHIPELAGO CMAKE INTEGRATION — src/CMakeLists.txt
==================================================

The source-tree CMakeLists.txt has been patched to:

1. Add the integration subdirectory:
   add_subdirectory({{.Library}})
   include_directories({{.Library}})

2. Link "{{.Library}}" into every game executable (doom, heretic, hexen,
   strife, selaco and PROGRAM_PREFIX targets). Targets with an existing
   target_link_libraries list had "{{.Library}}" appended; targets without
   one gained a fresh statement after their declaration.

3. Extend existing target_include_directories calls with:
   ` + "${PROJECT_SOURCE_DIR}/{{.SourceDir}}" + `

{{if .Skipped -}}
MANUAL FOLLOW-UP REQUIRED
-------------------------
The patcher could not place the following steps; apply them by hand:
{{- range .Skipped}}
   - {{.}}
{{- end}}
{{- end}}

VERIFICATION
------------
- Re-running the patcher must report "already applied" and change nothing.
- Each game binary should now link against {{.Library}}; check with the
  generator's link line or "cmake --build . --target <game> -v".
`

var (
	tmplRootNotes = template.Must(template.New("root-notes").Parse(rootNotesTemplate))
	tmplSrcNotes  = template.Must(template.New("src-notes").Parse(srcNotesTemplate))
)

// GenerateRootNotes renders the companion file for the root recipe.
func GenerateRootNotes(opt Options) []byte {
	return render(tmplRootNotes, opt)
}

// GenerateSrcNotes renders the companion file for the src recipe.
func GenerateSrcNotes(opt Options) []byte {
	return render(tmplSrcNotes, opt)
}

func render(t *template.Template, opt Options) []byte {
	ctx := notesCtx{
		Library:       opt.Config.Library,
		LibraryTarget: opt.Config.LibraryTarget,
		SourceDir:     opt.Config.SourceDir,
		Sources:       opt.Config.Sources,
		WebsocketsTag: opt.Config.WebsocketsTag,
		JSONTag:       opt.Config.JSONTag,
		MainTarget:    opt.MainTarget,
		Skipped:       opt.Skipped,
	}
	var buf bytes.Buffer
	_ = t.Execute(&buf, ctx)

	// Normalize: strip trailing spaces, single trailing newline.
	lines := strings.Split(buf.String(), "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t")
	}
	out := strings.TrimLeft(strings.Join(lines, "\n"), "\n")
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out)
}
