// Package cmake — insertion block rendering.
//
// Blocks are rendered from templates so the library name, target name, pins
// and source lists stay configurable. Every block contains its own signature
// substring (a header comment or the emitted statement itself), which is what
// makes re-applying any recipe a no-op.
package cmake

import (
	"bytes"
	"fmt"
	"text/template"

	"apcmake/internal/config"
)

const depsBlockTemplate = `
# =============================================================================
# ARCHIPELAGO INTEGRATION DEPENDENCIES
# =============================================================================

# Use FetchContent for libwebsockets and the JSON library
include(FetchContent)

FetchContent_Declare(
    libwebsockets
    GIT_REPOSITORY https://github.com/warmcat/libwebsockets.git
    GIT_TAG {{.WebsocketsTag}}
)

# Configure libwebsockets options BEFORE fetching
set(LWS_WITHOUT_TESTAPPS ON CACHE BOOL "Don't build test apps")
set(LWS_WITHOUT_TEST_SERVER ON CACHE BOOL "Don't build test server")
set(LWS_WITHOUT_TEST_CLIENT ON CACHE BOOL "Don't build test client")
set(LWS_WITH_MINIMAL_EXAMPLES OFF CACHE BOOL "Don't build examples")
set(LWS_WITH_SSL ON CACHE BOOL "Enable SSL support")
set(LWS_WITH_BUNDLED_ZLIB ON CACHE BOOL "Use bundled zlib on Windows")
set(LWS_WITH_LIBEV OFF CACHE BOOL "Disable libev")
set(LWS_WITH_LIBUV OFF CACHE BOOL "Disable libuv")

FetchContent_Declare(
    json
    GIT_REPOSITORY https://github.com/nlohmann/json.git
    GIT_TAG {{.JSONTag}}
)

FetchContent_MakeAvailable(libwebsockets json)

`

const libraryBlockTemplate = `
# =============================================================================
# ARCHIPELAGO INTEGRATION LIBRARY
# =============================================================================

add_library({{.LibraryTarget}} STATIC
{{- range .Sources}}
    {{.}}
{{- end}}
)

target_include_directories({{.LibraryTarget}}
    PUBLIC
    ${libwebsockets_SOURCE_DIR}/include
    ${libwebsockets_BINARY_DIR}/include
    {{.SourceDir}}
)

target_link_libraries({{.LibraryTarget}}
    PUBLIC
    websockets
    nlohmann_json::nlohmann_json
)

# Windows needs the socket and crypto system libraries for SSL transport
if(WIN32)
    target_link_libraries({{.LibraryTarget}}
        PUBLIC
        ws2_32
        iphlpapi
        psapi
        userenv
        crypt32
    )

    target_compile_definitions({{.LibraryTarget}}
        PRIVATE
        _WIN32_WINNT=0x0600
        WIN32_LEAN_AND_MEAN
    )
endif()

if(MSVC)
    target_compile_options({{.LibraryTarget}} PRIVATE /W3)
    target_compile_definitions({{.LibraryTarget}} PRIVATE _CRT_SECURE_NO_WARNINGS)
else()
    target_compile_options({{.LibraryTarget}} PRIVATE -Wall -Wextra)
endif()

if(CMAKE_BUILD_TYPE STREQUAL "Debug")
    target_compile_definitions({{.LibraryTarget}} PRIVATE SELACO_AP_DEBUG=1)
endif()

`

const subdirBlockTemplate = `
# Add Archipelago integration
add_subdirectory({{.Library}})
include_directories({{.Library}})
`

var (
	tmplDeps    = template.Must(template.New("deps").Parse(depsBlockTemplate))
	tmplLibrary = template.Must(template.New("library").Parse(libraryBlockTemplate))
	tmplSubdir  = template.Must(template.New("subdir").Parse(subdirBlockTemplate))
)

// Signatures proving a given block is already present.

func depsSignature() string { return "ARCHIPELAGO INTEGRATION DEPENDENCIES" }

func librarySignature() string { return "ARCHIPELAGO INTEGRATION LIBRARY" }

func mainLinkStatement(target string, cfg config.Config) string {
	return fmt.Sprintf("target_link_libraries(%s PRIVATE %s)", target, cfg.LibraryTarget)
}

func statusMessage(cfg config.Config) string {
	return fmt.Sprintf(`message(STATUS "%s integration configured successfully")`, cfg.Library)
}

func subdirSignature(cfg config.Config) string {
	return fmt.Sprintf("add_subdirectory(%s)", cfg.Library)
}

// Block renderers.

func renderDepsBlock(cfg config.Config) string    { return render(tmplDeps, cfg) }
func renderLibraryBlock(cfg config.Config) string { return render(tmplLibrary, cfg) }
func renderSubdirBlock(cfg config.Config) string  { return render(tmplSubdir, cfg) }

func renderMainLinkBlock(target string, cfg config.Config) string {
	return fmt.Sprintf("\n# Link the %s integration into the main executable\n%s\n",
		cfg.Library, mainLinkStatement(target, cfg))
}

func renderStatusBlock(cfg config.Config) string {
	return "\n" + statusMessage(cfg) + "\n"
}

func render(t *template.Template, cfg config.Config) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, cfg); err != nil {
		// Templates are compile-time constants over a plain struct; an
		// execution failure is a programming error.
		panic(err)
	}
	return buf.String()
}
