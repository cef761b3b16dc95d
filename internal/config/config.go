// Package config holds the patch configuration: library names, known
// executable targets, dependency pins and scan tuning. Defaults cover the
// stock Selaco tree; a YAML file can override any field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives both patch recipes. Zero values fall back to defaults at
// load time, so a YAML override file only needs the fields it changes.
type Config struct {
	// Library is the CMake library name linked into game executables and the
	// name of the integration subdirectory under SourceDir's parent.
	Library string `yaml:"library"`

	// LibraryTarget is the static library target created in the root file.
	// Its presence anywhere in a document is the completion signature.
	LibraryTarget string `yaml:"library_target"`

	// Executables are candidate main-target names, in priority order.
	Executables []string `yaml:"executables"`

	// Keywords mark a discovered executable as a game target worth linking
	// (matched case-insensitively as substrings).
	Keywords []string `yaml:"keywords"`

	// WindowBytes bounds the scan for nearby dependency declarations after
	// the project() statement.
	WindowBytes int `yaml:"window_bytes"`

	// Dependency pins for the FetchContent block.
	WebsocketsTag string `yaml:"websockets_tag"`
	JSONTag       string `yaml:"json_tag"`

	// SourceDir is the project-relative directory holding the integration
	// sources; Sources lists the files compiled into LibraryTarget.
	SourceDir string   `yaml:"source_dir"`
	Sources   []string `yaml:"sources"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Library:       "archipelago",
		LibraryTarget: "selaco_archipelago",
		Executables:   []string{"selaco", "Selaco", "zdoom", "${ZDOOM_EXE_NAME}"},
		Keywords:      []string{"doom", "heretic", "hexen", "strife", "selaco"},
		WindowBytes:   2000,
		WebsocketsTag: "v4.3.3",
		JSONTag:       "v3.11.3",
		SourceDir:     "src/archipelago",
		Sources: []string{
			"src/archipelago/selaco_websocket.cpp",
			"src/archipelago/selaco_websocket.h",
			"src/archipelago/archipelago_client.cpp",
			"src/archipelago/archipelago_client.h",
			"src/archipelago/archipelago_integration.cpp",
			"src/archipelago/archipelago_integration.h",
		},
	}
}

// Load reads a YAML override file and merges it over Default. An empty path
// returns Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	var over Config
	if err := yaml.Unmarshal(b, &over); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.merge(over)
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.Library != "" {
		c.Library = o.Library
	}
	if o.LibraryTarget != "" {
		c.LibraryTarget = o.LibraryTarget
	}
	if len(o.Executables) > 0 {
		c.Executables = o.Executables
	}
	if len(o.Keywords) > 0 {
		c.Keywords = o.Keywords
	}
	if o.WindowBytes > 0 {
		c.WindowBytes = o.WindowBytes
	}
	if o.WebsocketsTag != "" {
		c.WebsocketsTag = o.WebsocketsTag
	}
	if o.JSONTag != "" {
		c.JSONTag = o.JSONTag
	}
	if o.SourceDir != "" {
		c.SourceDir = o.SourceDir
	}
	if len(o.Sources) > 0 {
		c.Sources = o.Sources
	}
}
