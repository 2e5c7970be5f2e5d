// Package manifest handles intcode.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents an intcode.toml run configuration: which program
// image to load, how to patch it, what to feed it, and whether to run it
// as a packet network.
type Manifest struct {
	Program Program  `toml:"program"`
	Patch   []Patch  `toml:"patch"`
	Run     Run      `toml:"run"`
	Network *Network `toml:"network"`

	// Dir is the directory containing the intcode.toml file (set at
	// load time).
	Dir string `toml:"-"`
}

// Program names the program image to execute.
type Program struct {
	Path string `toml:"path"`
}

// Patch overwrites one memory address before the program runs
// (noun/verb style configuration).
type Patch struct {
	Address int64 `toml:"address"`
	Value   int64 `toml:"value"`
}

// Run configures a single-machine run.
type Run struct {
	Inputs []int64 `toml:"inputs"`
}

// Network configures a multi-machine packet-network run. When present it
// takes precedence over [run].
type Network struct {
	Nodes     int  `toml:"nodes"`
	NAT       bool `toml:"nat"`
	MaxRounds int  `toml:"max-rounds"`
}

// Load parses an intcode.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "intcode.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if m.Program.Path == "" {
		return nil, fmt.Errorf("%s: [program] path is required", path)
	}
	if m.Network != nil {
		if m.Network.Nodes <= 0 {
			return nil, fmt.Errorf("%s: [network] nodes must be positive", path)
		}
		if m.Network.MaxRounds == 0 {
			m.Network.MaxRounds = 100000
		}
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find an intcode.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "intcode.toml")); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// ProgramPath returns the program image path resolved against the
// manifest's directory.
func (m *Manifest) ProgramPath() string {
	if filepath.IsAbs(m.Program.Path) {
		return m.Program.Path
	}
	return filepath.Join(m.Dir, m.Program.Path)
}
