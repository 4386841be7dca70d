// Package layerfile loads the declarative YAML description of the layers a
// build produces.
package layerfile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/bibin-skaria/layerkit/internal/types"
	"github.com/bibin-skaria/layerkit/permissions"
	"github.com/bibin-skaria/layerkit/unixpath"
)

// File is a parsed layerfile
type File struct {
	Compression string      `yaml:"compression,omitempty"`
	Layers      []LayerSpec `yaml:"layers"`
}

// LayerSpec describes one layer to build
type LayerSpec struct {
	Name    string      `yaml:"name"`
	Entries []EntrySpec `yaml:"entries"`
}

// EntrySpec describes one entry of a layer. Source is a host path, resolved
// against the build context when relative. Target is the absolute path
// inside the container. Mode is a three digit octal string and ModTime an
// RFC 3339 timestamp; both are optional, and with Recursive set they apply
// to every node of the expanded subtree.
type EntrySpec struct {
	Source    string `yaml:"source"`
	Target    string `yaml:"target"`
	Mode      string `yaml:"mode,omitempty"`
	ModTime   string `yaml:"mtime,omitempty"`
	Recursive bool   `yaml:"recursive,omitempty"`
}

// Load reads and parses the layerfile at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layerfile: %v", err)
	}
	return Parse(data)
}

// Parse parses and validates layerfile content
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse layerfile: %v", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if _, err := types.ParseCompression(f.Compression); err != nil {
		return err
	}

	if len(f.Layers) == 0 {
		return fmt.Errorf("layerfile defines no layers")
	}

	seen := make(map[string]bool)
	for i, layer := range f.Layers {
		if layer.Name == "" {
			return fmt.Errorf("layer %d has no name", i)
		}
		if seen[layer.Name] {
			return fmt.Errorf("duplicate layer name %q", layer.Name)
		}
		seen[layer.Name] = true

		for j, entry := range layer.Entries {
			if err := entry.validate(); err != nil {
				return fmt.Errorf("layer %q entry %d: %v", layer.Name, j, err)
			}
		}
	}

	return nil
}

func (e EntrySpec) validate() error {
	if e.Source == "" {
		return fmt.Errorf("source is required")
	}
	if _, err := e.TargetPath(); err != nil {
		return err
	}
	if _, _, err := e.FilePermissions(); err != nil {
		return err
	}
	if _, _, err := e.ModificationTime(); err != nil {
		return err
	}
	return nil
}

// TargetPath returns the entry's container destination
func (e EntrySpec) TargetPath() (unixpath.AbsolutePath, error) {
	target, err := unixpath.Parse(e.Target)
	if err != nil {
		return unixpath.AbsolutePath{}, fmt.Errorf("invalid target: %v", err)
	}
	return target, nil
}

// FilePermissions returns the entry's mode override and whether one is set
func (e EntrySpec) FilePermissions() (permissions.FilePermissions, bool, error) {
	if e.Mode == "" {
		return 0, false, nil
	}
	perms, err := permissions.FromOctalString(e.Mode)
	if err != nil {
		return 0, false, fmt.Errorf("invalid mode: %v", err)
	}
	return perms, true, nil
}

// ModificationTime returns the entry's mtime override and whether one is set
func (e EntrySpec) ModificationTime() (time.Time, bool, error) {
	if e.ModTime == "" {
		return time.Time{}, false, nil
	}
	modTime, err := time.Parse(time.RFC3339, e.ModTime)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid mtime: %v", err)
	}
	return modTime, true, nil
}
