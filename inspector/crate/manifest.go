package crate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/viant/afs"
)

// Manifest holds the subset of Cargo.toml needed to identify a crate.
type Manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		Edition string `toml:"edition"`
	} `toml:"package"`
}

// LoadManifest reads and decodes a Cargo.toml file.
func LoadManifest(path string) (*Manifest, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(context.Background(), path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	manifest := &Manifest{}
	if err := toml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return manifest, nil
}

// Name resolves the crate name for a root directory, falling back to the
// directory base when the manifest is missing or carries no package name.
func Name(rootPath string) string {
	manifest, err := LoadManifest(filepath.Join(rootPath, "Cargo.toml"))
	if err != nil || manifest.Package.Name == "" {
		return filepath.Base(rootPath)
	}
	return manifest.Package.Name
}
