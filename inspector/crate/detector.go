package crate

import (
	"os"
	"path/filepath"
)

// Detector identifies crate root folders and provides crate-related information
type Detector struct {
	// Crate root marker files/directories
	markers []string
}

// New creates a new crate detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"Cargo.toml", // crate manifest
			".git",       // generic VCS marker
		},
	}
}

// Crate describes a detected crate.
type Crate struct {
	Name     string
	RootPath string
	// EntryPoint is src/lib.rs or src/main.rs when present; the crate level
	// forbid(unsafe_code) flag is read from this file.
	EntryPoint string
}

// Detect identifies the crate containing the given file or directory path.
func (d *Detector) Detect(location string) (*Crate, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}

	// If the path is a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath := d.findCrateRoot(startDir)
	if rootPath == "" {
		// No marker found; treat the starting directory as the root
		rootPath = startDir
	}

	return &Crate{
		Name:       Name(rootPath),
		RootPath:   rootPath,
		EntryPoint: findEntryPoint(rootPath),
	}, nil
}

// findCrateRoot searches up from the current directory for crate markers
func (d *Detector) findCrateRoot(startDir string) string {
	dir := startDir

	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, err := os.Stat(markerPath); err == nil {
				return dir
			}
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			break
		}
		dir = parent
	}

	return ""
}

// findEntryPoint returns the crate entry source, preferring a library root.
func findEntryPoint(rootPath string) string {
	for _, candidate := range []string{
		filepath.Join("src", "lib.rs"),
		filepath.Join("src", "main.rs"),
	} {
		entryPath := filepath.Join(rootPath, candidate)
		if _, err := os.Stat(entryPath); err == nil {
			return entryPath
		}
	}
	return ""
}
