package crate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/rustscan/inspector/crate"
)

func TestDetector_Detect(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "src", "net")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := `[package]
name = "reactor"
version = "0.1.0"
`
	if err := os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	libPath := filepath.Join(root, "src", "lib.rs")
	if err := os.WriteFile(libPath, []byte("pub fn touch() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	filePath := filepath.Join(srcDir, "socket.rs")
	if err := os.WriteFile(filePath, []byte("fn open() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	detector := crate.New()
	detected, err := detector.Detect(filePath)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, root, detected.RootPath)
	assert.Equal(t, "reactor", detected.Name)
	assert.Equal(t, libPath, detected.EntryPoint)
}

func TestDetector_Detect_NoMarker(t *testing.T) {
	dir := t.TempDir()
	detector := crate.New()
	detected, err := detector.Detect(dir)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, dir, detected.RootPath)
	assert.Equal(t, filepath.Base(dir), detected.Name)
	assert.Empty(t, detected.EntryPoint)
}

func TestName_Fallback(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Base(dir), crate.Name(dir))

	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"widget\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "widget", crate.Name(dir))
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	content := `[package]
name = "reactor"
version = "0.3.1"
edition = "2021"

[dependencies]
libc = "0.2"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	manifest, err := crate.LoadManifest(path)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "reactor", manifest.Package.Name)
	assert.Equal(t, "0.3.1", manifest.Package.Version)
	assert.Equal(t, "2021", manifest.Package.Edition)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rustscan.yaml")
	content := `includeTests: true
concurrency: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := crate.LoadConfig(path)
	if !assert.NoError(t, err) {
		return
	}
	assert.True(t, config.IncludeTests)
	assert.Equal(t, 2, config.Concurrency)
	assert.True(t, config.SkipGitignored, "absent fields keep defaults")

	_, err = crate.LoadConfig(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}
