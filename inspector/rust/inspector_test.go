package rust_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/rustscan/inspector/rust"
)

func TestInspector_InspectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	source := `unsafe fn danger() {
    do_one();
}`
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	inspector := rust.NewInspector(nil)
	file, err := inspector.InspectFile(path)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, path, file.Path)
	assert.NotZero(t, file.Digest)
	assert.EqualValues(t, 1, file.Counters.Functions.Unsafe)
	assert.EqualValues(t, 1, file.Counters.Exprs.Unsafe)
}

func TestInspector_InspectFile_Missing(t *testing.T) {
	inspector := rust.NewInspector(nil)
	_, err := inspector.InspectFile(filepath.Join(t.TempDir(), "absent.rs"))
	assert.Error(t, err)
}

func TestInspector_InspectCrate(t *testing.T) {
	root := t.TempDir()
	writeFile := func(rel, content string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	writeFile("Cargo.toml", `[package]
name = "reactor"
version = "0.1.0"
edition = "2021"
`)
	writeFile(filepath.Join("src", "lib.rs"), `#![forbid(unsafe_code)]

pub fn touch() {}
`)
	unsafeSource := `pub unsafe fn poke() {
    raw_write();
}
`
	writeFile(filepath.Join("src", "util.rs"), unsafeSource)
	// identical content must fold into a single contribution
	writeFile(filepath.Join("src", "copy.rs"), unsafeSource)
	// build output is never crate source
	writeFile(filepath.Join("target", "gen.rs"), `pub unsafe fn generated() {}`)
	// gitignored sources are skipped
	writeFile(".gitignore", "src/excluded.rs\n")
	writeFile(filepath.Join("src", "excluded.rs"), `pub unsafe fn hidden() {}`)

	inspector := rust.NewInspector(nil)
	crateMetrics, err := inspector.InspectCrate(filepath.Join(root, "src", "util.rs"))
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, "reactor", crateMetrics.Name)
	assert.Len(t, crateMetrics.Files, 2)
	assert.True(t, crateMetrics.ForbidsUnsafe, "entry point forbid governs the crate flag")
	assert.EqualValues(t, 1, crateMetrics.Totals.Functions.Unsafe)
	assert.EqualValues(t, 1, crateMetrics.Totals.Functions.Safe)
	assert.EqualValues(t, 1, crateMetrics.Totals.Exprs.Unsafe)
}

func TestInspector_InspectCrate_NoManifest(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "main.rs"), []byte(`fn main() {}`), 0o644); err != nil {
		t.Fatal(err)
	}

	inspector := rust.NewInspector(nil)
	crateMetrics, err := inspector.InspectCrate(srcDir)
	if !assert.NoError(t, err) {
		return
	}
	assert.Len(t, crateMetrics.Files, 1)
	assert.EqualValues(t, 1, crateMetrics.Totals.Functions.Safe)
	assert.False(t, crateMetrics.ForbidsUnsafe)
}
