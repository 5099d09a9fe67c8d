package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ralt/cargo-aur/internal/models"
)

const cargoToml = `
[package]
name = "foo"
version = "1.2.0"
authors = ["Jane Doe <jane@example.com>", "John Roe"]
description = "A foo tool"
homepage = "https://foo.example.com"
repository = "https://github.com/a/foo"
license = "MIT"
edition = "2021"

[package.metadata]
depends = ["legacy-dep"]

[package.metadata.aur]
depends = ["git", "openssl"]
optdepends = ["bat: prettier output"]

[[bin]]
name = "foo-cli"
path = "src/main.rs"

[[bin]]
name = "foo-helper"

[dependencies]
serde = "1"
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(cargoToml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if m.Package.Name != "foo" || m.Package.Version != "1.2.0" {
		t.Errorf("unexpected identity: %s %s", m.Package.Name, m.Package.Version)
	}
	if len(m.Package.Authors) != 2 {
		t.Errorf("expected 2 authors, got %d", len(m.Package.Authors))
	}
	if m.BinaryName() != "foo-cli" {
		t.Errorf("BinaryName() = %q", m.BinaryName())
	}

	deps, legacy := m.Package.Dependencies()
	if legacy {
		t.Error("preferred block present, legacy should not be reported")
	}
	if !reflect.DeepEqual(deps.Depends, []string{"git", "openssl"}) {
		t.Errorf("Depends = %v", deps.Depends)
	}
	if !reflect.DeepEqual(deps.Optdepends, []string{"bat: prettier output"}) {
		t.Errorf("Optdepends = %v", deps.Optdepends)
	}
}

func TestParseLegacyMetadata(t *testing.T) {
	data := `
[package]
name = "foo"
version = "0.1.0"
description = "d"
repository = "https://gitlab.com/a/foo"
license = "GPL-3.0-or-later"

[package.metadata]
depends = ["a", "b"]
`
	m, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	deps, legacy := m.Package.Dependencies()
	if !legacy {
		t.Error("expected legacy location to be reported")
	}
	if !reflect.DeepEqual(deps.Depends, []string{"a", "b"}) {
		t.Errorf("Depends = %v", deps.Depends)
	}
	if m.Package.URL() != "https://gitlab.com/a/foo" {
		t.Errorf("URL should fall back to repository, got %q", m.Package.URL())
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":        "[package\nname = 1",
		"wrong type":    "[package]\nname = 1",
		"missing field": "[package]\nname = \"foo\"\nversion = \"1.0.0\"",
	}
	for name, data := range tests {
		_, err := Parse([]byte(data))
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !models.IsType(err, models.ErrManifest) {
			t.Errorf("%s: expected manifest error, got %v", name, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte(cargoToml), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Package.Name != "foo" {
		t.Errorf("unexpected name %q", m.Package.Name)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !models.IsType(err, models.ErrIO) {
		t.Errorf("expected IO error for missing manifest, got %v", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("[package]\n"), 0644)
	_, err = Load(bad)
	if !models.IsType(err, models.ErrManifest) {
		t.Errorf("expected manifest error, got %v", err)
	}
}
