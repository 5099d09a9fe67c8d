package models

import (
	"fmt"
	"strings"
	"unicode"
)

// Arch is the only architecture the produced packages target
const Arch = "x86_64"

// Manifest is the subset of Cargo.toml needed to build an AUR package
type Manifest struct {
	Package Package  `toml:"package"`
	Bin     []Binary `toml:"bin"`
}

// Package holds the [package] table
type Package struct {
	Name        string    `toml:"name"`
	Version     string    `toml:"version"`
	Authors     []string  `toml:"authors"`
	Description string    `toml:"description"`
	Homepage    string    `toml:"homepage"`
	Repository  string    `toml:"repository"`
	License     string    `toml:"license"`
	Metadata    *Metadata `toml:"metadata"`
}

// Metadata holds [package.metadata].
//
// Depends and Optdepends at this level are deprecated in favour of
// [package.metadata.aur].
type Metadata struct {
	Depends    []string     `toml:"depends"`
	Optdepends []string     `toml:"optdepends"`
	AUR        *AURMetadata `toml:"aur"`
}

// AURMetadata holds [package.metadata.aur]
type AURMetadata struct {
	Depends    []string `toml:"depends"`
	Optdepends []string `toml:"optdepends"`
}

// Binary is a [[bin]] target
type Binary struct {
	Name string `toml:"name"`
}

// Dependencies are the runtime dependency lists emitted into the PKGBUILD
type Dependencies struct {
	Depends    []string
	Optdepends []string
}

// Empty reports whether neither list has entries
func (d Dependencies) Empty() bool {
	return len(d.Depends) == 0 && len(d.Optdepends) == 0
}

// BinaryName returns the name of the compiled binary that ships as the
// primary executable: the first [[bin]] target, or the package name.
func (m *Manifest) BinaryName() string {
	if len(m.Bin) > 0 && m.Bin[0].Name != "" {
		return m.Bin[0].Name
	}
	return m.Package.Name
}

// ExtraBinaries returns the [[bin]] targets after the primary one
func (m *Manifest) ExtraBinaries() []string {
	if len(m.Bin) < 2 {
		return nil
	}
	names := make([]string, 0, len(m.Bin)-1)
	for _, b := range m.Bin[1:] {
		if b.Name != "" {
			names = append(names, b.Name)
		}
	}
	return names
}

// BinaryNames returns the primary binary followed by the extra ones
func (m *Manifest) BinaryNames() []string {
	return append([]string{m.BinaryName()}, m.ExtraBinaries()...)
}

// Validate checks the fields the artifacts are derived from
func (m *Manifest) Validate() error {
	p := &m.Package
	required := []struct {
		key   string
		value string
	}{
		{"package.name", p.Name},
		{"package.version", p.Version},
		{"package.description", p.Description},
		{"package.license", p.License},
		{"package.repository", p.Repository},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("missing required field %s", r.key)
		}
	}

	// Both end up in the tarball file name.
	if !isPathSafe(p.Name) {
		return fmt.Errorf("package.name %q contains whitespace or a path separator", p.Name)
	}
	if !isPathSafe(p.Version) {
		return fmt.Errorf("package.version %q contains whitespace or a path separator", p.Version)
	}

	for i, b := range m.Bin {
		if b.Name == "" {
			return fmt.Errorf("bin[%d] is missing a name", i)
		}
		if !isPathSafe(b.Name) {
			return fmt.Errorf("bin[%d].name %q contains whitespace or a path separator", i, b.Name)
		}
	}

	return nil
}

// URL returns the project homepage, falling back to the repository
func (p *Package) URL() string {
	if p.Homepage != "" {
		return p.Homepage
	}
	return p.Repository
}

// TarballName returns the file name of the release tarball
func (p *Package) TarballName(ext string) string {
	return fmt.Sprintf("%s-%s-%s.%s", p.Name, p.Version, Arch, ext)
}

// Dependencies reconciles the two places extra dependencies can be declared.
// [package.metadata.aur] wins whenever it is present; otherwise the legacy
// [package.metadata] lists are used, and usedLegacy reports that they were
// non-empty so the caller can print a deprecation notice.
func (p *Package) Dependencies() (deps Dependencies, usedLegacy bool) {
	if p.Metadata == nil {
		return Dependencies{}, false
	}
	if aur := p.Metadata.AUR; aur != nil {
		return Dependencies{Depends: aur.Depends, Optdepends: aur.Optdepends}, false
	}
	deps = Dependencies{Depends: p.Metadata.Depends, Optdepends: p.Metadata.Optdepends}
	return deps, !deps.Empty()
}

func isPathSafe(s string) bool {
	return !strings.ContainsFunc(s, func(r rune) bool {
		return r == '/' || r == '\\' || unicode.IsSpace(r)
	})
}
