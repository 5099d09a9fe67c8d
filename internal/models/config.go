package models

import (
	"fmt"
	"strings"
)

// BuildConfig contains configuration for a cargo-aur run
type BuildConfig struct {
	// Input/Output
	ManifestPath string
	WorkDir      string // Directory scanned for LICENSE files and where cargo runs
	OutputDir    string

	// Build
	Musl   bool // Build against the MUSL target for a static binary
	DryRun bool // Validate only, produce nothing
	Strip  bool

	// Artifacts
	Compression      Compression
	StandardLicenses []string // Licenses shipped by Arch's `licenses` package
	PkgnameSuffix    string   // Appended to pkgname, e.g. "-bin"
	B2Sums           bool
	SourceDateEpoch  int64 // Mod time recorded for every tarball entry

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}

// Compression selects the tarball compressor
type Compression string

const (
	CompressionGzip Compression = "gz"
	CompressionZstd Compression = "zst"
	CompressionXz   Compression = "xz"
)

// Extension returns the tarball file extension for c
func (c Compression) Extension() string {
	return "tar." + string(c)
}

// ParseCompression maps a flag value to a Compression
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "gz", "gzip", "tar.gz":
		return CompressionGzip, nil
	case "zst", "zstd", "tar.zst":
		return CompressionZstd, nil
	case "xz", "tar.xz":
		return CompressionXz, nil
	default:
		return "", fmt.Errorf("unsupported compression %q (want gz, zst or xz)", s)
	}
}
