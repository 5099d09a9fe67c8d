package generator

import (
	"context"

	"github.com/ralt/cargo-aur/internal/models"
	"github.com/ralt/cargo-aur/internal/scanner"
)

// Generator produces the release artifact that a PKGBUILD downloads
type Generator interface {
	// Generate builds the crate and writes the artifact under
	// config.OutputDir, returning its path
	Generate(ctx context.Context, config *models.BuildConfig, manifest *models.Manifest, licenses []scanner.LicenseFile) (string, error)
}
