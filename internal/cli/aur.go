package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ralt/cargo-aur/internal/builder"
	"github.com/ralt/cargo-aur/internal/generator"
	"github.com/ralt/cargo-aur/internal/generator/pkgbuild"
	"github.com/ralt/cargo-aur/internal/generator/tarball"
	"github.com/ralt/cargo-aur/internal/githost"
	"github.com/ralt/cargo-aur/internal/manifest"
	"github.com/ralt/cargo-aur/internal/models"
	"github.com/ralt/cargo-aur/internal/scanner"
	"github.com/ralt/cargo-aur/internal/signer"
	"github.com/ralt/cargo-aur/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewAurCmd creates the command that produces the tarball and PKGBUILD
func NewAurCmd() *cobra.Command {
	var config models.BuildConfig
	var compression string
	var extraLicenses []string
	var noStrip bool

	cmd := &cobra.Command{
		Use:   "cargo-aur",
		Short: "Prepare Rust projects to be released on the Arch Linux User Repository",
		Long: `Builds the crate in release mode and writes two files under
target/cargo-aur:

  - {name}-{version}-x86_64.tar.gz, holding the binaries and LICENSE files
  - PKGBUILD, which downloads, verifies and installs that tarball

Upload the tarball as a release asset, then publish the PKGBUILD to the AUR.
Run it directly or as "cargo aur".`,
		// cargo passes the subcommand name ("aur") as the first argument
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := models.ParseCompression(compression)
			if err != nil {
				return models.NewError(models.ErrInvalidConfig, "", err)
			}
			config.Compression = c
			config.Strip = !noStrip
			config.StandardLicenses = append(models.DefaultStandardLicenses(), extraLicenses...)

			// Validate configuration
			if err := validateConfig(&config); err != nil {
				return err
			}
			logrus.Debugf("Configuration: %+v", config)

			b := builder.NewCargoBuilder(config.WorkDir, config.Strip)
			if err := runPipeline(cmd.Context(), &config, b); err != nil {
				return err
			}

			done()
			return nil
		},
	}

	// Build flags
	cmd.Flags().BoolVar(&config.Musl, "musl", false, "Use the MUSL build target to produce a static binary")
	cmd.Flags().BoolVar(&config.DryRun, "dryrun", false, "Don't actually build anything")
	cmd.Flags().BoolVar(&noStrip, "no-strip", false, "Don't strip the compiled binaries")

	// Input/Output flags
	cmd.Flags().StringVar(&config.ManifestPath, "manifest-path", "Cargo.toml", "Path to Cargo.toml")
	cmd.Flags().StringVarP(&config.OutputDir, "output-dir", "o", "", "Output directory (default: target/cargo-aur next to Cargo.toml)")

	// Artifact flags
	cmd.Flags().StringVar(&compression, "compression", "gz", "Tarball compression (gz, zst, xz)")
	cmd.Flags().StringSliceVar(&extraLicenses, "standard-license", nil, "Additional license identifiers provided by the licenses package")
	cmd.Flags().StringVar(&config.PkgnameSuffix, "pkgname-suffix", "", "Suffix appended to pkgname, e.g. -bin")
	cmd.Flags().BoolVar(&config.B2Sums, "b2sums", false, "Also emit BLAKE2 b2sums")

	// GPG signing flags
	cmd.Flags().StringVarP(&config.GPGKeyPath, "gpg-key", "k", "", "Path to GPG private key used to sign the tarball")
	cmd.Flags().StringVarP(&config.GPGPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}

func validateConfig(config *models.BuildConfig) error {
	if config.ManifestPath == "" {
		return &models.AurError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("manifest-path is required"),
		}
	}

	// cargo runs and LICENSE files are looked up next to the manifest
	if config.WorkDir == "" {
		config.WorkDir = filepath.Dir(config.ManifestPath)
	}
	if config.OutputDir == "" {
		config.OutputDir = filepath.Join(config.WorkDir, "target", "cargo-aur")
	}

	if config.Compression == "" {
		config.Compression = models.CompressionGzip
	}
	if len(config.StandardLicenses) == 0 {
		config.StandardLicenses = models.DefaultStandardLicenses()
	}

	if epoch := os.Getenv("SOURCE_DATE_EPOCH"); epoch != "" && config.SourceDateEpoch == 0 {
		v, err := strconv.ParseInt(epoch, 10, 64)
		if err != nil || v < 0 {
			return &models.AurError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("invalid SOURCE_DATE_EPOCH %q", epoch),
			}
		}
		config.SourceDateEpoch = v
	}

	return nil
}

// runPipeline produces the tarball and PKGBUILD. Each stage finishes before
// the next starts, and the PKGBUILD is only written once everything it
// depends on succeeded.
func runPipeline(ctx context.Context, config *models.BuildConfig, b builder.Builder) error {
	// Ensure the target can actually be written to before doing any work
	if err := utils.EnsureDir(config.OutputDir); err != nil {
		return models.NewError(models.ErrIO, config.OutputDir, fmt.Errorf("failed to create output directory: %w", err))
	}

	// Step 1: Load metadata
	logrus.Infof("Reading manifest: %s", config.ManifestPath)
	m, err := manifest.Load(config.ManifestPath)
	if err != nil {
		return err
	}

	if _, legacy := m.Package.Dependencies(); legacy {
		notice("Use of [package.metadata] is deprecated. Please specify extra dependencies under [package.metadata.aur].")
	}

	host := githost.Classify(m.Package.Repository)
	if host == githost.Unknown {
		logrus.Warnf("Repository %s is not hosted on GitHub or GitLab; assuming GitHub's release URL layout", m.Package.Repository)
	}

	// Step 2: Find license files
	var sc scanner.Scanner = scanner.NewFileSystemScanner(models.NewLicenseSet(config.StandardLicenses...))
	licenses, err := sc.Scan(ctx, config.WorkDir, m.Package.License)
	if err != nil {
		return err
	}

	if config.DryRun {
		logrus.Info("Dry run, nothing will be built")
		return nil
	}

	if len(licenses) > 0 {
		notice("LICENSE file will be installed manually.")
	}

	// Step 3: Initialize signer before the potentially long build
	var s signer.Signer
	if config.GPGKeyPath != "" {
		gpgSigner, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
		if err != nil {
			return &models.AurError{
				Type: models.ErrSigning,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		s = gpgSigner
		logrus.Info("GPG signer initialized")
	}

	// Step 4: Build and pack
	var gen generator.Generator = tarball.NewGenerator(b, config.Compression, time.Unix(config.SourceDateEpoch, 0))
	tarballPath, err := gen.Generate(ctx, config, m, licenses)
	if err != nil {
		return err
	}

	if s != nil {
		if err := signTarball(s, tarballPath); err != nil {
			return err
		}
	}

	// Step 5: Hash the closed tarball
	checksums, err := utils.CalculateChecksums(tarballPath)
	if err != nil {
		return models.NewError(models.ErrIO, tarballPath, fmt.Errorf("failed to hash tarball: %w", err))
	}
	logrus.Infof("Tarball sha256: %s (%d bytes)", checksums.SHA256, checksums.Size)

	// Step 6: Render the PKGBUILD
	recipe := &pkgbuild.Recipe{
		Manifest:      m,
		Source:        host.SourceURL(m.Package.Repository, m.Package.Name, config.Compression.Extension()),
		SHA256:        checksums.SHA256,
		Licenses:      scanner.Names(licenses),
		PkgnameSuffix: config.PkgnameSuffix,
	}
	if config.B2Sums {
		recipe.B2 = checksums.B2
	}
	if s != nil {
		recipe.Fingerprint = s.Fingerprint()
	}

	pkgbuildPath := filepath.Join(config.OutputDir, pkgbuild.FileName)
	err = utils.WriteAtomic(pkgbuildPath, 0644, func(w io.Writer) error {
		return pkgbuild.Render(w, recipe)
	})
	if err != nil {
		return models.NewError(models.ErrIO, pkgbuildPath, fmt.Errorf("failed to write PKGBUILD: %w", err))
	}

	logrus.Infof("Wrote %s", pkgbuildPath)
	return nil
}

// signTarball writes a detached signature next to the tarball
func signTarball(s signer.Signer, tarballPath string) error {
	f, err := os.Open(tarballPath)
	if err != nil {
		return models.NewError(models.ErrIO, tarballPath, err)
	}
	defer f.Close()

	sig, err := s.SignDetached(f)
	if err != nil {
		return models.NewError(models.ErrSigning, tarballPath, err)
	}

	sigPath := tarballPath + ".sig"
	if err := utils.WriteFileAtomic(sigPath, sig, 0644); err != nil {
		return models.NewError(models.ErrIO, sigPath, fmt.Errorf("failed to write signature: %w", err))
	}

	logrus.Infof("Signed tarball: %s", sigPath)
	return nil
}
