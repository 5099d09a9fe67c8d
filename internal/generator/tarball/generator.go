package tarball

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ralt/cargo-aur/internal/builder"
	"github.com/ralt/cargo-aur/internal/generator"
	"github.com/ralt/cargo-aur/internal/models"
	"github.com/ralt/cargo-aur/internal/scanner"
	"github.com/ralt/cargo-aur/internal/utils"
	"github.com/sirupsen/logrus"
)

// Generator assembles the release tarball uploaded next to the PKGBUILD
type Generator struct {
	builder     builder.Builder
	compression models.Compression
	modTime     time.Time
}

var _ generator.Generator = (*Generator)(nil)

// NewGenerator creates a tarball generator. Every entry records modTime so
// that identical inputs give identical bytes.
func NewGenerator(b builder.Builder, c models.Compression, modTime time.Time) *Generator {
	return &Generator{
		builder:     b,
		compression: c,
		modTime:     modTime.UTC().Truncate(time.Second),
	}
}

// entry is one file placed at the archive root
type entry struct {
	name string
	path string
	mode int64
}

// Generate builds the binaries and packs them, with the license files, into
// {OutputDir}/{name}-{version}-x86_64.{ext}. It returns the tarball path.
func (g *Generator) Generate(ctx context.Context, config *models.BuildConfig, manifest *models.Manifest, licenses []scanner.LicenseFile) (string, error) {
	binaries := manifest.BinaryNames()

	binDir, err := g.builder.Build(ctx, config.Musl, binaries)
	if err != nil {
		return "", err
	}

	// Declaration order for binaries, then scan order for licenses
	var entries []entry
	for _, name := range binaries {
		path, err := builder.FindBinary(binDir, name)
		if err != nil {
			return "", err
		}
		entries = append(entries, entry{
			name: strings.TrimSuffix(filepath.Base(path), ".exe"),
			path: path,
			mode: 0755,
		})
	}
	for _, lic := range licenses {
		entries = append(entries, entry{name: lic.Name, path: lic.Path, mode: 0644})
	}

	tarballPath := filepath.Join(config.OutputDir, manifest.Package.TarballName(g.compression.Extension()))
	logrus.Infof("Packing tarball %s (%d entries)", tarballPath, len(entries))

	err = utils.WriteAtomic(tarballPath, 0644, func(w io.Writer) error {
		return g.pack(ctx, w, entries)
	})
	if err != nil {
		return "", models.NewError(models.ErrIO, tarballPath, fmt.Errorf("failed to write tarball: %w", err))
	}

	return tarballPath, nil
}

// pack writes entries as a compressed tar stream to w
func (g *Generator) pack(ctx context.Context, w io.Writer, entries []entry) (err error) {
	cw, err := utils.NewCompressor(w, g.compression)
	if err != nil {
		return err
	}
	defer func() {
		// Release encoder state when packing stops early
		if err != nil {
			cw.Close()
		}
	}()

	tw := tar.NewWriter(cw)
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := g.addFile(tw, e); err != nil {
			return fmt.Errorf("failed to add %s: %w", e.name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return cw.Close()
}

func (g *Generator) addFile(tw *tar.Writer, e entry) error {
	f, err := os.Open(e.path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	err = tw.WriteHeader(&tar.Header{
		Name:     e.name,
		Mode:     e.mode,
		Size:     info.Size(),
		ModTime:  g.modTime,
		Typeflag: tar.TypeReg,
	})
	if err != nil {
		return err
	}

	n, err := io.Copy(tw, f)
	if err != nil {
		return err
	}
	if n != info.Size() {
		return fmt.Errorf("%s changed size while packing", e.path)
	}

	return nil
}
