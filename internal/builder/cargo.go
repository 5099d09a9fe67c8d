package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ralt/cargo-aur/internal/models"
	"github.com/sirupsen/logrus"
)

// CargoBuilder implements Builder by running `cargo build --release`
type CargoBuilder struct {
	WorkDir string
	Cargo   string // cargo executable, "cargo" when empty
	Strip   bool   // run `strip` over each binary after the build

	Stdout io.Writer
	Stderr io.Writer
}

// NewCargoBuilder creates a builder for the crate in workDir
func NewCargoBuilder(workDir string, strip bool) *CargoBuilder {
	return &CargoBuilder{
		WorkDir: workDir,
		Cargo:   "cargo",
		Strip:   strip,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Build runs cargo and checks that every expected binary was produced
func (b *CargoBuilder) Build(ctx context.Context, musl bool, binaries []string) (string, error) {
	args := []string{"build", "--release"}
	if musl {
		args = append(args, "--target", MuslTarget)
	}

	cargo := b.Cargo
	if cargo == "" {
		cargo = "cargo"
	}

	logrus.Infof("Running %s %v", cargo, args)
	cmd := exec.CommandContext(ctx, cargo, args...)
	cmd.Dir = b.WorkDir
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr
	if err := cmd.Run(); err != nil {
		return "", models.NewError(models.ErrBuild, b.WorkDir, fmt.Errorf("cargo build failed: %w", err))
	}

	dir := b.ReleaseDir(musl)
	for _, name := range binaries {
		path, err := FindBinary(dir, name)
		if err != nil {
			return "", err
		}
		if b.Strip {
			b.strip(ctx, path)
		}
	}

	return dir, nil
}

// ReleaseDir returns where cargo places release binaries, honouring
// CARGO_TARGET_DIR
func (b *CargoBuilder) ReleaseDir(musl bool) string {
	target := os.Getenv("CARGO_TARGET_DIR")
	if target == "" {
		target = "target"
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(b.WorkDir, target)
	}
	if musl {
		return filepath.Join(target, MuslTarget, "release")
	}
	return filepath.Join(target, "release")
}

func (b *CargoBuilder) strip(ctx context.Context, path string) {
	stripBin, err := exec.LookPath("strip")
	if err != nil {
		logrus.Warnf("strip not found, shipping %s unstripped", filepath.Base(path))
		return
	}

	logrus.Debugf("Stripping %s", path)
	cmd := exec.CommandContext(ctx, stripBin, path)
	cmd.Stderr = b.Stderr
	if err := cmd.Run(); err != nil {
		logrus.Warnf("Failed to strip %s: %v", path, err)
	}
}

// FindBinary locates a compiled binary in dir, accepting a platform
// executable suffix
func FindBinary(dir, name string) (string, error) {
	for _, candidate := range []string{name, name + ".exe"} {
		path := filepath.Join(dir, candidate)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", models.NewError(models.ErrIO, path, err)
		}
	}
	return "", models.NewError(models.ErrIO, filepath.Join(dir, name), fmt.Errorf("compiled binary not found"))
}
