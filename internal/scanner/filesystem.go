package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ralt/cargo-aur/internal/models"
	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner for a project directory
type FileSystemScanner struct {
	standard models.LicenseSet
}

// NewFileSystemScanner creates a scanner that exempts the given standard
// license identifiers
func NewFileSystemScanner(standard models.LicenseSet) *FileSystemScanner {
	return &FileSystemScanner{standard: standard}
}

// Scan lists the top-level LICENSE* files of dir. Only dir itself is read,
// never its subdirectories. The result keeps directory-listing order, which
// os.ReadDir sorts by file name.
func (s *FileSystemScanner) Scan(ctx context.Context, dir, declared string) ([]LicenseFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, models.NewError(models.ErrIO, dir, fmt.Errorf("failed to read directory: %w", err))
	}

	ids := models.DeclaredLicenses(declared)
	found := 0
	var licenses []LicenseFile

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		name := entry.Name()
		if !IsLicenseFile(name) {
			continue
		}

		// Stat follows links; workspace crates often link LICENSE to the root
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Warnf("Skipping dangling license link %s", name)
			continue
		}
		if err != nil {
			return nil, models.NewError(models.ErrIO, path, err)
		}
		if !info.Mode().IsRegular() {
			logrus.Debugf("Skipping non-regular license entry %s", name)
			continue
		}

		found++
		if IsExempt(name, s.standard, ids) {
			logrus.Debugf("%s is covered by the licenses package", name)
			continue
		}

		logrus.Debugf("Found license file: %s", name)
		licenses = append(licenses, LicenseFile{
			Name: name,
			Path: path,
		})
	}

	if found == 0 {
		return nil, models.NewError(models.ErrMissingLicense, dir,
			fmt.Errorf("no %s file found; one is required to build an AUR package", LicensePrefix))
	}

	logrus.Infof("Found %d license files to install in %s", len(licenses), dir)
	return licenses, nil
}
