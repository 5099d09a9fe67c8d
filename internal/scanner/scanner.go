package scanner

import "context"

// LicensePrefix is the file name prefix that marks a license file
const LicensePrefix = "LICENSE"

// LicenseFile represents a license file found in the project root
type LicenseFile struct {
	Name string
	Path string
}

// Scanner interface for discovering license files that must ship manually
type Scanner interface {
	// Scan lists the license files in dir that the package installs itself.
	// declared is the manifest's license expression.
	Scan(ctx context.Context, dir, declared string) ([]LicenseFile, error)
}

// Names returns the file names of files in order
func Names(files []LicenseFile) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}
