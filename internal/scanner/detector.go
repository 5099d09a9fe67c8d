package scanner

import (
	"strings"

	"github.com/ralt/cargo-aur/internal/models"
)

// IsLicenseFile reports whether name looks like a license file
func IsLicenseFile(name string) bool {
	return strings.HasPrefix(name, LicensePrefix)
}

// licenseID extracts the identifier from names like LICENSE-Apache-2.0,
// LICENSE_MIT or LICENSE.GPL-3.0-only. A bare LICENSE has none.
func licenseID(name string) string {
	rest := strings.TrimPrefix(name, LicensePrefix)
	if rest == "" {
		return ""
	}
	switch rest[0] {
	case '-', '_', '.':
		return rest[1:]
	}
	return ""
}

// IsExempt reports whether a license file names a standard license that the
// manifest declares. Those are installed by Arch's `licenses` package, so the
// file does not need to ship.
func IsExempt(name string, standard models.LicenseSet, declared []string) bool {
	id := licenseID(name)
	if id == "" || !standard.Contains(id) {
		return false
	}
	for _, d := range declared {
		if strings.EqualFold(d, id) {
			return true
		}
	}
	return false
}
