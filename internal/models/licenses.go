package models

import "strings"

// DefaultStandardLicenses returns the SPDX identifiers shipped by the Arch
// Linux `licenses` package that a Rust crate is likely to use. Packages under
// one of these need no license file installed by hand.
func DefaultStandardLicenses() []string {
	return []string{
		"AGPL-3.0-only",
		"AGPL-3.0-or-later",
		"Apache-2.0",
		"BSL-1.0", // Boost Software License.
		"GPL-2.0-only",
		"GPL-2.0-or-later",
		"GPL-3.0-only",
		"GPL-3.0-or-later",
		"LGPL-2.0-only",
		"LGPL-2.0-or-later",
		"LGPL-3.0-only",
		"LGPL-3.0-or-later",
		"MPL-2.0",   // Mozilla Public License.
		"Unlicense", // Not to be confused with "Unlicensed".
	}
}

// LicenseSet is a case-insensitive set of license identifiers
type LicenseSet map[string]struct{}

// NewLicenseSet builds a set from ids
func NewLicenseSet(ids ...string) LicenseSet {
	s := make(LicenseSet, len(ids))
	for _, id := range ids {
		s[strings.ToLower(id)] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set
func (s LicenseSet) Contains(id string) bool {
	_, ok := s[strings.ToLower(id)]
	return ok
}

// DeclaredLicenses splits an SPDX license expression such as
// "MIT OR Apache-2.0" or the older "MIT/Apache-2.0" into its identifiers.
func DeclaredLicenses(expr string) []string {
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return r == '/' || r == '(' || r == ')' || r == ' ' || r == '\t'
	})
	var ids []string
	for _, f := range fields {
		switch strings.ToUpper(f) {
		case "OR", "AND", "WITH":
			continue
		}
		ids = append(ids, f)
	}
	return ids
}
