package githost

import (
	"fmt"
	"strings"

	"github.com/ralt/cargo-aur/internal/models"
)

// Host represents the code hosting provider of a repository
type Host int

const (
	Unknown Host = iota
	GitHub
	GitLab
)

// String returns the string representation of Host
func (h Host) String() string {
	switch h {
	case GitHub:
		return "github"
	case GitLab:
		return "gitlab"
	default:
		return "unknown"
	}
}

// Classify determines the host from the repository URL prefix
func Classify(repository string) Host {
	switch {
	case strings.HasPrefix(repository, "https://github"):
		return GitHub
	case strings.HasPrefix(repository, "https://gitlab"):
		return GitLab
	default:
		return Unknown
	}
}

// SourceURL returns the download URL of the release tarball for the
// PKGBUILD `source` array. $pkgver is left for makepkg to expand.
// Unknown hosts get GitHub's release layout.
func (h Host) SourceURL(repository, name, ext string) string {
	file := fmt.Sprintf("%s-$pkgver-%s.%s", name, models.Arch, ext)
	switch h {
	case GitLab:
		return fmt.Sprintf("%s/-/archive/$pkgver/%s", repository, file)
	default:
		return fmt.Sprintf("%s/releases/download/$pkgver/%s", repository, file)
	}
}
