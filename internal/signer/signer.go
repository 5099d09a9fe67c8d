package signer

import "io"

// Signer interface for signing release artifacts
type Signer interface {
	// SignDetached creates a binary detached signature over r
	SignDetached(r io.Reader) ([]byte, error)

	// Fingerprint returns the signing key fingerprint as upper-case hex,
	// the form makepkg expects in validpgpkeys
	Fingerprint() string
}
