package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// chunkSize bounds how much of a file is held in memory while hashing
const chunkSize = 64 * 1024

// Checksum contains the digests makepkg can verify a source with
type Checksum struct {
	SHA256 string
	B2     string // BLAKE2b-512, for b2sums
	Size   int64
}

// CalculateChecksums calculates all checksums for a file in a single pass
func CalculateChecksums(path string) (*Checksum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return HashReader(f)
}

// HashReader streams r through every digest in fixed-size chunks
func HashReader(r io.Reader) (*Checksum, error) {
	sha256Hash := sha256.New()
	b2Hash, err := blake2b.New512(nil)
	if err != nil {
		return nil, err
	}

	// Use MultiWriter to calculate all hashes at once
	multiWriter := io.MultiWriter(sha256Hash, b2Hash)

	buf := make([]byte, chunkSize)
	n, err := io.CopyBuffer(multiWriter, onlyReader{r}, buf)
	if err != nil {
		return nil, err
	}

	return &Checksum{
		SHA256: hex.EncodeToString(sha256Hash.Sum(nil)),
		B2:     hex.EncodeToString(b2Hash.Sum(nil)),
		Size:   n,
	}, nil
}

// onlyReader hides WriterTo so io.CopyBuffer honours the chunk size
type onlyReader struct {
	io.Reader
}
