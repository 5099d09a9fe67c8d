package builder

import "context"

// MuslTarget is the rustc target triple used for static builds
const MuslTarget = "x86_64-unknown-linux-musl"

// Builder compiles the project's binaries
type Builder interface {
	// Build compiles the release binaries and returns the directory that
	// holds them. binaries lists the executables expected in that directory.
	Build(ctx context.Context, musl bool, binaries []string) (string, error)
}
