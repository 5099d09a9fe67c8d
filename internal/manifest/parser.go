package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ralt/cargo-aur/internal/models"
	"github.com/sirupsen/logrus"
)

// Load reads and validates the Cargo manifest at path
func Load(path string) (*models.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewError(models.ErrIO, path, fmt.Errorf("failed to read manifest: %w", err))
	}

	m, err := Parse(data)
	if err != nil {
		var aerr *models.AurError
		if errors.As(err, &aerr) {
			aerr.Path = path
		}
		return nil, err
	}

	logrus.Debugf("Loaded manifest %s: %s %s (%d bin targets)", path, m.Package.Name, m.Package.Version, len(m.Bin))
	return m, nil
}

// Parse decodes and validates a Cargo manifest held in memory
func Parse(data []byte) (*models.Manifest, error) {
	var m models.Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, models.NewError(models.ErrManifest, "", fmt.Errorf("failed to parse manifest: %w", err))
	}

	// Only [package] and [[bin]] are modelled; anything else is expected.
	for _, key := range md.Undecoded() {
		logrus.Debugf("Ignoring manifest key %s", key)
	}

	if err := m.Validate(); err != nil {
		return nil, models.NewError(models.ErrManifest, "", err)
	}

	return &m, nil
}
