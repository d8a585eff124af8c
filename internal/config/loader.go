package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/atlanticdynamic/vaultlight/internal/config/errz"
)

// LoadFile reads a TOML settings file into an Overlay. A missing file is not
// an error; it simply contributes nothing to the layering.
func LoadFile(path string) (Overlay, error) {
	var o Overlay
	if path == "" {
		return o, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return o, nil
		}
		return o, fmt.Errorf("%w: %w", errz.ErrFailedToLoadConfig, err)
	}

	if err := toml.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("%w: %s: %w", errz.ErrFailedToLoadConfig, path, err)
	}
	return o, nil
}
