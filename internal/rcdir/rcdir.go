// Package rcdir resolves which directory of rc-files to travel.
package rcdir

import (
	"fmt"
	"os"
	"path/filepath"

	"rcferry/internal/constants"
)

// Resolve returns the source directory and whether the invoking
// context is itself a travelled session.
//
// When the marker variable points at an already-unpacked bundle that
// still holds the anchor file, that bundle becomes the source: a
// nested travel re-ships the unpacked files, since the original source
// directory does not exist on this host. Otherwise the configured
// directory wins, then ~/.rcferry.d.
func Resolve(configured string) (dir string, nested bool, err error) {
	if bundle := os.Getenv(constants.MarkerVar); bundle != "" {
		if _, statErr := os.Stat(filepath.Join(bundle, constants.AnchorFile)); statErr == nil {
			return bundle, true, nil
		}
	}

	if configured != "" {
		return configured, false, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, constants.SourceDirName), false, nil
}
