// Package minify produces the staging copy of an rc-file directory:
// symlinks dereferenced to real content, comments and blank lines
// stripped where a format is recognized. The copy lives in a fresh
// private temp directory and never mutates the source.
package minify

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"rcferry/internal/constants"
)

// MissingAnchorError indicates the source directory has no anchor file
// and there is nothing to travel. It is raised before any temporary
// resource is created.
type MissingAnchorError struct {
	Dir string
}

func (e *MissingAnchorError) Error() string {
	return fmt.Sprintf("no %s found in %s: nothing to travel", constants.AnchorFile, e.Dir)
}

// Stage copies sourceDir into a fresh private temp directory with
// symlinks resolved and recognized formats minified. The caller owns
// the returned directory and must remove it when done, success or
// failure.
func Stage(sourceDir string) (string, error) {
	if _, err := os.Stat(filepath.Join(sourceDir, constants.AnchorFile)); err != nil {
		return "", &MissingAnchorError{Dir: sourceDir}
	}

	stage, err := os.MkdirTemp("", "rcferry-stage-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	if err := stageDir(sourceDir, stage); err != nil {
		os.RemoveAll(stage)
		return "", fmt.Errorf("failed to stage %s: %w", sourceDir, err)
	}

	return stage, nil
}

// stageDir copies src into dst recursively. Entries are resolved with
// os.Stat so symlinks land as real files: the far side has no access to
// the original link targets. Unreadable entries and broken links are
// skipped; they degrade the copy, not the operation.
func stageDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			continue
		}

		if info.IsDir() {
			if err := os.MkdirAll(dstPath, constants.StageDirPermissions); err != nil {
				return err
			}
			if err := stageDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		data, err := os.ReadFile(srcPath)
		if err != nil {
			continue
		}

		if err := os.WriteFile(dstPath, File(entry.Name(), data), info.Mode().Perm()); err != nil {
			return err
		}
	}

	return nil
}

// File minifies a single file's content. Files that are not valid text
// (executables under bin/, for instance) are returned unmodified:
// minification of an individual file is best-effort.
func File(name string, data []byte) []byte {
	if !isText(data) {
		return data
	}

	classifier := classifierFor(name)
	lines := strings.Split(string(data), "\n")

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if reduced, keep := classifier.MinifyLine(line); keep {
			kept = append(kept, reduced)
		}
	}

	if len(kept) == 0 {
		return nil
	}
	return []byte(strings.Join(kept, "\n") + "\n")
}

// isText reports whether data is safe to treat line-oriented.
func isText(data []byte) bool {
	return utf8.Valid(data) && !bytes.ContainsRune(data, 0)
}
