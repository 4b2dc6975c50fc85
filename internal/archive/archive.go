// Package archive turns an rc-file directory into a bounded-size,
// text-safe payload: minified staging copy, tar serialization, a
// caller-selected compression filter, then unwrapped base64 so the
// result embeds as a single shell token.
package archive

import (
	"archive/tar"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"rcferry/internal/constants"
	"rcferry/internal/minify"
)

// Options selects the compression filter and, optionally, a
// non-default size ceiling.
type Options struct {
	Filter Filter

	// MaxEncodedBytes caps the encoded payload. Zero means
	// constants.MaxPayloadBytes.
	MaxEncodedBytes int
}

// Payload is the encoded archive plus the filter needed to reverse it.
type Payload struct {
	Encoded string
	Filter  Filter
}

// Len returns the encoded byte length.
func (p *Payload) Len() int {
	return len(p.Encoded)
}

// TooLargeError indicates the encoded payload exceeded the ceiling.
// The caller decides whether to retry with fewer files or a stronger
// filter.
type TooLargeError struct {
	Dir   string
	Size  int
	Limit int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s is too large to travel: %d encoded bytes (limit %d)", e.Dir, e.Size, e.Limit)
}

// Pack stages sourceDir through the minifier, serializes the staging
// copy and encodes it. The staging copy is removed on every exit path,
// success or failure.
func Pack(sourceDir string, opts Options) (*Payload, error) {
	stage, err := minify.Stage(sourceDir)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(stage)

	var buf bytes.Buffer
	encoder := base64.NewEncoder(base64.StdEncoding, &buf)

	compressor, err := opts.Filter.NewWriter(encoder)
	if err != nil {
		return nil, err
	}

	if err := writeTar(compressor, stage); err != nil {
		return nil, fmt.Errorf("failed to archive %s: %w", sourceDir, err)
	}
	if err := compressor.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress %s: %w", sourceDir, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", sourceDir, err)
	}

	limit := opts.MaxEncodedBytes
	if limit <= 0 {
		limit = constants.MaxPayloadBytes
	}
	if buf.Len() >= limit {
		return nil, &TooLargeError{Dir: sourceDir, Size: buf.Len(), Limit: limit}
	}

	return &Payload{Encoded: buf.String(), Filter: opts.Filter}, nil
}

// Extract decodes a payload into dir. It is the local mirror of what
// the synthesized script performs on the far side, used to verify a
// payload without a transport.
func Extract(p *Payload, dir string) error {
	decoder := base64.NewDecoder(base64.StdEncoding, bytes.NewReader([]byte(p.Encoded)))

	decompressor, err := p.Filter.NewReader(decoder)
	if err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	defer decompressor.Close()

	reader := tar.NewReader(decompressor)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to unpack payload: %w", err)
		}

		target := filepath.Join(dir, filepath.FromSlash(header.Name))
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, constants.StageDirPermissions); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), constants.StageDirPermissions); err != nil {
				return err
			}
			data, err := io.ReadAll(reader)
			if err != nil {
				return fmt.Errorf("failed to unpack %s: %w", header.Name, err)
			}
			if err := os.WriteFile(target, data, header.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		}
	}
}

// writeTar serializes dir into w with relative slash-separated paths.
// The staging copy already has symlinks resolved, so everything here
// is a directory or a regular file.
func writeTar(w io.Writer, dir string) error {
	tw := tar.NewWriter(w)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return err
	}

	return tw.Close()
}
