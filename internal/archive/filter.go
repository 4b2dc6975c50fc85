package archive

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Filter identifies the compression algorithm applied between tar
// serialization and text encoding. The remote side reverses it with a
// stock command-line tool, so every filter here must have a widely
// deployed decoder binary.
type Filter uint8

const (
	// FilterGzip is the portable choice: every POSIX base system ships
	// a gzip decoder. Used for container images and user switches,
	// where the landed PATH is unknown.
	FilterGzip Filter = iota

	// FilterZstd compresses harder and assumes a capable remote with a
	// zstd binary on PATH. Used for the remote-shell transport.
	FilterZstd
)

// String returns the filter's name.
func (f Filter) String() string {
	switch f {
	case FilterGzip:
		return "gzip"
	case FilterZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// ParseFilter parses a filter from its name.
func ParseFilter(name string) (Filter, error) {
	switch name {
	case "gzip":
		return FilterGzip, nil
	case "zstd":
		return FilterZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression filter: %q", name)
	}
}

// NewWriter wraps w in this filter's compressor. The returned writer
// must be closed to flush the stream.
func (f Filter) NewWriter(w io.Writer) (io.WriteCloser, error) {
	switch f {
	case FilterGzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case FilterZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	default:
		return nil, fmt.Errorf("unsupported compression filter: %d", f)
	}
}

// NewReader wraps r in this filter's decompressor. This is the local
// mirror of RemoteDecodeCommand, used to verify payloads without a
// transport.
func (f Filter) NewReader(r io.Reader) (io.ReadCloser, error) {
	switch f {
	case FilterGzip:
		return gzip.NewReader(r)
	case FilterZstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return decoder.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported compression filter: %d", f)
	}
}

// RemoteDecodeCommand returns the far-side shell command that reverses
// this filter. The synthesized script pipes the decoded payload
// through it, so it must match the filter the archiver used.
func (f Filter) RemoteDecodeCommand() string {
	switch f {
	case FilterZstd:
		return "zstd -d"
	default:
		return "gzip -d"
	}
}
