package archive

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestFilterStringRoundTrip(t *testing.T) {
	for _, name := range []string{"gzip", "zstd"} {
		t.Run(name, func(t *testing.T) {
			filter, err := ParseFilter(name)
			if err != nil {
				t.Fatalf("ParseFilter(%q) error = %v", name, err)
			}
			if filter.String() != name {
				t.Errorf("ParseFilter(%q).String() = %q", name, filter.String())
			}
		})
	}

	if _, err := ParseFilter("lz4"); err == nil {
		t.Error("ParseFilter(\"lz4\") expected error, got nil")
	}
}

func TestFilterStreamRoundTrip(t *testing.T) {
	payload := strings.Repeat("export PATH=$HOME/bin:$PATH\n", 64)

	for _, filter := range []Filter{FilterGzip, FilterZstd} {
		t.Run(filter.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := filter.NewWriter(&buf)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if _, err := io.WriteString(w, payload); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			if buf.Len() >= len(payload) {
				t.Errorf("%s did not compress: %d bytes -> %d bytes", filter, len(payload), buf.Len())
			}

			r, err := filter.NewReader(&buf)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			defer r.Close()

			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != payload {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
			}
		})
	}
}

func TestFilterRemoteDecodeCommand(t *testing.T) {
	tests := []struct {
		filter Filter
		want   string
	}{
		{FilterGzip, "gzip -d"},
		{FilterZstd, "zstd -d"},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			got := tt.filter.RemoteDecodeCommand()
			if got != tt.want {
				t.Errorf("RemoteDecodeCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}
