// Package script synthesizes the remote-executable text that every
// transport carries: provision the bundle directory, unpack the
// payload, tighten permissions, run the interactive shell on the
// travelled profile, and clean up unless a multiplexer survives. The
// result is one self-contained argument with no remote dependency
// beyond the shell, base64, the filter's decoder and tar.
package script

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"rcferry/internal/archive"
	"rcferry/internal/bootstrap"
	"rcferry/internal/constants"
)

//go:embed remote.sh.tmpl
var remoteText string

var remoteTemplate = template.Must(template.New("remote").Parse(remoteText))

// heredocTag delimits the embedded bootstrap profile. The payload is
// base64, so the tag can never collide with it.
const heredocTag = "RCFERRY_PROFILE"

// Params selects what the synthesized script carries.
type Params struct {
	// Payload is the encoded archive; its filter determines the
	// far-side decode command, which must match what the archiver used.
	Payload *archive.Payload

	// Nested marks the invoking context as already travelled, so the
	// script re-exports the nested marker and detection survives
	// another hop.
	Nested bool
}

// Synthesize renders the remote script.
func Synthesize(p Params) (string, error) {
	if p.Payload == nil {
		return "", fmt.Errorf("no payload to synthesize")
	}

	data := struct {
		MarkerVar       string
		NestedVar       string
		BundleDirPrefix string
		ProfileFile     string
		HeredocTag      string
		Payload         string
		Decode          string
		Profile         string
		Nested          bool
	}{
		MarkerVar:       constants.MarkerVar,
		NestedVar:       constants.NestedVar,
		BundleDirPrefix: constants.BundleDirPrefix,
		ProfileFile:     constants.ProfileFile,
		HeredocTag:      heredocTag,
		Payload:         p.Payload.Encoded,
		Decode:          p.Payload.Filter.RemoteDecodeCommand(),
		Profile:         bootstrap.Profile(),
		Nested:          p.Nested,
	}

	var b strings.Builder
	if err := remoteTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to synthesize remote script: %w", err)
	}
	return b.String(), nil
}
