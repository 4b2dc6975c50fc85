// Package launcher connects the packaging pipeline to the external
// transports. Each variant builds the same synthesized command and
// hands it over with transport-appropriate argument shaping; the
// transport's exit status reaches the caller unmodified.
package launcher

import (
	"rcferry/internal/archive"
	"rcferry/internal/config"
	"rcferry/internal/rcdir"
	"rcferry/internal/script"
)

// BuildCommand resolves the rc source, packages it with the given
// filter and synthesizes the remote script. Nested travel is detected
// during resolution and propagated into the script.
func BuildCommand(cfg *config.Config, filter archive.Filter) (string, error) {
	sourceDir, nested, err := rcdir.Resolve(cfg.SourceDir)
	if err != nil {
		return "", err
	}

	payload, err := archive.Pack(sourceDir, archive.Options{
		Filter:          cfg.FilterOr(filter),
		MaxEncodedBytes: cfg.Ceiling(),
	})
	if err != nil {
		return "", err
	}

	return script.Synthesize(script.Params{
		Payload: payload,
		Nested:  nested,
	})
}
