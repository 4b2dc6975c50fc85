package state

import (
	"os"
	"path/filepath"

	"rcferry/internal/constants"
	"rcferry/internal/mux"
)

// TravelState describes the local environment as rcferry sees it.
type TravelState struct {
	SourceDir     string
	SourceExists  bool
	AnchorPresent bool
	Travelled     bool
	BundleDir     string
	Nested        bool
	MuxAttached   bool
}

// Detector checks the state of the environment.
type Detector struct {
	sourceDir string
	mux       mux.Multiplexer
}

// NewDetector creates a state detector for the given source directory.
func NewDetector(sourceDir string, m mux.Multiplexer) *Detector {
	return &Detector{
		sourceDir: sourceDir,
		mux:       m,
	}
}

// Detect checks all aspects of the environment state.
func (d *Detector) Detect() *TravelState {
	state := &TravelState{
		SourceDir: d.sourceDir,
	}

	if info, err := os.Stat(d.sourceDir); err == nil && info.IsDir() {
		state.SourceExists = true
	}
	if _, err := os.Stat(filepath.Join(d.sourceDir, constants.AnchorFile)); err == nil {
		state.AnchorPresent = true
	}

	// A set marker means this very process runs inside a travelled
	// session; only the synthesized script ever writes it.
	if bundle := os.Getenv(constants.MarkerVar); bundle != "" {
		state.Travelled = true
		state.BundleDir = bundle
	}
	if os.Getenv(constants.NestedVar) != "" {
		state.Nested = true
	}

	if d.mux != nil {
		state.MuxAttached = d.mux.Attached()
	}

	return state
}
