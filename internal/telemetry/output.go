// Package telemetry records run output: a CSV status log and population statistics.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/talgya/longterm/internal/config"
	"github.com/talgya/longterm/internal/engine"
)

// OutputManager writes status rows to status.csv in its directory.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir        string
	statusFile *os.File

	statusHeaderWritten bool
}

// NewOutputManager creates the output directory and status.csv.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "status.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating status.csv: %w", err)
	}

	return &OutputManager{dir: dir, statusFile: f}, nil
}

// Dir returns the output directory, or "" when disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the run configuration next to the CSV.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStatus appends one status row to status.csv.
func (om *OutputManager) WriteStatus(st engine.Status) error {
	if om == nil {
		return nil
	}

	records := []engine.Status{st}

	if !om.statusHeaderWritten {
		if err := gocsv.Marshal(records, om.statusFile); err != nil {
			return fmt.Errorf("writing status: %w", err)
		}
		om.statusHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.statusFile); err != nil {
		return fmt.Errorf("writing status: %w", err)
	}
	return nil
}

// Close flushes and closes the output file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.statusFile.Close()
}
