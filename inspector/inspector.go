package inspector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/rustscan/inspector/crate"
	"github.com/viant/rustscan/inspector/metrics"
	"github.com/viant/rustscan/inspector/rust"
)

// Inspector provides an interface for measuring unsafe usage in source code
type Inspector interface {
	// InspectSource parses source code from a byte slice and tallies unsafe usage
	InspectSource(src []byte) (*metrics.FileMetrics, error)

	// InspectFile parses a source file and tallies unsafe usage
	InspectFile(filename string) (*metrics.FileMetrics, error)

	// InspectCrate inspects a whole crate directory and aggregates per-file metrics
	InspectCrate(location string) (*metrics.CrateMetrics, error)
}

// Factory creates appropriate inspectors based on language
type Factory struct {
	config *crate.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *crate.Config) *Factory {
	if config == nil {
		config = crate.DefaultConfig()
	}
	return &Factory{
		config: config,
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".rs":
		return rust.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// ScanFile reads, parses and walks a single source file with default
// configuration.
func ScanFile(path string) (*metrics.FileMetrics, error) {
	factory := NewFactory(nil)
	inspector, err := factory.GetInspector(path)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(path)
}

// ScanSource is the in-memory variant of ScanFile for callers that already
// hold Rust source text.
func ScanSource(src []byte) (*metrics.FileMetrics, error) {
	return rust.NewInspector(nil).InspectSource(src)
}
