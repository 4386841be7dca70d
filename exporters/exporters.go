package exporters

import (
	"fmt"

	"github.com/bibin-skaria/layerkit/internal/types"
	"github.com/bibin-skaria/layerkit/layers"
)

// Exporter serializes a built layer description into an on-disk artifact,
// filling result with the artifact's location and metadata.
type Exporter interface {
	Export(layer *layers.Layer, config *types.BuildConfig, result *types.LayerResult) error
}

var exporters = make(map[string]Exporter)

func RegisterExporter(name string, exporter Exporter) {
	exporters[name] = exporter
}

func GetExporter(name string) (Exporter, error) {
	exporter, exists := exporters[name]
	if !exists {
		return nil, fmt.Errorf("exporter %s not found", name)
	}
	return exporter, nil
}

func ListExporters() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	return names
}
