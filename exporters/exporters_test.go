package exporters

import (
	"testing"
)

func TestGetExporter(t *testing.T) {
	for _, name := range []string{"tar", "oci-layer", "dir"} {
		exporter, err := GetExporter(name)
		if err != nil {
			t.Errorf("Expected exporter %s to be registered: %v", name, err)
		}
		if exporter == nil {
			t.Errorf("Expected a non-nil exporter for %s", name)
		}
	}
}

func TestGetExporterUnknown(t *testing.T) {
	if _, err := GetExporter("carrier-pigeon"); err == nil {
		t.Error("Expected an error for an unknown exporter")
	}
}

func TestListExporters(t *testing.T) {
	names := ListExporters()

	found := make(map[string]bool)
	for _, name := range names {
		found[name] = true
	}

	if !found["tar"] || !found["oci-layer"] || !found["dir"] {
		t.Errorf("Expected tar, oci-layer and dir in %v", names)
	}
}
