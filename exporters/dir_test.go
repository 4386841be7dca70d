package exporters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bibin-skaria/layerkit/internal/types"
	"github.com/bibin-skaria/layerkit/layers"
	"github.com/bibin-skaria/layerkit/unixpath"
)

func TestDirExporter_Export(t *testing.T) {
	sourceDir, layer := setupTestLayer(t)
	defer os.RemoveAll(sourceDir)

	outputDir, err := os.MkdirTemp("", "layerkit-dir-test-*")
	if err != nil {
		t.Fatalf("Failed to create output dir: %v", err)
	}
	defer os.RemoveAll(outputDir)

	exporter := &DirExporter{}
	config := &types.BuildConfig{OutputDir: outputDir}
	result := &types.LayerResult{Name: layer.Name()}

	if err := exporter.Export(layer, config, result); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if result.OutputPath != filepath.Join(outputDir, "static") {
		t.Errorf("Expected output under static, got %s", result.OutputPath)
	}
	// Both duplicate writes count
	if result.Size != 24 {
		t.Errorf("Expected 24 bytes written, got %d", result.Size)
	}

	dataPath := filepath.Join(result.OutputPath, "data")
	dataInfo, err := os.Stat(dataPath)
	if err != nil {
		t.Fatalf("Expected the data directory to exist: %v", err)
	}
	if !dataInfo.IsDir() {
		t.Fatal("Expected data to be a directory")
	}
	if dataInfo.Mode().Perm() != 0o755 {
		t.Errorf("Expected directory mode 755, got %o", dataInfo.Mode().Perm())
	}
	if !dataInfo.ModTime().Equal(layers.DefaultModificationTime) {
		t.Errorf("Expected the default modification time, got %v", dataInfo.ModTime())
	}

	filePath := filepath.Join(dataPath, "hello.txt")
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		t.Fatalf("Expected the file to exist: %v", err)
	}
	// The duplicate entry overwrote the first one
	if fileInfo.Mode().Perm() != 0o644 {
		t.Errorf("Expected file mode 644, got %o", fileInfo.Mode().Perm())
	}
	if !fileInfo.ModTime().Equal(fixtureModTime) {
		t.Errorf("Expected the duplicate's modification time, got %v", fileInfo.ModTime())
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	if string(content) != "hello world\n" {
		t.Errorf("Unexpected file content: %q", string(content))
	}
}

func TestDirExporter_MissingSource(t *testing.T) {
	outputDir, err := os.MkdirTemp("", "layerkit-dir-test-*")
	if err != nil {
		t.Fatalf("Failed to create output dir: %v", err)
	}
	defer os.RemoveAll(outputDir)

	layer := layers.NewBuilder().
		SetName("broken").
		Add("/nonexistent/input", unixpath.MustParse("/app/input")).
		Build()

	exporter := &DirExporter{}
	config := &types.BuildConfig{OutputDir: outputDir}
	result := &types.LayerResult{Name: layer.Name()}

	err = exporter.Export(layer, config, result)
	if err == nil {
		t.Fatal("Expected an error for a missing source")
	}
	if !strings.Contains(err.Error(), "/app/input") {
		t.Errorf("Expected the container path in the error, got %v", err)
	}
}
