package exporters

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/go-containerregistry/pkg/v1/tarball"
	v1types "github.com/google/go-containerregistry/pkg/v1/types"

	"github.com/bibin-skaria/layerkit/internal/types"
	"github.com/bibin-skaria/layerkit/layers"
)

// OCILayerExporter writes a layer as a gzip-compressed OCI blob under
// blobs/<algorithm>/<hex> in the output directory, plus a descriptor JSON
// file a manifest assembler can reference. Digest, diff ID and size come
// from go-containerregistry. The compression setting is ignored; OCI layer
// blobs are always gzip-compressed.
type OCILayerExporter struct{}

func init() {
	RegisterExporter("oci-layer", &OCILayerExporter{})
}

// LayerDescriptor is the metadata written next to an exported blob
type LayerDescriptor struct {
	MediaType string `json:"mediaType"`
	Digest    string `json:"digest"`
	Size      int64  `json:"size"`
	DiffID    string `json:"diffId"`
}

func (e *OCILayerExporter) Export(layer *layers.Layer, config *types.BuildConfig, result *types.LayerResult) error {
	tmpFile, err := os.CreateTemp("", "layerkit-oci-*.tar")
	if err != nil {
		return fmt.Errorf("failed to create temp tar: %v", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := writeLayerTar(tmpFile, layer); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp tar: %v", err)
	}

	ociLayer, err := tarball.LayerFromFile(tmpPath, tarball.WithMediaType(v1types.OCILayer))
	if err != nil {
		return fmt.Errorf("failed to create OCI layer: %v", err)
	}

	digest, err := ociLayer.Digest()
	if err != nil {
		return fmt.Errorf("failed to compute digest: %v", err)
	}
	diffID, err := ociLayer.DiffID()
	if err != nil {
		return fmt.Errorf("failed to compute diff ID: %v", err)
	}
	size, err := ociLayer.Size()
	if err != nil {
		return fmt.Errorf("failed to compute size: %v", err)
	}

	blobDir := filepath.Join(config.OutputDir, "blobs", digest.Algorithm)
	if err := os.MkdirAll(blobDir, 0o755); err != nil {
		return fmt.Errorf("failed to create blob directory: %v", err)
	}
	blobPath := filepath.Join(blobDir, digest.Hex)

	compressed, err := ociLayer.Compressed()
	if err != nil {
		return fmt.Errorf("failed to open compressed layer: %v", err)
	}
	defer compressed.Close()

	blob, err := os.Create(blobPath)
	if err != nil {
		return fmt.Errorf("failed to create blob file: %v", err)
	}
	if _, err := io.Copy(blob, compressed); err != nil {
		blob.Close()
		os.Remove(blobPath)
		return fmt.Errorf("failed to write blob: %v", err)
	}
	if err := blob.Close(); err != nil {
		return fmt.Errorf("failed to close blob: %v", err)
	}

	descriptor := LayerDescriptor{
		MediaType: string(v1types.OCILayer),
		Digest:    digest.String(),
		Size:      size,
		DiffID:    diffID.String(),
	}
	data, err := json.MarshalIndent(descriptor, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %v", err)
	}
	descriptorPath := filepath.Join(config.OutputDir, layerFileName(layer)+".layer.json")
	if err := os.WriteFile(descriptorPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write descriptor: %v", err)
	}

	result.OutputPath = blobPath
	result.MediaType = string(v1types.OCILayer)
	result.Digest = digest.String()
	result.DiffID = diffID.String()
	result.Size = size
	return nil
}
