package types

import "fmt"

// CompressionType represents the compression algorithm applied to exported
// layer archives
type CompressionType string

const (
	CompressionNone CompressionType = "none"
	CompressionGzip CompressionType = "gzip"
	CompressionZstd CompressionType = "zstd"
)

// OCI media types for exported layers
const (
	MediaTypeImageLayer     = "application/vnd.oci.image.layer.v1.tar"
	MediaTypeImageLayerGzip = "application/vnd.oci.image.layer.v1.tar+gzip"
	MediaTypeImageLayerZstd = "application/vnd.oci.image.layer.v1.tar+zstd"
)

// GetMediaType returns the OCI media type for the compression
func (c CompressionType) GetMediaType() string {
	switch c {
	case CompressionGzip:
		return MediaTypeImageLayerGzip
	case CompressionZstd:
		return MediaTypeImageLayerZstd
	default:
		return MediaTypeImageLayer
	}
}

// Extension returns the filename extension for an archive compressed with c
func (c CompressionType) Extension() string {
	switch c {
	case CompressionGzip:
		return ".tar.gz"
	case CompressionZstd:
		return ".tar.zst"
	default:
		return ".tar"
	}
}

// ParseCompression validates and normalizes a compression name. An empty
// name selects gzip.
func ParseCompression(s string) (CompressionType, error) {
	switch CompressionType(s) {
	case "":
		return CompressionGzip, nil
	case CompressionNone, CompressionGzip, CompressionZstd:
		return CompressionType(s), nil
	default:
		return "", fmt.Errorf("unknown compression %q (expected none, gzip or zstd)", s)
	}
}

// BuildConfig holds the inputs of one build invocation
type BuildConfig struct {
	Layerfile   string          `json:"layerfile"`
	ContextDir  string          `json:"context_dir"`
	OutputDir   string          `json:"output_dir"`
	Output      string          `json:"output"`
	Compression CompressionType `json:"compression"`
}

// LayerResult describes one exported layer artifact
type LayerResult struct {
	Name       string `json:"name"`
	Entries    int    `json:"entries"`
	OutputPath string `json:"output_path,omitempty"`
	MediaType  string `json:"media_type,omitempty"`
	Digest     string `json:"digest,omitempty"`
	DiffID     string `json:"diff_id,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

// BuildResult reports the outcome of one build invocation
type BuildResult struct {
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Layers   []LayerResult `json:"layers,omitempty"`
	Duration string        `json:"duration"`
}
