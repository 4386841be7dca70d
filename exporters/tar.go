package exporters

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/bibin-skaria/layerkit/internal/types"
	"github.com/bibin-skaria/layerkit/layers"
)

// TarExporter writes a layer as a tar archive, optionally compressed with
// gzip or zstd. The archive is reproducible: identical layer descriptions
// produce byte-identical output.
type TarExporter struct{}

func init() {
	RegisterExporter("tar", &TarExporter{})
}

func (e *TarExporter) Export(layer *layers.Layer, config *types.BuildConfig, result *types.LayerResult) error {
	outputPath := filepath.Join(config.OutputDir, layerFileName(layer)+config.Compression.Extension())

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", outputPath, err)
	}

	if err := writeCompressedLayerTar(out, layer, config.Compression); err != nil {
		out.Close()
		os.Remove(outputPath)
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %v", outputPath, err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %v", outputPath, err)
	}

	result.OutputPath = outputPath
	result.MediaType = config.Compression.GetMediaType()
	result.Size = info.Size()
	return nil
}

// layerFileName returns the base name for a layer's artifacts
func layerFileName(layer *layers.Layer) string {
	if layer.Name() == "" {
		return "layer"
	}
	return layer.Name()
}

func writeCompressedLayerTar(out io.Writer, layer *layers.Layer, compression types.CompressionType) error {
	switch compression {
	case types.CompressionNone, "":
		return writeLayerTar(out, layer)

	case types.CompressionGzip:
		gz := gzip.NewWriter(out)
		if err := writeLayerTar(gz, layer); err != nil {
			gz.Close()
			return err
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to finish gzip stream: %v", err)
		}
		return nil

	case types.CompressionZstd:
		zw, err := zstd.NewWriter(out)
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %v", err)
		}
		if err := writeLayerTar(zw, layer); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to finish zstd stream: %v", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported compression: %s", compression)
	}
}

// writeLayerTar serializes layer into w, one archive entry per layer entry,
// in the order the entries were added. Headers carry each entry's recorded
// permissions and modification time, never the source's on-disk attributes.
// Duplicate container paths become duplicate archive entries.
func writeLayerTar(w io.Writer, layer *layers.Layer) error {
	tw := tar.NewWriter(w)

	for _, entry := range layer.Entries() {
		if err := writeTarEntry(tw, entry); err != nil {
			tw.Close()
			return fmt.Errorf("failed to add %s: %v", entry.ContainerPath, err)
		}
	}

	return tw.Close()
}

func writeTarEntry(tw *tar.Writer, entry layers.Entry) error {
	header := &tar.Header{
		Name:    strings.TrimPrefix(entry.ContainerPath.String(), "/"),
		Mode:    int64(entry.Permissions),
		ModTime: entry.ModificationTime,
	}

	info, err := os.Stat(entry.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to stat source %s: %v", entry.SourcePath, err)
	}

	switch {
	case info.IsDir():
		header.Typeflag = tar.TypeDir
		header.Name += "/"
		header.Size = 0
		return tw.WriteHeader(header)

	case info.Mode().IsRegular():
		header.Typeflag = tar.TypeReg
		header.Size = info.Size()
		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		file, err := os.Open(entry.SourcePath)
		if err != nil {
			return fmt.Errorf("failed to open source %s: %v", entry.SourcePath, err)
		}
		written, err := io.Copy(tw, file)
		file.Close()
		if err != nil {
			return err
		}
		if written != header.Size {
			return fmt.Errorf("size mismatch: expected %d bytes, wrote %d bytes", header.Size, written)
		}
		return nil

	default:
		return fmt.Errorf("unsupported file mode: %v", info.Mode())
	}
}
