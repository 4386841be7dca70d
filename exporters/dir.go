package exporters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibin-skaria/layerkit/internal/types"
	"github.com/bibin-skaria/layerkit/layers"
)

// DirExporter materializes a layer as a plain directory tree instead of an
// archive, which makes the layer contents easy to review. Every entry is
// written with its declared permissions and modification time, so the tree
// matches what extracting the tar export would produce. Entries with
// duplicate container paths overwrite each other in entry order.
type DirExporter struct{}

func init() {
	RegisterExporter("dir", &DirExporter{})
}

func (e *DirExporter) Export(layer *layers.Layer, config *types.BuildConfig, result *types.LayerResult) error {
	rootDir := filepath.Join(config.OutputDir, layerFileName(layer))
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	entries := layer.Entries()

	var totalSize int64
	for _, entry := range entries {
		size, err := e.writeEntry(rootDir, entry)
		if err != nil {
			return fmt.Errorf("failed to write %s: %v", entry.ContainerPath, err)
		}
		totalSize += size
	}

	// Directory metadata goes on last, children before parents: creating
	// a child resets the parent's modification time.
	for i := len(entries) - 1; i >= 0; i-- {
		if err := e.applyDirMetadata(rootDir, entries[i]); err != nil {
			return fmt.Errorf("failed to finalize %s: %v", entries[i].ContainerPath, err)
		}
	}

	result.OutputPath = rootDir
	result.Size = totalSize
	return nil
}

func (e *DirExporter) writeEntry(rootDir string, entry layers.Entry) (int64, error) {
	destPath := destinationPath(rootDir, entry)

	info, err := os.Stat(entry.SourcePath)
	if err != nil {
		return 0, err
	}

	if info.IsDir() {
		return 0, os.MkdirAll(destPath, 0o755)
	}

	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("unsupported file mode: %v", info.Mode())
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return 0, err
	}

	srcFile, err := os.Open(entry.SourcePath)
	if err != nil {
		return 0, err
	}
	defer srcFile.Close()

	destFile, err := os.OpenFile(destPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, entry.Permissions.FileMode())
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(destFile, srcFile)
	if err != nil {
		destFile.Close()
		return 0, err
	}
	if err := destFile.Close(); err != nil {
		return 0, err
	}

	// OpenFile's mode is masked by the umask
	if err := os.Chmod(destPath, entry.Permissions.FileMode()); err != nil {
		return 0, err
	}
	if err := os.Chtimes(destPath, entry.ModificationTime, entry.ModificationTime); err != nil {
		return 0, err
	}

	return written, nil
}

func (e *DirExporter) applyDirMetadata(rootDir string, entry layers.Entry) error {
	destPath := destinationPath(rootDir, entry)

	info, err := os.Stat(destPath)
	if err != nil || !info.IsDir() {
		return nil
	}

	if err := os.Chmod(destPath, entry.Permissions.FileMode()); err != nil {
		return err
	}
	return os.Chtimes(destPath, entry.ModificationTime, entry.ModificationTime)
}

func destinationPath(rootDir string, entry layers.Entry) string {
	rel := strings.TrimPrefix(entry.ContainerPath.String(), "/")
	return filepath.Join(rootDir, filepath.FromSlash(rel))
}
