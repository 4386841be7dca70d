package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bibin-skaria/layerkit/exporters"
	"github.com/bibin-skaria/layerkit/internal/logging"
	"github.com/bibin-skaria/layerkit/internal/types"
	"github.com/bibin-skaria/layerkit/layerfile"
	"github.com/bibin-skaria/layerkit/layers"
	"github.com/bibin-skaria/layerkit/permissions"
	"github.com/bibin-skaria/layerkit/unixpath"
)

// Builder drives one build: it loads the layerfile, resolves every layer
// through the core builder and hands the results to the configured
// exporter.
type Builder struct {
	config   *types.BuildConfig
	exporter exporters.Exporter
	log      *logrus.Logger
}

func NewBuilder(config *types.BuildConfig) (*Builder, error) {
	if config.Layerfile == "" {
		config.Layerfile = "layers.yaml"
	}
	if config.ContextDir == "" {
		config.ContextDir = "."
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.Output == "" {
		config.Output = "tar"
	}

	// An empty compression stays empty here so the layerfile's own
	// setting can take effect at build time
	if config.Compression != "" {
		compression, err := types.ParseCompression(string(config.Compression))
		if err != nil {
			return nil, err
		}
		config.Compression = compression
	}

	exporter, err := exporters.GetExporter(config.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to get exporter: %v", err)
	}

	return &Builder{
		config:   config,
		exporter: exporter,
		log:      logging.New(),
	}, nil
}

// SetLogOutput redirects the builder's progress logging
func (b *Builder) SetLogOutput(w io.Writer) {
	b.log.SetOutput(w)
}

// Build loads the layerfile and builds and exports every layer it defines.
// Build failures are reported through the result's Error field rather than
// the returned error.
func (b *Builder) Build() (*types.BuildResult, error) {
	start := time.Now()
	result := &types.BuildResult{}

	fail := func(format string, args ...interface{}) (*types.BuildResult, error) {
		result.Error = fmt.Sprintf(format, args...)
		result.Duration = time.Since(start).String()
		b.log.Error(result.Error)
		return result, nil
	}

	file, err := layerfile.Load(b.config.Layerfile)
	if err != nil {
		return fail("failed to load layerfile: %v", err)
	}

	compression := b.config.Compression
	if compression == "" {
		// Already validated during layerfile parsing
		compression, _ = types.ParseCompression(file.Compression)
	}

	if err := os.MkdirAll(b.config.OutputDir, 0o755); err != nil {
		return fail("failed to create output directory: %v", err)
	}

	exportConfig := *b.config
	exportConfig.Compression = compression

	for _, spec := range file.Layers {
		b.log.WithFields(logrus.Fields{
			"layer":   spec.Name,
			"entries": len(spec.Entries),
		}).Info("Building layer")

		layer, err := b.ResolveLayer(spec)
		if err != nil {
			return fail("failed to build layer %s: %v", spec.Name, err)
		}

		layerResult := types.LayerResult{
			Name:    spec.Name,
			Entries: len(layer.Entries()),
		}

		if err := b.exporter.Export(layer, &exportConfig, &layerResult); err != nil {
			return fail("failed to export layer %s: %v", spec.Name, err)
		}

		b.log.WithFields(logrus.Fields{
			"layer":  spec.Name,
			"output": layerResult.OutputPath,
			"size":   layerResult.Size,
		}).Info("Layer exported")

		result.Layers = append(result.Layers, layerResult)
	}

	result.Success = true
	result.Duration = time.Since(start).String()
	return result, nil
}

// ResolveLayer expands one layer spec into a built layer description
// without exporting it.
func (b *Builder) ResolveLayer(spec layerfile.LayerSpec) (*layers.Layer, error) {
	builder := layers.NewBuilder().SetName(spec.Name)

	for _, entry := range spec.Entries {
		if err := b.addEntry(builder, entry); err != nil {
			return nil, err
		}
	}

	return builder.Build(), nil
}

func (b *Builder) addEntry(builder *layers.Builder, spec layerfile.EntrySpec) error {
	target, err := spec.TargetPath()
	if err != nil {
		return err
	}

	source := spec.Source
	if !filepath.IsAbs(source) {
		source = filepath.Join(b.config.ContextDir, source)
	}

	perms, havePerms, err := spec.FilePermissions()
	if err != nil {
		return err
	}
	modTime, haveModTime, err := spec.ModificationTime()
	if err != nil {
		return err
	}

	b.log.WithFields(logrus.Fields{
		"source":    source,
		"target":    target.String(),
		"recursive": spec.Recursive,
	}).Debug("Adding entry")

	if spec.Recursive {
		// Explicit overrides apply to the whole subtree
		var permsProvider layers.FilePermissionsProvider
		if havePerms {
			permsProvider = func(string, unixpath.AbsolutePath) permissions.FilePermissions {
				return perms
			}
		}
		var modTimeProvider layers.ModificationTimeProvider
		if haveModTime {
			modTimeProvider = func(string, unixpath.AbsolutePath) time.Time {
				return modTime
			}
		}
		return builder.AddRecursiveWithProviders(source, target, permsProvider, modTimeProvider)
	}

	switch {
	case havePerms && haveModTime:
		builder.AddWithAttributes(source, target, perms, modTime)
	case havePerms:
		builder.AddWithPermissions(source, target, perms)
	case haveModTime:
		builder.AddWithModificationTime(source, target, modTime)
	default:
		builder.Add(source, target)
	}

	return nil
}
