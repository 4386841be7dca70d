package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bibin-skaria/layerkit/engine"
	_ "github.com/bibin-skaria/layerkit/exporters"
	"github.com/bibin-skaria/layerkit/internal/types"
	"github.com/bibin-skaria/layerkit/layerfile"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layerkit",
		Short: "Layerkit - A reproducible container layer builder",
		Long: `Layerkit packages files from a build context into container layers.
A YAML layerfile describes which files go where inside the container;
layerkit produces the same bytes for the same inputs on every run.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
	}

	cmd.AddCommand(newBuildCommand())
	cmd.AddCommand(newInspectCommand())

	return cmd
}

func newBuildCommand() *cobra.Command {
	var (
		file        string
		outputDir   string
		output      string
		compression string
	)

	cmd := &cobra.Command{
		Use:   "build [context]",
		Short: "Build the layers described by a layerfile",
		Long: `Build container layers from a layerfile. The context should be the path
to the directory containing the layerfile and the files it references.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			context := "."
			if len(args) > 0 {
				context = args[0]
			}

			absContext, err := filepath.Abs(context)
			if err != nil {
				return fmt.Errorf("failed to resolve context path: %v", err)
			}

			if _, err := os.Stat(absContext); os.IsNotExist(err) {
				return fmt.Errorf("context directory does not exist: %s", absContext)
			}

			layerfilePath := file
			if !filepath.IsAbs(layerfilePath) {
				layerfilePath = filepath.Join(absContext, layerfilePath)
			}
			if _, err := os.Stat(layerfilePath); os.IsNotExist(err) {
				return fmt.Errorf("layerfile does not exist: %s", layerfilePath)
			}

			config := &types.BuildConfig{
				Layerfile:   layerfilePath,
				ContextDir:  absContext,
				OutputDir:   outputDir,
				Output:      output,
				Compression: types.CompressionType(compression),
			}

			builder, err := engine.NewBuilder(config)
			if err != nil {
				return fmt.Errorf("failed to create builder: %v", err)
			}

			result, err := builder.Build()
			if err != nil {
				return fmt.Errorf("build failed: %v", err)
			}

			if !result.Success {
				return fmt.Errorf("build failed: %s", result.Error)
			}

			fmt.Printf("Build completed successfully!\n")

			for _, layer := range result.Layers {
				fmt.Printf("  %s: %s (%d entries, %s)\n",
					layer.Name, layer.OutputPath, layer.Entries, formatBytes(layer.Size))
				if layer.Digest != "" {
					fmt.Printf("    digest: %s\n", layer.Digest)
				}
			}

			fmt.Printf("Layers: %d\n", len(result.Layers))
			fmt.Printf("Duration: %s\n", result.Duration)

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "layers.yaml", "Path to the layerfile")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", ".", "Directory to write layer artifacts to")
	cmd.Flags().StringVarP(&output, "output", "o", "tar", "Output type (tar, oci-layer, dir)")
	cmd.Flags().StringVar(&compression, "compression", "", "Compression (none, gzip, zstd; overrides the layerfile)")

	return cmd
}

func newInspectCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "inspect [context]",
		Short: "Show the entries a layerfile resolves to",
		Long: `Resolve the layerfile against the build context and print every entry
each layer would contain, without writing any artifacts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			context := "."
			if len(args) > 0 {
				context = args[0]
			}

			absContext, err := filepath.Abs(context)
			if err != nil {
				return fmt.Errorf("failed to resolve context path: %v", err)
			}

			layerfilePath := file
			if !filepath.IsAbs(layerfilePath) {
				layerfilePath = filepath.Join(absContext, layerfilePath)
			}

			layerFile, err := layerfile.Load(layerfilePath)
			if err != nil {
				return fmt.Errorf("failed to load layerfile: %v", err)
			}

			builder, err := engine.NewBuilder(&types.BuildConfig{
				Layerfile:  layerfilePath,
				ContextDir: absContext,
			})
			if err != nil {
				return fmt.Errorf("failed to create builder: %v", err)
			}

			total := 0
			for _, spec := range layerFile.Layers {
				layer, err := builder.ResolveLayer(spec)
				if err != nil {
					return fmt.Errorf("failed to resolve layer %s: %v", spec.Name, err)
				}

				entries := layer.Entries()
				total += len(entries)

				fmt.Printf("Layer %s (%d entries):\n", layer.Name(), len(entries))
				for _, entry := range entries {
					fmt.Printf("  %s %s %s -> %s\n",
						entry.Permissions,
						entry.ModificationTime.UTC().Format(time.RFC3339),
						entry.SourcePath,
						entry.ContainerPath)
				}
			}

			fmt.Printf("Total: %d layers, %d entries\n", len(layerFile.Layers), total)

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "layers.yaml", "Path to the layerfile")

	return cmd
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func init() {
	cobra.OnInitialize(func() {
		if os.Getenv("LAYERKIT_DEBUG") != "" {
			fmt.Fprintf(os.Stderr, "Layerkit Debug Mode Enabled\n")
		}
	})
}
