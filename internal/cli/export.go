package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/babynames/internal/extract"
	"github.com/vvka-141/babynames/internal/logging"
	"github.com/vvka-141/babynames/internal/services"
	"github.com/vvka-141/babynames/internal/sink/csvfile"
	"github.com/vvka-141/babynames/pkg/babynames"
)

var exportCmd = &cobra.Command{
	Use:   "export <root>",
	Short: "Write names.csv and names_per_year.csv for bulk import",
	Long: `Export extracts every <root>/<year>/girl_boy_names_*.csv file and writes

  names.csv           name,gender
  names_per_year.csv  year,rank,boy,girl

into the output directory, followed by the psql \copy commands that import them.
Existing files are overwritten.

Examples:
  babynames export ./data
  babynames export ./data --output-dir ./out`,
	Args:              RequireSourcePath,
	ValidArgsFunction: completeSourceRoot,
	RunE:              runExport,
}

type exportFlagValues struct {
	outputDir string
}

var exportFlags exportFlagValues

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFlags.outputDir, "output-dir", "o", "",
		"Directory receiving the CSV files (default: current directory, or output_dir in babynames.yaml)")
}

// buildExportConfig merges flags with babynames.yaml.
func buildExportConfig(sourcePath string, verbose bool) (babynames.ExportConfig, error) {
	projectCfg, err := loadProjectConfig(sourcePath)
	if err != nil {
		return babynames.ExportConfig{}, err
	}

	cfg := babynames.ExportConfig{
		SourcePath: sourcePath,
		OutputDir:  resolvePath(exportFlags.outputDir, projectCfg.OutputDir, sourcePath),
		Verbose:    verbose,
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, cfg.Validate()
}

func runExport(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildExportConfig(args[0], verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(os.Stdout, verbose)
	pipeline := services.NewPipeline(extract.New(logger), logger)

	logger.Info("Creating CSV files for PostgreSQL import...")
	if _, err := pipeline.Run(context.Background(), cfg.SourcePath, csvfile.New(cfg.OutputDir, logger)); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}
