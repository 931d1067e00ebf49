package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/babynames/internal/db"
	"github.com/vvka-141/babynames/internal/extract"
	"github.com/vvka-141/babynames/internal/files/filesystem"
	"github.com/vvka-141/babynames/internal/logging"
	"github.com/vvka-141/babynames/internal/schema"
	"github.com/vvka-141/babynames/internal/services"
	"github.com/vvka-141/babynames/internal/sink/postgres"
	"github.com/vvka-141/babynames/internal/sink/sqlite"
	"github.com/vvka-141/babynames/pkg/babynames"
)

var loadCmd = &cobra.Command{
	Use:   "load <root>",
	Short: "Load names and yearly rankings into a database",
	Long: `Load extracts every <root>/<year>/girl_boy_names_*.csv file, runs the schema
script, then inserts names and yearly rankings. Each step runs in its own
transaction; a failed step is rolled back and the load stops. Rows that already
exist are skipped, so running load twice does not duplicate data.

Connection string precedence:
  1. --connection
  2. $BABYNAMES_DATABASE_URL
  3. $DATABASE_URL
A .env file in the working directory is loaded first.

A connection string starting with "sqlite:" loads into a local SQLite file.

Cloud authentication (--auth-method):
  standard        credentials in the connection string (default)
  aws-iam         RDS IAM token, region from --aws-region or $AWS_REGION
  azure-entra-id  Entra ID token; service principal when $AZURE_TENANT_ID,
                  $AZURE_CLIENT_ID and $AZURE_CLIENT_SECRET are set
  google-iam      Cloud SQL IAM through --google-instance

Examples:
  babynames load ./data --connection postgresql://loader@localhost/names
  DATABASE_URL=postgresql://localhost/names babynames load ./data
  babynames load ./data --connection sqlite:./names.db
  babynames load ./data --schema ./schema.sql --timeout 2m`,
	Args:              RequireSourcePath,
	ValidArgsFunction: completeSourceRoot,
	RunE:              runLoad,
}

type loadFlagValues struct {
	connection string
	schemaFile string
	timeout    time.Duration
	conn       connectionFlagValues
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.connection, "connection", "",
		"PostgreSQL connection string (URI or keyword/value), or sqlite:<path>.\n"+
			"Alternative: BABYNAMES_DATABASE_URL or DATABASE_URL environment variable.")
	loadCmd.Flags().StringVar(&loadFlags.schemaFile, "schema", "",
		"Schema script executed verbatim before inserting (default: built-in schema)")
	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", babynames.DefaultTimeout,
		"Maximum duration of the whole load, 0 for none. Examples: 30s, 5m")

	loadCmd.Flags().StringVar(&loadFlags.conn.authMethod, "auth-method", "",
		"Authentication: standard|aws-iam|azure-entra-id|google-iam")
	loadCmd.Flags().StringVar(&loadFlags.conn.awsRegion, "aws-region", "",
		"AWS region for RDS IAM authentication (default: $AWS_REGION)")
	loadCmd.Flags().StringVar(&loadFlags.conn.azureTenantID, "azure-tenant-id", "",
		"Azure tenant ID (default: $AZURE_TENANT_ID)")
	loadCmd.Flags().StringVar(&loadFlags.conn.azureClientID, "azure-client-id", "",
		"Azure client ID (default: $AZURE_CLIENT_ID)")
	loadCmd.Flags().StringVar(&loadFlags.conn.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")

	_ = loadCmd.RegisterFlagCompletionFunc("auth-method", completeAuthMethods)
}

// buildLoadConfig merges flags, environment and babynames.yaml, then validates.
// A missing connection string is reported here, before any database work.
func buildLoadConfig(cmd *cobra.Command, sourcePath string, verbose bool) (babynames.LoadConfig, error) {
	projectCfg, err := loadProjectConfig(sourcePath)
	if err != nil {
		return babynames.LoadConfig{}, err
	}

	timeout, err := resolveTimeout(loadFlags.timeout, cmd.Flags().Changed("timeout"), projectCfg)
	if err != nil {
		return babynames.LoadConfig{}, err
	}

	connOpts, err := resolveConnectionOptions(loadFlags.conn, projectCfg)
	if err != nil {
		return babynames.LoadConfig{}, err
	}

	cfg := babynames.LoadConfig{
		SourcePath:       sourcePath,
		ConnectionString: resolveConnectionString(loadFlags.connection),
		SchemaFile:       resolvePath(loadFlags.schemaFile, projectCfg.SchemaFile, sourcePath),
		Timeout:          timeout,
		Verbose:          verbose,
		Connection:       connOpts,
	}
	return cfg, cfg.Validate()
}

// newLoadSink picks the SQLite or PostgreSQL loader for cfg.
func newLoadSink(cfg babynames.LoadConfig, logger babynames.Logger) (babynames.Sink, error) {
	script, err := schema.Load(filesystem.NewOSFileSystem(), cfg.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", babynames.ErrSchemaFailed, err)
	}

	if cfg.IsSQLite() {
		logger.Verbose("Using SQLite database %s", cfg.ConnectionString)
		return sqlite.NewLoader(cfg.SQLitePath(), script, logger), nil
	}

	connector, err := db.NewConnector(cfg.ConnectionString, cfg.Connection)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Using PostgreSQL with %s authentication", cfg.Connection.AuthMethod)
	return postgres.NewLoader(connector, script, logger), nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildLoadConfig(cmd, args[0], verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(os.Stdout, verbose)

	sink, err := newLoadSink(cfg, logger)
	if err != nil {
		return err
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Error("Received interrupt signal, cancelling load...")
			cancel()
		case <-ctx.Done():
		}
	}()

	report, err := services.NewPipeline(extract.New(logger), logger).Run(ctx, cfg.SourcePath, sink)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	logger.Info("Loaded %d files into %s", report.Extract.Processed(), report.Write.Destination)
	return nil
}
