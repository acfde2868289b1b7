package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tag-reconciler/core/config"
	"tag-reconciler/core/database"
	"tag-reconciler/core/loader"
	"tag-reconciler/core/output"
	"tag-reconciler/core/reconcile"
	"tag-reconciler/core/remote"
	"tag-reconciler/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	inputPath string
	outputDir string
	maxPages  int
	strict    bool
)

// reconcileCmd runs one reconciliation.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile local service tags against the remote hardware inventory",
	Long: `Loads the local serial list, requests a hardware report for every host known
to the device-management service, follows the report pages and writes three datasets:
the inventory snapshot, the matched records and the unmatched serials.

Examples:
  # Defaults from the environment / .env
  reconcile

  # Override the input file and output directory
  reconcile --input ./serials.csv --output-dir ./out

  # Fail (exit 1) when any step degraded
  reconcile --strict`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&inputPath, "input", "", "Input serial list (overrides INPUT_PATH)")
	reconcileCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (overrides OUTPUT_DIR)")
	reconcileCmd.Flags().IntVar(&maxPages, "max-pages", -1, "Report page cap, 0 disables (overrides RECONCILE_MAX_PAGES)")
	reconcileCmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when a step degraded")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	if inputPath != "" {
		cfg.Input.Path = inputPath
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if maxPages >= 0 {
		cfg.Reconcile.MaxPages = maxPages
	}

	rep, err := reconcileOnce(ctx, cfg, l)
	if err != nil {
		return err
	}
	if strict && len(rep.Degraded) > 0 {
		return fmt.Errorf("reconciliation degraded: %v", rep.Degraded)
	}
	return nil
}

// reconcileOnce wires the pipeline from the configuration and runs it.
func reconcileOnce(ctx context.Context, cfg *config.Config, l *zap.Logger) (*reconcile.Report, error) {
	client, err := remote.NewClient(cfg.Remote)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote client: %w", err)
	}
	defer client.Close()

	// Storage and database are only connected when a source or target needs them.
	var store storage.Client
	if cfg.Input.Source == loader.SourceS3 || cfg.Output.Target == output.TargetS3 {
		store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	var db *gorm.DB
	if cfg.Input.Source == loader.SourceDB {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
	}

	input, err := loader.NewSource(cfg.Input, loader.Deps{Storage: store, Bucket: cfg.Storage.Bucket, DB: db})
	if err != nil {
		return nil, fmt.Errorf("failed to configure input: %w", err)
	}

	sink, err := output.NewSink(ctx, cfg.Output, store, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to configure output: %w", err)
	}

	p := &reconcile.Pipeline{
		Input:    input,
		Remote:   client,
		Sink:     sink,
		Names:    reconcile.NamesFrom(cfg.Output),
		Fields:   cfg.Reconcile.Fields,
		MaxPages: cfg.Reconcile.MaxPages,
		Logger:   l,
	}
	return p.Run(ctx)
}
