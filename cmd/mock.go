package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tag-reconciler/feature/mockapi"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixturePath string

// mockCmd serves the fake device-management API.
var mockCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve a fixture-backed fake of the device-management API",
	Long: `Starts an HTTP server implementing the host directory and hardware report
endpoints from a YAML fixture. Point REMOTE_BASE_URL at it to run reconcile
without the real service.`,
	RunE: runMock,
}

func init() {
	mockCmd.Flags().StringVar(&fixturePath, "fixture", "", "Fixture file (overrides SERVER_FIXTURE)")
	RootCmd.AddCommand(mockCmd)
}

func runMock(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	if fixturePath != "" {
		cfg.Server.Fixture = fixturePath
	}
	fx, err := mockapi.LoadFixture(cfg.Server.Fixture)
	if err != nil {
		return err
	}

	app := mockapi.NewApp(cfg.Server, fx, l)

	errCh := make(chan error, 1)
	go func() {
		l.Info("Starting mock server",
			zap.String("port", cfg.Server.Port),
			zap.Int("hosts", len(fx.Hosts)),
			zap.Int("page_size", cfg.Server.EffectivePageSize()),
			zap.Bool("auth", cfg.Server.AuthEnabled()),
		)
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return fmt.Errorf("mock server failed: %w", err)
	case <-sig:
	}

	l.Info("Shutting down mock server...")
	return app.Shutdown()
}
