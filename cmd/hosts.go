package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tag-reconciler/core/remote"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var hostsJSON bool

// hostsCmd lists the host directory of the remote service.
var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List the hosts known to the device-management service",
	Long: `Calls the host directory once and prints every host. Useful to check the
remote endpoint and credentials before a reconciliation.`,
	RunE: runHosts,
}

func init() {
	hostsCmd.Flags().BoolVar(&hostsJSON, "json", false, "Print the hosts as JSON on stdout")
	RootCmd.AddCommand(hostsCmd)
}

func runHosts(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	client, err := remote.NewClient(cfg.Remote)
	if err != nil {
		return fmt.Errorf("failed to create remote client: %w", err)
	}
	defer client.Close()

	hosts, err := client.ListHosts(ctx)
	if err != nil {
		return err
	}

	if hostsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(hosts)
	}

	for _, h := range hosts {
		l.Info("Host", zap.Int64("id", int64(h.ID)), zap.String("description", h.Description))
	}
	l.Info("Host directory listed", zap.Int("count", len(hosts)))
	return nil
}
