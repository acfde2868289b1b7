package cmd

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tag-reconciler/core/config"
	"tag-reconciler/core/loader"
	"tag-reconciler/core/output"
	"tag-reconciler/core/remote"
	"tag-reconciler/core/server"
	"tag-reconciler/feature/mockapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestReconcileOnce(t *testing.T) {
	fx, err := mockapi.ParseFixture(strings.NewReader("hosts:\n  - {id: 42, description: a, serviceTag: ABC123}\n"))
	require.NoError(t, err)
	app := mockapi.NewApp(server.Config{PageSize: 10}, fx, zap.NewNop())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	dir := t.TempDir()
	in := filepath.Join(dir, "serials.csv")
	require.NoError(t, os.WriteFile(in, []byte("ABC123\nZZZ999\n"), 0o600))

	cfg := testConfig(t)
	cfg.Remote = remote.Config{BaseURL: "http://" + ln.Addr().String(), TimeoutSeconds: 5}
	cfg.Input.Path = in
	cfg.Output.Dir = filepath.Join(dir, "out")

	rep, err := reconcileOnce(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, rep.Degraded)
	assert.Equal(t, 1, rep.Matched)
	assert.Equal(t, 1, rep.Unmatched)

	matched, err := os.ReadFile(filepath.Join(dir, "out", "matched.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,serviceTag\n42,ABC123\n", string(matched))
}

func TestReconcileOnce_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"NoBaseURL", func(c *config.Config) { c.Remote.BaseURL = "" }},
		{"UnknownSource", func(c *config.Config) { c.Input.Source = "ftp" }},
		{"UnknownTarget", func(c *config.Config) { c.Output.Target = "ftp"; c.Output.Dir = t.TempDir() }},
		{"StorageWithoutEndpoint", func(c *config.Config) {
			c.Input.Source = loader.SourceS3
			c.Output.Target = output.TargetS3
			c.Storage.Endpoint = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Output.Dir = t.TempDir()
			tt.mutate(cfg)
			_, err := reconcileOnce(context.Background(), cfg, zap.NewNop())
			assert.Error(t, err)
		})
	}
}
