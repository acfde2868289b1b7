package mockapi_test

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tag-reconciler/core/loader"
	"tag-reconciler/core/output"
	"tag-reconciler/core/reconcile"
	"tag-reconciler/core/remote"
	"tag-reconciler/core/server"
	"tag-reconciler/feature/mockapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const e2eFixture = `
hosts:
  - {id: 1, description: a, serviceTag: AAA}
  - {id: 2, description: b, serviceTag: BBB}
  - {id: 3, description: c, serviceTag: CCC}
  - {id: 4, description: d, serviceTag: DDD}
  - {id: 5, description: e, serviceTag: EEE}
`

// serve starts the mock API on a loopback port and returns its base URL.
func serve(t *testing.T, cfg server.Config) string {
	t.Helper()
	fx, err := mockapi.ParseFixture(strings.NewReader(e2eFixture))
	require.NoError(t, err)
	app := mockapi.NewApp(cfg, fx, zap.NewNop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestPipelineAgainstMockAPI(t *testing.T) {
	cfg := server.Config{ClientID: "reconciler", ClientSecret: "s3cr3t", PageSize: 2}
	baseURL := serve(t, cfg)

	client, err := remote.NewClient(remote.Config{BaseURL: baseURL, ClientID: "reconciler", ClientSecret: "s3cr3t", TimeoutSeconds: 5})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	dir := t.TempDir()
	input := filepath.Join(dir, "serials.csv")
	require.NoError(t, os.WriteFile(input, []byte("serial\nCCC\nZZZ\n\nAAA\n"), 0o600))

	sink, err := output.NewDirSink(filepath.Join(dir, "out"), ',')
	require.NoError(t, err)

	p := &reconcile.Pipeline{
		Input:  &loader.FileSource{Path: input, Options: loader.ParseOptions{Delimiter: ',', SkipHeader: true}},
		Remote: client,
		Sink:   sink,
		Logger: zap.NewNop(),
	}

	rep, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rep.Degraded)
	assert.Equal(t, 5, rep.Hosts)
	assert.Equal(t, 3, rep.Pages)
	assert.Equal(t, 5, rep.Inventory)

	read := func(name string) string {
		b, err := os.ReadFile(filepath.Join(dir, "out", name))
		require.NoError(t, err)
		return string(b)
	}
	assert.Equal(t, "serviceTag,hostId\nAAA,1\nBBB,2\nCCC,3\nDDD,4\nEEE,5\n", read("inventory.csv"))
	assert.Equal(t, "id,serviceTag\n3,CCC\n1,AAA\n", read("matched.csv"))
	// The empty input line stays unmatched and is written as a quoted empty field.
	assert.Equal(t, "serviceTag\nZZZ\n\"\"\n", read("unmatched.csv"))
}

func TestPipelineAgainstMockAPI_BadCredentials(t *testing.T) {
	baseURL := serve(t, server.Config{ClientID: "reconciler", ClientSecret: "s3cr3t"})

	client, err := remote.NewClient(remote.Config{BaseURL: baseURL, ClientID: "reconciler", ClientSecret: "wrong", TimeoutSeconds: 5})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	_, err = client.ListHostIDs(context.Background())
	assert.ErrorIs(t, err, remote.ErrUnauthorized)

	dir := t.TempDir()
	sink, err := output.NewDirSink(dir, ',')
	require.NoError(t, err)

	p := &reconcile.Pipeline{Input: &loader.FileSource{Path: filepath.Join(dir, "missing.csv")}, Remote: client, Sink: sink}
	rep, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.Reconciled())
	assert.ElementsMatch(t, []reconcile.Step{reconcile.StepInput, reconcile.StepHosts, reconcile.StepReport}, rep.Degraded)

	_, err = os.Stat(filepath.Join(dir, "inventory.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "matched.csv"))
	assert.True(t, os.IsNotExist(err))
}
