package reconcile

import (
	"context"
	"errors"
	"testing"

	"tag-reconciler/core/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newPipeline(in staticInput, f *fakeRemote, sink *memorySink) *Pipeline {
	return &Pipeline{
		Input:  in,
		Remote: f,
		Sink:   sink,
		Names:  Names{Inventory: "inv.csv", Matched: "m.csv", Unmatched: "u.csv"},
		Logger: zap.NewNop(),
		RunID:  "run-test",
	}
}

func TestPipeline_Run(t *testing.T) {
	f := &fakeRemote{
		ids:   []remote.HostID{42, 43},
		token: "T1",
		pages: map[string]*remote.Page{
			"T1": page("T2", rec(42, "ABC123")),
			"T2": page("", rec(43, "DEF456")),
		},
	}
	sink := newMemorySink()
	p := newPipeline(staticInput{serials: []string{"ABC123", "ZZZ999"}}, f, sink)

	rep, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []remote.HostID{42, 43}, f.gotIDs)
	assert.Equal(t, DefaultFields, f.gotFields)
	assert.Equal(t, []string{"T1", "T2"}, f.fetched)

	assert.Equal(t, &Report{
		RunID:        "run-test",
		InputSerials: 2,
		Hosts:        2,
		Pages:        2,
		Inventory:    2,
		Matched:      1,
		Unmatched:    1,
		Degraded:     []Step{},
		Written:      []string{"inv.csv", "m.csv", "u.csv"},
	}, rep)
	assert.True(t, rep.Reconciled())

	assert.Equal(t, []string{"inv.csv", "m.csv", "u.csv"}, sink.order)
	assert.Equal(t, dataset{
		header: []string{"serviceTag", "hostId"},
		rows:   [][]string{{"ABC123", "42"}, {"DEF456", "43"}},
	}, sink.datasets["inv.csv"])
	assert.Equal(t, dataset{
		header: []string{"id", "serviceTag"},
		rows:   [][]string{{"42", "ABC123"}},
	}, sink.datasets["m.csv"])
	assert.Equal(t, dataset{
		header: []string{"serviceTag"},
		rows:   [][]string{{"ZZZ999"}},
	}, sink.datasets["u.csv"])
}

func TestPipeline_CustomFields(t *testing.T) {
	f := &fakeRemote{token: "T1", pages: map[string]*remote.Page{"T1": page("")}}
	p := newPipeline(staticInput{}, f, newMemorySink())
	p.Fields = []string{"serviceTag", "model"}

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"serviceTag", "model"}, f.gotFields)
}

func TestPipeline_ReportRequestFails(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	f := &fakeRemote{
		ids:      []remote.HostID{1},
		tokenErr: &remote.Error{Op: "request report", Kind: remote.KindUnauthorized, Status: 401, Body: "bad credentials"},
	}
	sink := newMemorySink()
	p := newPipeline(staticInput{serials: []string{"ABC"}}, f, sink)
	p.Logger = zap.New(core)

	rep, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, f.fetched)
	assert.False(t, rep.Reconciled())
	assert.Equal(t, []Step{StepReport}, rep.Degraded)
	assert.Equal(t, []string{"inv.csv"}, sink.order)
	assert.Empty(t, sink.datasets["inv.csv"].rows)
	assert.Equal(t, []string{"serviceTag", "hostId"}, sink.datasets["inv.csv"].header)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "run-test", fields["run_id"])
	assert.Equal(t, "unauthorized", fields["kind"])
	assert.Equal(t, int64(401), fields["status"])
	assert.Equal(t, "bad credentials", fields["body"])
}

func TestPipeline_EmptyTokenTreatedAsFailure(t *testing.T) {
	f := &fakeRemote{token: ""}
	sink := newMemorySink()

	rep, err := newPipeline(staticInput{serials: []string{"A"}}, f, sink).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Step{StepReport}, rep.Degraded)
	assert.Equal(t, []string{"inv.csv"}, sink.order)
}

func TestPipeline_HostListingFails(t *testing.T) {
	f := &fakeRemote{
		idsErr: errors.New("connection refused"),
		token:  "T1",
		pages:  map[string]*remote.Page{"T1": page("")},
	}
	sink := newMemorySink()

	rep, err := newPipeline(staticInput{serials: []string{"A"}}, f, sink).Run(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, f.gotIDs, "an empty id list is still sent")
	assert.Empty(t, f.gotIDs)
	assert.Equal(t, []Step{StepHosts}, rep.Degraded)
	assert.Equal(t, 0, rep.Hosts)
	assert.Equal(t, [][]string{{"A"}}, sink.datasets["u.csv"].rows)
}

func TestPipeline_InputFails(t *testing.T) {
	f := &fakeRemote{
		ids:   []remote.HostID{1},
		token: "T1",
		pages: map[string]*remote.Page{"T1": page("", rec(1, "AAA"))},
	}
	sink := newMemorySink()

	rep, err := newPipeline(staticInput{err: errors.New("no such file")}, f, sink).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Step{StepInput}, rep.Degraded)
	assert.Equal(t, [][]string{{"AAA", "1"}}, sink.datasets["inv.csv"].rows)
	assert.Empty(t, sink.datasets["m.csv"].rows)
	assert.Empty(t, sink.datasets["u.csv"].rows)
}

func TestPipeline_PaginationStopsEarly(t *testing.T) {
	f := &fakeRemote{
		ids:      []remote.HostID{1, 2},
		token:    "T1",
		pages:    map[string]*remote.Page{"T1": page("T2", rec(1, "AAA"))},
		pageErrs: map[string]error{"T2": errors.New("timeout")},
	}
	sink := newMemorySink()

	rep, err := newPipeline(staticInput{serials: []string{"AAA", "BBB"}}, f, sink).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Step{StepPagination}, rep.Degraded)
	assert.Equal(t, 1, rep.Pages)
	assert.Equal(t, 1, rep.Matched)
	assert.Equal(t, 1, rep.Unmatched)
	assert.Len(t, sink.order, 3)
}

func TestPipeline_WriteFailureContinues(t *testing.T) {
	f := &fakeRemote{token: "T1", pages: map[string]*remote.Page{"T1": page("", rec(1, "A"))}}
	sink := newMemorySink()
	sink.failNames["inv.csv"] = true

	rep, err := newPipeline(staticInput{serials: []string{"A"}}, f, sink).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Step{StepOutput}, rep.Degraded)
	assert.Equal(t, []string{"m.csv", "u.csv"}, rep.Written)
}

func TestPipeline_DefaultNames(t *testing.T) {
	f := &fakeRemote{token: "T1", pages: map[string]*remote.Page{"T1": page("")}}
	sink := newMemorySink()
	p := newPipeline(staticInput{}, f, sink)
	p.Names = Names{}

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"inventory.csv", "matched.csv", "unmatched.csv"}, sink.order)
}

func TestPipeline_GeneratesRunID(t *testing.T) {
	f := &fakeRemote{token: "T1", pages: map[string]*remote.Page{"T1": page("")}}
	p := newPipeline(staticInput{}, f, newMemorySink())
	p.RunID = ""
	p.Logger = nil

	rep, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, rep.RunID, 36)
}

func TestPipeline_MissingDependencies(t *testing.T) {
	_, err := (&Pipeline{}).Run(context.Background())
	assert.Error(t, err)
}

type panicInput struct{}

func (panicInput) Load(ctx context.Context) ([]string, error) {
	panic("corrupt input")
}

func TestPipeline_RecoversPanic(t *testing.T) {
	p := &Pipeline{Input: panicInput{}, Remote: &fakeRemote{}, Sink: newMemorySink()}

	rep, err := p.Run(context.Background())
	assert.ErrorContains(t, err, "corrupt input")
	assert.NotNil(t, rep)
}
