package reconcile

import (
	"context"
	"errors"
	"fmt"

	"tag-reconciler/core/loader"
	"tag-reconciler/core/logger"
	"tag-reconciler/core/output"
	"tag-reconciler/core/remote"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultFields is requested when no report fields are configured.
var DefaultFields = []string{"serviceTag"}

// Names are the dataset names the pipeline writes.
type Names struct {
	Inventory string
	Matched   string
	Unmatched string
}

// NamesFrom takes the dataset names from the output configuration.
func NamesFrom(cfg output.Config) Names {
	return Names{Inventory: cfg.InventoryFile, Matched: cfg.MatchedFile, Unmatched: cfg.UnmatchedFile}
}

// Pipeline wires one reconciliation run.
type Pipeline struct {
	Input    loader.Source
	Remote   Source
	Sink     output.Sink
	Names    Names
	Fields   []string
	MaxPages int
	Logger   *zap.Logger
	// RunID identifies the run in logs. Generated when empty.
	RunID string
}

// Run executes the pipeline: load serials, list hosts, request the report,
// paginate it into an inventory, reconcile, and write the datasets.
//
// Every step failure degrades instead of aborting, and is recorded in the
// report: no serials when the input fails, no hosts when the directory call
// fails, partial inventory when pagination stops early. A failed report request
// leaves nothing to reconcile: only the (empty) inventory snapshot is written.
// The returned error is reserved for a run that could not start or panicked.
func (p *Pipeline) Run(ctx context.Context) (rep *Report, err error) {
	if p.Input == nil || p.Remote == nil || p.Sink == nil {
		return nil, fmt.Errorf("pipeline requires an input source, a remote source and a sink")
	}

	runID := p.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	base := p.Logger
	if base == nil {
		base = zap.NewNop()
	}
	l := logger.WithRun(base, runID)
	names := p.names()
	fields := p.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}

	rep = &Report{RunID: runID, Degraded: []Step{}, Written: []string{}}

	defer func() {
		if r := recover(); r != nil {
			l.Error("Reconciliation aborted", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("reconciliation aborted: %v", r)
		}
	}()

	l.Info("Reconciliation started", zap.Strings("fields", fields), zap.Int("max_pages", p.MaxPages))

	serials, err := p.Input.Load(ctx)
	if err != nil {
		l.Error("Failed to load input serials, continuing with none", errorFields(err)...)
		rep.degrade(StepInput)
		serials = nil
	}
	rep.InputSerials = len(serials)

	ids, err := p.Remote.ListHostIDs(ctx)
	if err != nil {
		l.Error("Failed to list hosts, continuing with none", errorFields(err)...)
		rep.degrade(StepHosts)
		ids = nil
	}
	if ids == nil {
		ids = []remote.HostID{}
	}
	rep.Hosts = len(ids)

	token, err := p.Remote.RequestReport(ctx, ids, fields)
	if err == nil && token == "" {
		err = ErrNoToken
	}
	if err != nil {
		l.Error("Failed to request hardware report, nothing to reconcile", errorFields(err)...)
		rep.degrade(StepReport)
		p.write(l, rep, names.Inventory, func() error {
			return output.WriteInventory(ctx, p.Sink, names.Inventory, nil)
		})
		return rep, nil
	}

	col, err := CollectInventory(ctx, p.Remote, token, p.MaxPages, l)
	if err != nil {
		l.Warn("Pagination stopped early, reconciling partial inventory",
			append(errorFields(err), zap.Int("pages", col.Pages))...)
		rep.degrade(StepPagination)
	}
	rep.Pages = col.Pages
	rep.Inventory = col.Inventory.Len()
	rep.Duplicates = col.Inventory.Duplicates()

	p.write(l, rep, names.Inventory, func() error {
		return output.WriteInventory(ctx, p.Sink, names.Inventory, col.Inventory.Records())
	})

	result := Reconcile(serials, col.Inventory)
	rep.Matched = len(result.Matched)
	rep.Unmatched = len(result.Unmatched)

	p.write(l, rep, names.Matched, func() error {
		return output.WriteMatched(ctx, p.Sink, names.Matched, result.Matched)
	})
	p.write(l, rep, names.Unmatched, func() error {
		return output.WriteUnmatched(ctx, p.Sink, names.Unmatched, result.Unmatched)
	})

	l.Info("Reconciliation finished",
		zap.Int("input_serials", rep.InputSerials),
		zap.Int("hosts", rep.Hosts),
		zap.Int("pages", rep.Pages),
		zap.Int("inventory", rep.Inventory),
		zap.Int("duplicates", rep.Duplicates),
		zap.Int("matched", rep.Matched),
		zap.Int("unmatched", rep.Unmatched),
		zap.Any("degraded", rep.Degraded),
	)
	return rep, nil
}

func (p *Pipeline) names() Names {
	n := p.Names
	if n.Inventory == "" {
		n.Inventory = "inventory.csv"
	}
	if n.Matched == "" {
		n.Matched = "matched.csv"
	}
	if n.Unmatched == "" {
		n.Unmatched = "unmatched.csv"
	}
	return n
}

// write runs one dataset write. Failures are logged and recorded; the other
// datasets are still attempted.
func (p *Pipeline) write(l *zap.Logger, rep *Report, name string, fn func() error) {
	if err := fn(); err != nil {
		l.Error("Failed to write dataset", zap.String("dataset", name), zap.Error(err))
		rep.degrade(StepOutput)
		return
	}
	rep.Written = append(rep.Written, name)
	l.Info("Wrote dataset", zap.String("dataset", name))
}

// errorFields expands remote errors into their op, kind, status and body.
func errorFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	var re *remote.Error
	if errors.As(err, &re) {
		fields = append(fields, zap.String("op", re.Op), zap.Stringer("kind", re.Kind))
		if re.Status != 0 {
			fields = append(fields, zap.Int("status", re.Status))
		}
		if re.Body != "" {
			fields = append(fields, zap.String("body", re.Body))
		}
	}
	return fields
}
