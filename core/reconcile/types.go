package reconcile

import (
	"context"
	"errors"

	"tag-reconciler/core/remote"
)

var (
	// ErrPaginationLimitExceeded stops pagination when the remote service repeats a
	// token or the page cap is reached.
	ErrPaginationLimitExceeded = errors.New("reconcile: pagination limit exceeded")
	// ErrNoToken means there was no report token to start paginating from.
	ErrNoToken = errors.New("reconcile: no report token")
	// ErrRecordsAbsent means a report page carried no hosts object.
	ErrRecordsAbsent = errors.New("reconcile: report page without records")
)

// Source is the remote inventory the pipeline reads from.
// *remote.Client implements it.
type Source interface {
	// ListHostIDs returns the ids of every known host.
	ListHostIDs(ctx context.Context) ([]remote.HostID, error)
	// RequestReport starts a report for the hosts and returns the first page token.
	RequestReport(ctx context.Context, ids []remote.HostID, fields []string) (string, error)
	// PageFetcher fetches the report pages.
	PageFetcher
}

// PageFetcher retrieves one report page per token.
type PageFetcher interface {
	FetchPage(ctx context.Context, token string) (*remote.Page, error)
}

// Result partitions the input serials. Every input entry lands in exactly one of
// Matched or Unmatched, in input order, duplicates included.
type Result struct {
	// Matched pairs each found serial with its host id.
	Matched []remote.Record `json:"matched"`
	// Unmatched lists serials absent from the inventory.
	Unmatched []string `json:"unmatched"`
}

// Step names a pipeline stage that degraded instead of completing.
type Step string

const (
	StepInput      Step = "input"
	StepHosts      Step = "hosts"
	StepReport     Step = "report"
	StepPagination Step = "pagination"
	StepOutput     Step = "output"
)

// Report summarises one pipeline run.
type Report struct {
	RunID        string   `json:"run_id"`
	InputSerials int      `json:"input_serials"`
	Hosts        int      `json:"hosts"`
	Pages        int      `json:"pages"`
	Inventory    int      `json:"inventory"`
	Duplicates   int      `json:"duplicates"`
	Matched      int      `json:"matched"`
	Unmatched    int      `json:"unmatched"`
	Degraded     []Step   `json:"degraded"`
	Written      []string `json:"written"`
}

// Reconciled reports whether the run got as far as partitioning the input.
func (r *Report) Reconciled() bool {
	for _, s := range r.Degraded {
		if s == StepReport {
			return false
		}
	}
	return true
}

func (r *Report) degrade(s Step) {
	for _, existing := range r.Degraded {
		if existing == s {
			return
		}
	}
	r.Degraded = append(r.Degraded, s)
}
