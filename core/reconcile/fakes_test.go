package reconcile

import (
	"context"
	"errors"

	"tag-reconciler/core/remote"
)

// fakeRemote serves a scripted report. pages is keyed by token.
type fakeRemote struct {
	ids      []remote.HostID
	idsErr   error
	token    string
	tokenErr error
	pages    map[string]*remote.Page
	pageErrs map[string]error

	gotIDs    []remote.HostID
	gotFields []string
	fetched   []string
}

func (f *fakeRemote) ListHostIDs(ctx context.Context) ([]remote.HostID, error) {
	if f.idsErr != nil {
		return nil, f.idsErr
	}
	return f.ids, nil
}

func (f *fakeRemote) RequestReport(ctx context.Context, ids []remote.HostID, fields []string) (string, error) {
	f.gotIDs = ids
	f.gotFields = fields
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return f.token, nil
}

func (f *fakeRemote) FetchPage(ctx context.Context, token string) (*remote.Page, error) {
	f.fetched = append(f.fetched, token)
	if err := f.pageErrs[token]; err != nil {
		return nil, err
	}
	page, ok := f.pages[token]
	if !ok {
		return nil, errors.New("unknown token " + token)
	}
	return page, nil
}

type staticInput struct {
	serials []string
	err     error
}

func (s staticInput) Load(ctx context.Context) ([]string, error) {
	return s.serials, s.err
}

type dataset struct {
	header []string
	rows   [][]string
}

// memorySink keeps written datasets by name; failNames makes writes fail.
type memorySink struct {
	datasets  map[string]dataset
	order     []string
	failNames map[string]bool
}

func newMemorySink() *memorySink {
	return &memorySink{datasets: map[string]dataset{}, failNames: map[string]bool{}}
}

func (m *memorySink) Write(ctx context.Context, name string, header []string, rows [][]string) error {
	if m.failNames[name] {
		return errors.New("disk full")
	}
	m.datasets[name] = dataset{header: header, rows: rows}
	m.order = append(m.order, name)
	return nil
}

func page(next string, records ...remote.Record) *remote.Page {
	return &remote.Page{Records: records, HasRecords: true, NextToken: next}
}

func rec(id remote.HostID, tag string) remote.Record {
	return remote.Record{HostID: id, ServiceTag: tag}
}
