package mockapi

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"tag-reconciler/core/remote"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FieldServiceTag is the only report field the mock service can produce.
const FieldServiceTag = "serviceTag"

var (
	// ErrUnknownToken is returned for tokens never issued or already consumed.
	ErrUnknownToken = errors.New("unknown or expired report token")
	// ErrUnsupportedField is returned when a report asks for a field the fixture lacks.
	ErrUnsupportedField = errors.New("unsupported report field")
)

// ReportPage is one served page. Rows are keyed by their position in the report.
type ReportPage struct {
	Rows map[string]remote.Record
	// Next is the token of the following page, empty on the last one.
	Next string
}

type storedPage struct {
	page    ReportPage
	expires time.Time
}

// Service keeps the fixture and the pages of generated reports.
// Pages not fetched within ttl are dropped.
type Service struct {
	hosts    []FixtureHost
	byID     map[int64]FixtureHost
	pageSize int
	ttl      time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	pages map[string]storedPage
	// newToken issues page tokens.
	newToken func() string
	now      func() time.Time
}

// NewService creates a new mock service over the fixture.
func NewService(fx *Fixture, pageSize int, ttl time.Duration, logger *zap.Logger) *Service {
	if pageSize <= 0 {
		pageSize = 1
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	byID := make(map[int64]FixtureHost, len(fx.Hosts))
	for _, h := range fx.Hosts {
		byID[h.ID] = h
	}
	return &Service{
		hosts:    fx.Hosts,
		byID:     byID,
		pageSize: pageSize,
		ttl:      ttl,
		logger:   logger,
		pages:    make(map[string]storedPage),
		newToken: uuid.NewString,
		now:      time.Now,
	}
}

// Hosts returns the directory in fixture order.
func (s *Service) Hosts() []remote.Host {
	hosts := make([]remote.Host, 0, len(s.hosts))
	for _, h := range s.hosts {
		hosts = append(hosts, remote.Host{ID: remote.HostID(h.ID), Description: h.Description})
	}
	return hosts
}

// CreateReport builds the report for the requested hosts, in request order,
// and returns the token of its first page. Unknown ids are skipped. A report
// without rows still has one (empty) page.
func (s *Service) CreateReport(ids []int64, fields []string) (string, error) {
	for _, f := range fields {
		if f != FieldServiceTag {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedField, f)
		}
	}

	rows := make([]remote.Record, 0, len(ids))
	for _, id := range ids {
		h, ok := s.byID[id]
		if !ok {
			s.logger.Debug("Skipping unknown host", zap.Int64("host_id", id))
			continue
		}
		rows = append(rows, remote.Record{HostID: remote.HostID(h.ID), ServiceTag: h.ServiceTag})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	expires := s.now().Add(s.ttl)

	// Build back to front so each page knows its successor's token.
	count := (len(rows) + s.pageSize - 1) / s.pageSize
	if count == 0 {
		count = 1
	}
	next := ""
	for p := count - 1; p >= 0; p-- {
		start := p * s.pageSize
		end := min(start+s.pageSize, len(rows))
		page := ReportPage{Rows: make(map[string]remote.Record, end-start), Next: next}
		for i := start; i < end; i++ {
			page.Rows[strconv.Itoa(i)] = rows[i]
		}
		token := s.newToken()
		s.pages[token] = storedPage{page: page, expires: expires}
		next = token
	}

	s.logger.Info("Report generated", zap.Int("rows", len(rows)), zap.Int("pages", count))
	return next, nil
}

// Page returns a page and consumes its token.
func (s *Service) Page(token string) (ReportPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()

	stored, ok := s.pages[token]
	if !ok {
		return ReportPage{}, ErrUnknownToken
	}
	delete(s.pages, token)
	return stored.page, nil
}

// Pending returns the number of live pages not served yet.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	return len(s.pages)
}

// evictExpired drops abandoned pages. Callers hold mu.
func (s *Service) evictExpired() {
	now := s.now()
	evicted := 0
	for token, p := range s.pages {
		if now.After(p.expires) {
			delete(s.pages, token)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Debug("Evicted expired report pages", zap.Int("pages", evicted))
	}
}
