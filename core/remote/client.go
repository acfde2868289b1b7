package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// maxErrorBody caps how much of a failed response body is kept for logging.
const maxErrorBody = 2048

// Client talks to the device-management service.
// The authorization header value is computed once from the configured credentials
// and attached to every call.
type Client struct {
	baseURL       string
	authorization string
	httpClient    *http.Client
}

// NewClient builds a client from the configuration.
func NewClient(cfg Config) (*Client, error) {
	baseURL := sanitizeBaseURL(cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("remote base url not configured")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid remote base url %q: %w", cfg.BaseURL, err)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		baseURL:       baseURL,
		authorization: BasicAuthorization(cfg.ClientID, cfg.ClientSecret),
		httpClient:    &http.Client{Transport: transport},
	}, nil
}

// BasicAuthorization encodes a credential pair as an HTTP Basic authorization value.
func BasicAuthorization(id, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(id+":"+secret))
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// ListHosts returns the host directory in the order the service reports it.
func (c *Client) ListHosts(ctx context.Context) ([]Host, error) {
	const op = "list hosts"
	var payload hostsResponse
	if err := c.do(ctx, op, http.MethodGet, "/hosts", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Hosts, nil
}

// ListHostIDs returns the ids of every host known to the service.
func (c *Client) ListHostIDs(ctx context.Context) ([]HostID, error) {
	hosts, err := c.ListHosts(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]HostID, 0, len(hosts))
	for _, h := range hosts {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

// RequestReport asks the service to generate a hardware report with the given
// fields for the given hosts and returns the token of its first page.
func (c *Client) RequestReport(ctx context.Context, ids []HostID, fields []string) (string, error) {
	const op = "request report"
	if ids == nil {
		ids = []HostID{}
	}
	if fields == nil {
		fields = []string{}
	}
	body, err := json.Marshal(reportRequest{HostIDs: ids, Fields: fields})
	if err != nil {
		return "", &Error{Op: op, Kind: KindDecode, Err: err}
	}

	var payload reportTokenResponse
	if err := c.do(ctx, op, http.MethodPost, "/inventory/hardware/reports", body, &payload); err != nil {
		return "", err
	}
	token := strings.TrimSpace(payload.Token)
	if token == "" {
		return "", &Error{Op: op, Kind: KindMissingToken}
	}
	return token, nil
}

// FetchPage retrieves one page of a report.
func (c *Client) FetchPage(ctx context.Context, token string) (*Page, error) {
	const op = "fetch report page"
	if token == "" {
		return nil, &Error{Op: op, Kind: KindMissingToken}
	}

	var payload reportPageResponse
	path := "/inventory/hardware/reports/" + url.PathEscape(token)
	if err := c.do(ctx, op, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}

	page := &Page{HasRecords: payload.Hosts != nil}
	if payload.Report.Token != nil {
		page.NextToken = strings.TrimSpace(*payload.Report.Token)
	}
	for _, key := range sortRowKeys(payload.Hosts) {
		page.Records = append(page.Records, payload.Hosts[key])
	}
	return page, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		kind := KindServer
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindUnauthorized
		}
		return &Error{Op: op, Kind: kind, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// sortRowKeys orders report row keys numerically when they are all integers,
// lexically otherwise.
func sortRowKeys(rows map[string]Record) []string {
	keys := make([]string, 0, len(rows))
	numeric := true
	for k := range rows {
		keys = append(keys, k)
		if _, err := strconv.ParseInt(k, 10, 64); err != nil {
			numeric = false
		}
	}
	if numeric {
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.ParseInt(keys[i], 10, 64)
			b, _ := strconv.ParseInt(keys[j], 10, 64)
			return a < b
		})
	} else {
		sort.Strings(keys)
	}
	return keys
}

func sanitizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
