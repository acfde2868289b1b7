package mockapi

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"tag-reconciler/core/remote"
	"tag-reconciler/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, cfg server.Config) *fiber.App {
	t.Helper()
	fx, err := ParseFixture(strings.NewReader(sampleFixture))
	require.NoError(t, err)
	return NewApp(cfg, fx, zap.NewNop())
}

func postReport(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/inventory/hardware/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleListHosts(t *testing.T) {
	app := setupTestApp(t, server.Config{})

	resp, err := app.Test(httptest.NewRequest("GET", "/hosts", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	var body struct {
		Hosts []remote.Host `json:"hosts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []remote.Host{{ID: 42, Description: "rack-a/slot-3"}, {ID: 43, Description: "rack-b/slot-1"}}, body.Hosts)
}

func TestHandleCreateReport_AndPage(t *testing.T) {
	app := setupTestApp(t, server.Config{PageSize: 1})

	status, body := postReport(t, app, `{"hostIds":[43,42],"fields":["serviceTag"]}`)
	require.Equal(t, 200, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp, err := app.Test(httptest.NewRequest("GET", "/inventory/hardware/reports/"+token, nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var page struct {
		Hosts  map[string]remote.Record `json:"hosts"`
		Report struct {
			Token *string `json:"token"`
		} `json:"report"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, map[string]remote.Record{"0": {HostID: 43, ServiceTag: "DEF456"}}, page.Hosts)
	require.NotNil(t, page.Report.Token)

	resp, err = app.Test(httptest.NewRequest("GET", "/inventory/hardware/reports/"+*page.Report.Token, nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(t, `{"token":null}`, string(raw["report"]))
	assert.JSONEq(t, `{"1":{"hostId":42,"serviceTag":"ABC123"}}`, string(raw["hosts"]))
}

func TestHandleCreateReport_BadRequests(t *testing.T) {
	app := setupTestApp(t, server.Config{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"Malformed", `{"hostIds":`, fiber.StatusBadRequest},
		{"NullHostIDs", `{"hostIds":null,"fields":["serviceTag"]}`, fiber.StatusBadRequest},
		{"NoFields", `{"hostIds":[42],"fields":[]}`, fiber.StatusBadRequest},
		{"UnsupportedField", `{"hostIds":[42],"fields":["model"]}`, fiber.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postReport(t, app, tt.body)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleCreateReport_EmptyHostIDs(t *testing.T) {
	app := setupTestApp(t, server.Config{})

	status, body := postReport(t, app, `{"hostIds":[],"fields":["serviceTag"]}`)
	assert.Equal(t, 200, status)
	assert.NotEmpty(t, body["token"])
}

func TestHandleReportPage_UnknownToken(t *testing.T) {
	app := setupTestApp(t, server.Config{})

	resp, err := app.Test(httptest.NewRequest("GET", "/inventory/hardware/reports/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestNewApp_RequiresCredentials(t *testing.T) {
	app := setupTestApp(t, server.Config{ClientID: "reconciler", ClientSecret: "s3cr3t"})

	resp, err := app.Test(httptest.NewRequest("GET", "/hosts", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest("GET", "/hosts", nil)
	req.Header.Set("Authorization", remote.BasicAuthorization("reconciler", "s3cr3t"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
