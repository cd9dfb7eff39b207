package server

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacex-dashboard/models"
	"spacex-dashboard/services"
	"spacex-dashboard/utils"
)

func testRecords() []*models.LaunchRecord {
	return []*models.LaunchRecord{
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 500, Outcome: 0, BoosterCategory: "v1.0"},
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 2500, Outcome: 1, BoosterCategory: "FT"},
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 5300, Outcome: 1, BoosterCategory: "FT"},
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 9600, Outcome: 0, BoosterCategory: "B4"},
	}
}

// newTestServer starts the dashboard over a small fixture and returns a
// client that keeps the session cookie between requests.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	ds, err := services.NewDataset("fixture", testRecords())
	require.NoError(t, err)

	logger := utils.Discard()
	srv, err := New(ds, services.NewSessions(ds, time.Minute, logger), logger)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func getJSON(t *testing.T, client *http.Client, url string, v any) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp
}

func postJSON(t *testing.T, client *http.Client, url, body string, v any) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp
}

func TestHealth(t *testing.T) {
	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestIndexRendersLayout(t *testing.T) {
	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := string(body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "SpaceX Launch Records Dashboard")
	assert.Contains(t, page, `<option value="All" selected>All</option>`)
	assert.Contains(t, page, `<option value="KSC LC-39A">KSC LC-39A</option>`)
	assert.Contains(t, page, `id="success-pie-chart"`)
	assert.Contains(t, page, `id="success-payload-scatter-chart"`)
	assert.Contains(t, page, `value="10000"`)
	assert.Equal(t, 2, strings.Count(page, `type="range"`))
	assert.Contains(t, page, `step="1000"`)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			session = c
		}
	}
	require.NotNil(t, session, "session cookie should be issued")
}

func TestSelectSiteUpdatesBothCharts(t *testing.T) {
	ts, client := newTestServer(t)

	var sel selectionResponse
	resp := postJSON(t, client, ts.URL+"/api/selection/site", `{"site":"CCAFS LC-40"}`, &sel)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, sel.Outcome)
	require.NotNil(t, sel.Scatter)
	assert.Equal(t, "Success Launches at CCAFS LC-40", sel.Outcome.Title)
	require.Len(t, sel.Outcome.Slices, 2)
	assert.Equal(t, "0", sel.Outcome.Slices[0].Label)
	assert.Equal(t, 1.0, sel.Outcome.Slices[0].Value)
	assert.Len(t, sel.Scatter.Points, 2)

	var state models.SelectionState
	getJSON(t, client, ts.URL+"/api/state", &state)
	assert.Equal(t, "CCAFS LC-40", state.Site)
}

func TestSelectUnknownSiteIsRejected(t *testing.T) {
	ts, client := newTestServer(t)

	var body errorBody
	resp := postJSON(t, client, ts.URL+"/api/selection/site", `{"site":"Nowhere"}`, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Error, "Nowhere")

	var state models.SelectionState
	getJSON(t, client, ts.URL+"/api/state", &state)
	assert.Equal(t, models.AllSites, state.Site)
}

func TestSelectPayloadFiltersScatter(t *testing.T) {
	ts, client := newTestServer(t)

	var sel selectionResponse
	resp := postJSON(t, client, ts.URL+"/api/selection/payload", `{"min":2500,"max":5300}`, &sel)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, sel.Scatter)
	assert.Nil(t, sel.Outcome)
	assert.Len(t, sel.Scatter.Points, 2)
	assert.Equal(t, models.PayloadRange{Min: 2500, Max: 5300}, sel.State.Payload)

	var outcome models.ChartSpec
	getJSON(t, client, ts.URL+"/api/charts/outcome", &outcome)
	assert.Equal(t, services.TitleAllSitesOutcome, outcome.Title)
}

func TestSelectPayloadRejectsInvertedRange(t *testing.T) {
	ts, client := newTestServer(t)

	var body errorBody
	resp := postJSON(t, client, ts.URL+"/api/selection/payload", `{"min":6000,"max":1000}`, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body.Error)
}

func TestSessionsDoNotShareSelection(t *testing.T) {
	ts, first := newTestServer(t)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	second := &http.Client{Jar: jar}

	var sel selectionResponse
	postJSON(t, first, ts.URL+"/api/selection/site", `{"site":"VAFB SLC-4E"}`, &sel)

	var state models.SelectionState
	getJSON(t, second, ts.URL+"/api/state", &state)
	assert.Equal(t, models.AllSites, state.Site)
}

func TestQueryParamsApplyToSession(t *testing.T) {
	ts, client := newTestServer(t)

	var scatter models.ChartSpec
	resp := getJSON(t, client, ts.URL+"/api/charts/scatter?site=KSC%20LC-39A&min=0&max=6000", &scatter)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, scatter.Points, 1)

	var body errorBody
	resp = getJSON(t, client, ts.URL+"/api/charts/scatter?min=abc", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRejectedQueryLeavesSelectionUnchanged(t *testing.T) {
	ts, client := newTestServer(t)

	for _, query := range []string{
		"site=KSC%20LC-39A&min=abc",
		"site=KSC%20LC-39A&min=6000&max=1000",
		"site=Nowhere&min=1000",
	} {
		var body errorBody
		resp := getJSON(t, client, ts.URL+"/api/charts/scatter?"+query, &body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)

		var state models.SelectionState
		getJSON(t, client, ts.URL+"/api/state", &state)
		assert.Equal(t, models.DefaultSelection(), state, query)
	}
}

func TestChartSVG(t *testing.T) {
	ts, client := newTestServer(t)

	for _, path := range []string{"/charts/outcome.svg", "/charts/scatter.svg"} {
		resp, err := client.Get(ts.URL + path)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"), path)
		assert.Contains(t, string(body), "<svg", path)
	}
}

func TestStatsAndExport(t *testing.T) {
	ts, client := newTestServer(t)

	var stats statsResponse
	getJSON(t, client, ts.URL+"/api/stats?site=CCAFS%20LC-40", &stats)
	assert.Equal(t, 2, stats.Payload.Count)
	assert.Equal(t, 1, stats.Successes)
	assert.Equal(t, 1500.0, stats.Payload.Mean)

	resp, err := client.Get(ts.URL + "/api/export.csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Len(t, lines, 3, "header plus the two CCAFS LC-40 rows")
}

func TestNotFoundIsJSON(t *testing.T) {
	ts, client := newTestServer(t)

	var body errorBody
	resp := getJSON(t, client, ts.URL+"/nope", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", body.Error)
}

var outcomeSrc = regexp.MustCompile(`data-chart="outcome" src="([^"]+)"`)

// Pages loaded in parallel from one cookie jar must each show the site
// they were opened for, even though they share a session.
func TestIndexChartURLsCarrySelection(t *testing.T) {
	ts, client := newTestServer(t)

	pageFor := func(site string) string {
		resp, err := client.Get(ts.URL + "/?site=" + url.QueryEscape(site) + "&max=6000")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}
	first := pageFor("CCAFS LC-40")
	pageFor("KSC LC-39A")

	m := outcomeSrc.FindStringSubmatch(first)
	require.NotNil(t, m, "outcome chart image missing")
	src, err := url.Parse(html.UnescapeString(m[1]))
	require.NoError(t, err)
	assert.Equal(t, "/charts/outcome.svg", src.Path)
	assert.Equal(t, "CCAFS LC-40", src.Query().Get("site"))
	assert.Equal(t, "6000", src.Query().Get("max"))

	var outcome models.ChartSpec
	getJSON(t, client, ts.URL+"/api/charts/outcome?"+src.RawQuery, &outcome)
	assert.Equal(t, "Success Launches at CCAFS LC-40", outcome.Title)
}
