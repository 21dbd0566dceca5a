package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sharon-codes/UIDAI-Hackathon/dataset"
	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
	"github.com/Sharon-codes/UIDAI-Hackathon/intel"
	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

func sampleRecords() []schema.Record {
	return []schema.Record{
		{State: "Kerala", District: "Kochi", AMIScore: 0.82, ERPScore: 0.05, ICMPScore: 0.1, LastMileDensity: 0.03},
		{State: "Bihar", District: "Patna", AMIScore: 0.31, ERPScore: 0.15, ICMPScore: 0.05, LastMileDensity: 0.2, GhostFlag: true},
		{State: "Bihar", District: "Gaya", AMIScore: 0.27, ERPScore: 0.22, ICMPScore: 0.08, LastMileDensity: 0.12},
		{State: "Tamil Nadu", District: "Chennai", AMIScore: 0.7, ERPScore: 0.08, ICMPScore: 0.3, LastMileDensity: 0.02},
		{State: schema.StateUnknown, District: "Nowhere", AMIScore: 0.5},
	}
}

func newTestServer(records []schema.Record, opts ...Option) http.Handler {
	store := dataset.NewStore()
	if records != nil {
		store.Replace(records)
	}
	return New(store, opts...).Handler()
}

func get(t *testing.T, h http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

// ============================================================================
// LOOKUPS
// ============================================================================

func TestStatesEndpoint(t *testing.T) {
	h := newTestServer(sampleRecords())
	rec := get(t, h, "/api/states")
	assertStatus(t, rec, http.StatusOK)

	var states []string
	decode(t, rec, &states)
	if strings.Join(states, ",") != "Bihar,Kerala,Tamil Nadu" {
		t.Errorf("states = %v", states)
	}
}

func TestDistrictsEndpoint(t *testing.T) {
	h := newTestServer(sampleRecords())
	var districts []string
	decode(t, get(t, h, "/api/states/Bihar/districts"), &districts)
	if strings.Join(districts, ",") != "Gaya,Patna" {
		t.Errorf("districts = %v", districts)
	}

	decode(t, get(t, h, "/api/states/Atlantis/districts"), &districts)
	if len(districts) != 0 {
		t.Errorf("unknown state should list nothing, got %v", districts)
	}
}

func TestSearchEndpoint(t *testing.T) {
	h := newTestServer(sampleRecords())
	var results []schema.Record
	decode(t, get(t, h, "/api/search?q=a&state=Bihar"), &results)
	if len(results) != 2 {
		t.Errorf("results = %+v", results)
	}
}

// ============================================================================
// DASHBOARD
// ============================================================================

func TestDashboardEndpoint(t *testing.T) {
	h := newTestServer(sampleRecords(), WithTopN(2))

	var dash engine.Dashboard
	decode(t, get(t, h, "/api/dashboard"), &dash)
	if !dash.IsState || dash.Empty || len(dash.Entries) != 3 {
		t.Fatalf("all-states dashboard = %+v", dash)
	}
	if dash.Entries[0].Name != "Kerala" {
		t.Errorf("first entry = %s", dash.Entries[0].Name)
	}
	if len(dash.Rankings) == 0 || len(dash.Rankings[0].Entries) != 2 {
		t.Errorf("rankings should honour top n: %+v", dash.Rankings)
	}

	decode(t, get(t, h, "/api/dashboard?state=Bihar&q=pat"), &dash)
	if dash.IsState || len(dash.Entries) != 1 || dash.Entries[0].Name != "Patna" {
		t.Errorf("district dashboard = %+v", dash.Entries)
	}
}

func TestDashboardETag(t *testing.T) {
	h := newTestServer(sampleRecords())
	first := get(t, h, "/api/dashboard?state=Kerala")
	assertStatus(t, first, http.StatusOK)
	tag := first.Header().Get("ETag")
	if tag == "" {
		t.Fatal("missing ETag")
	}

	again := get(t, h, "/api/dashboard?state=Kerala", "If-None-Match", tag)
	assertStatus(t, again, http.StatusNotModified)
	if again.Body.Len() != 0 {
		t.Error("304 should carry no body")
	}

	other := get(t, h, "/api/dashboard?state=Bihar", "If-None-Match", tag)
	assertStatus(t, other, http.StatusOK)
}

func TestMatchesETag(t *testing.T) {
	for _, tt := range []struct {
		header string
		want   bool
	}{
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{`*`, true},
		{`"x"`, false},
		{``, false},
	} {
		if got := matchesETag(tt.header, `"abc"`); got != tt.want {
			t.Errorf("matchesETag(%q) = %v", tt.header, got)
		}
	}
}

func TestEmptyStoreNeverFails(t *testing.T) {
	h := newTestServer(nil)

	var dash engine.Dashboard
	rec := get(t, h, "/api/dashboard")
	assertStatus(t, rec, http.StatusOK)
	decode(t, rec, &dash)
	if !dash.Empty || len(dash.Entries) != 0 {
		t.Errorf("empty dashboard = %+v", dash)
	}

	var states []string
	decode(t, get(t, h, "/api/states"), &states)
	if states == nil || len(states) != 0 {
		t.Errorf("states = %v", states)
	}

	assertStatus(t, get(t, h, "/api/charts/top-ami.png"), http.StatusNoContent)
	assertStatus(t, get(t, h, "/api/export.xlsx"), http.StatusOK)
	assertStatus(t, get(t, h, "/"), http.StatusOK)

	var health HealthResponse
	decode(t, get(t, h, "/healthz"), &health)
	if health.Status != "empty" || health.Records != 0 {
		t.Errorf("health = %+v", health)
	}
}

// ============================================================================
// DISTRICT DEEP DIVE
// ============================================================================

func TestBriefEndpoint(t *testing.T) {
	h := newTestServer(sampleRecords())

	var brief intel.Brief
	decode(t, get(t, h, "/api/districts/Bihar/Patna/brief"), &brief)
	if brief.Risk.Level != intel.LevelCritical || brief.ModeName != "current" {
		t.Errorf("brief risk/mode = %s/%s", brief.Risk.Level, brief.ModeName)
	}

	decode(t, get(t, h, "/api/districts/Bihar/Patna/brief?futurecast=1"), &brief)
	if brief.ModeName != "futurecast" {
		t.Errorf("mode = %s", brief.ModeName)
	}

	text := get(t, h, "/api/districts/Tamil%20Nadu/Chennai/brief?format=text")
	assertStatus(t, text, http.StatusOK)
	if !strings.Contains(text.Body.String(), "INTELLIGENCE BRIEF: CHENNAI, TAMIL NADU") {
		t.Errorf("text brief = %s", text.Body.String())
	}
}

func TestUnknownDistrictIs404(t *testing.T) {
	h := newTestServer(sampleRecords())
	for _, path := range []string{
		"/api/districts/Bihar/Kochi/brief",
		"/api/districts/Kerala/Atlantis/radar",
		"/api/districts/bihar/patna/report",
	} {
		rec := get(t, h, path)
		assertStatus(t, rec, http.StatusNotFound)
		var body ErrorResponse
		decode(t, rec, &body)
		if body.Code != http.StatusNotFound || body.Error == "" {
			t.Errorf("%s: body = %+v", path, body)
		}
	}
}

func TestRadarEndpoint(t *testing.T) {
	h := newTestServer(sampleRecords())
	var chart engine.ChartConfig
	decode(t, get(t, h, "/api/districts/Kerala/Kochi/radar"), &chart)
	if chart.ChartType != "radar" || len(chart.Series) == 0 {
		t.Errorf("radar = %+v", chart)
	}
}

func TestReportDownload(t *testing.T) {
	fixed := time.UnixMilli(1769420000123)
	h := newTestServer(sampleRecords(), WithClock(func() time.Time { return fixed }))

	rec := get(t, h, "/api/districts/Bihar/Patna/report")
	assertStatus(t, rec, http.StatusOK)
	want := `attachment; filename="Intelligence_Brief_Patna_1769420000123.txt"`
	if got := rec.Header().Get("Content-Disposition"); got != want {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "District: PATNA") {
		t.Errorf("report body = %s", rec.Body.String())
	}
}

// ============================================================================
// EXPORTS
// ============================================================================

func TestExportWorkbook(t *testing.T) {
	h := newTestServer(sampleRecords())
	rec := get(t, h, "/api/export.xlsx?state=Tamil%20Nadu")
	assertStatus(t, rec, http.StatusOK)
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("export is not a zip container")
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Aadhaar_Pulse_Tamil_Nadu.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestChartPNG(t *testing.T) {
	h := newTestServer(sampleRecords())
	rec := get(t, h, "/api/charts/bottom-erp.png?state=Bihar")
	assertStatus(t, rec, http.StatusOK)
	if !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Error("chart is not a PNG")
	}
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}

	assertStatus(t, get(t, h, "/api/charts/sideways.png"), http.StatusNotFound)
}

// ============================================================================
// PAGE + PLUMBING
// ============================================================================

func TestPage(t *testing.T) {
	h := newTestServer(sampleRecords())
	rec := get(t, h, "/?state=Bihar")
	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	for _, want := range []string{"Aadhaar Pulse", `<option value="Bihar" selected>`, "District Performance Details", "Patna"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, schema.StateUnknown) {
		t.Error("sentinel state should not be selectable")
	}
}

func TestHealthz(t *testing.T) {
	h := newTestServer(sampleRecords())
	var health HealthResponse
	decode(t, get(t, h, "/healthz"), &health)
	if health.Status != "ok" || health.Records != 5 || health.LoadedAt == nil || health.Version == "" {
		t.Errorf("health = %+v", health)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(sampleRecords(), WithAllowedOrigins("https://pulse.example.org"))
	req := httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	req.Header.Set("Origin", "https://pulse.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://pulse.example.org" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	h := newTestServer(sampleRecords())
	rec := get(t, h, "/api/nope")
	assertStatus(t, rec, http.StatusNotFound)
	var body ErrorResponse
	decode(t, rec, &body)
	if body.Code != http.StatusNotFound {
		t.Errorf("body = %+v", body)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := get(t, h, "/")
	assertStatus(t, rec, http.StatusInternalServerError)
	var body ErrorResponse
	decode(t, rec, &body)
	if body.Code != 500 {
		t.Errorf("body = %+v", body)
	}
}
