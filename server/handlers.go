package server

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	pulse "github.com/Sharon-codes/UIDAI-Hackathon"
	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
	"github.com/Sharon-codes/UIDAI-Hackathon/intel"
	"github.com/Sharon-codes/UIDAI-Hackathon/report"
	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status   string     `json:"status"` // "ok" or "empty"
	Version  string     `json:"version"`
	Records  int        `json:"records"`
	Attempts int        `json:"attempts"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, loadedAt, attempts := s.store.Status()
	resp := HealthResponse{Status: "ok", Version: pulse.Version, Records: count, Attempts: attempts}
	if count == 0 {
		resp.Status = "empty"
	}
	if !loadedAt.IsZero() {
		resp.LoadedAt = &loadedAt
	}
	writeJSON(w, r, resp)
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	states := engine.States(s.view())
	if states == nil {
		states = []string{}
	}
	writeJSON(w, r, states)
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	districts := engine.Districts(s.view(), mux.Vars(r)["state"])
	if districts == nil {
		districts = []string{}
	}
	writeJSON(w, r, districts)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, r, s.build(q.Get("state"), q.Get("q")))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	results := engine.SearchDistricts(s.view(), q.Get("state"), q.Get("q"), limit)
	if results == nil {
		results = []schema.Record{}
	}
	writeJSON(w, r, results)
}

// lookup resolves the {state}/{district} path pair or writes a 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (schema.Record, bool) {
	vars := mux.Vars(r)
	rec, ok := engine.FindDistrict(s.view(), vars["state"], vars["district"])
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("District %q not found in %q", vars["district"], vars["state"]))
	}
	return rec, ok
}

func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	mode := intel.ModeFromFlag(truthy(r.URL.Query().Get("futurecast")))
	brief := intel.Classify(rec, mode)

	if r.URL.Query().Get("format") == "text" {
		writeTagged(w, r, "text/plain; charset=utf-8", []byte(report.FormatBrief(brief)))
		return
	}
	writeJSON(w, r, brief)
}

func (s *Server) handleRadar(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, engine.BuildRadar(rec))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	now := s.now()
	text := report.BuildText(rec, report.NewMeta(now))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(rec.District, now)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	dash := s.build(r.URL.Query().Get("state"), "")

	var briefs []intel.Brief
	if !dash.IsState {
		for _, e := range dash.Entries {
			briefs = append(briefs, intel.Classify(e.Record(), intel.Current))
		}
	}

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, dash, briefs); err != nil {
		log.Printf("❌ Pulse: export failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	name := "Aadhaar_Pulse_All_States.xlsx"
	if !dash.IsState {
		name = fmt.Sprintf("Aadhaar_Pulse_%s.xlsx", sanitizeFilename(dash.State.StateFilter))
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["chart"]
	if !knownChart(id) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown chart %q", id))
		return
	}

	dash := s.build(r.URL.Query().Get("state"), "")
	var buf bytes.Buffer
	err := report.RenderChartPNG(&buf, dash.Chart(id))
	if errors.Is(err, report.ErrEmptyChart) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		log.Printf("❌ Pulse: chart %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Chart rendering failed")
		return
	}
	writeTagged(w, r, "image/png", buf.Bytes())
}

func knownChart(id string) bool {
	for _, known := range engine.RankingIDs() {
		if id == known {
			return true
		}
	}
	return false
}

func truthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			out = append(out, c)
		case c == ' ' || c == '_':
			out = append(out, '_')
		}
	}
	return string(out)
}
