package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"spacex-dashboard/charts"
	"spacex-dashboard/models"
	"spacex-dashboard/services"
	"spacex-dashboard/storage"
)

type errorBody struct {
	Error string `json:"error"`
}

type siteRequest struct {
	Site string `json:"site"`
}

type payloadRequest struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type selectionResponse struct {
	State   models.SelectionState `json:"state"`
	Outcome *models.ChartSpec     `json:"outcome,omitempty"`
	Scatter *models.ChartSpec     `json:"scatter,omitempty"`
}

type statsResponse struct {
	State     models.SelectionState `json:"state"`
	Payload   models.PayloadSummary `json:"payload"`
	Successes int                   `json:"successes"`
}

type indexPage struct {
	Layout     models.Layout
	State      models.SelectionState
	Records    int
	OutcomeSrc template.URL
	ScatterSrc template.URL
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	vc := controllerFrom(r)
	if err := applyQuery(vc, r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := vc.State()
	page := indexPage{
		Layout:     services.DefaultLayout(s.dataset, state),
		State:      state,
		Records:    s.dataset.Len(),
		OutcomeSrc: chartSrc("/charts/outcome.svg", state),
		ScatterSrc: chartSrc("/charts/scatter.svg", state),
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", page); err != nil {
		s.logger.Error("[server] Render index: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.DefaultLayout(s.dataset, controllerFrom(r).State()))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, controllerFrom(r).State())
}

func (s *Server) handleSelectSite(w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return
	}

	vc := controllerFrom(r)
	outcome, scatter, err := vc.SelectSite(req.Site)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{State: vc.State(), Outcome: &outcome, Scatter: &scatter})
}

func (s *Server) handleSelectPayload(w http.ResponseWriter, r *http.Request) {
	var req payloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return
	}

	vc := controllerFrom(r)
	rng := vc.State().Payload
	if req.Min != nil {
		rng.Min = *req.Min
	}
	if req.Max != nil {
		rng.Max = *req.Max
	}

	scatter, err := vc.SelectPayloadRange(rng)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{State: vc.State(), Scatter: &scatter})
}

func (s *Server) handleOutcomeChart(w http.ResponseWriter, r *http.Request) {
	vc := controllerFrom(r)
	if err := applyQuery(vc, r); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vc.OutcomeChart())
}

func (s *Server) handleScatterChart(w http.ResponseWriter, r *http.Request) {
	vc := controllerFrom(r)
	if err := applyQuery(vc, r); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vc.ScatterChart())
}

func (s *Server) handleOutcomeSVG(w http.ResponseWriter, r *http.Request) {
	vc := controllerFrom(r)
	if err := applyQuery(vc, r); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSVG(w, vc.OutcomeChart())
}

func (s *Server) handleScatterSVG(w http.ResponseWriter, r *http.Request) {
	vc := controllerFrom(r)
	if err := applyQuery(vc, r); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSVG(w, vc.ScatterChart())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	vc := controllerFrom(r)
	if err := applyQuery(vc, r); err != nil {
		s.writeError(w, err)
		return
	}
	filtered := vc.Filtered()

	successes := 0
	for _, rec := range filtered.Records {
		successes += rec.Outcome
	}
	writeJSON(w, http.StatusOK, statsResponse{
		State:     vc.State(),
		Payload:   services.SummarizePayload(filtered.Records),
		Successes: successes,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	vc := controllerFrom(r)
	if err := applyQuery(vc, r); err != nil {
		s.writeError(w, err)
		return
	}
	filtered := vc.Filtered()

	var buf bytes.Buffer
	cw, err := storage.NewCSVWriter(&buf)
	if err == nil {
		err = cw.Write(filtered.Records)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="launches.csv"`)
	w.Write(buf.Bytes())
}

func (s *Server) writeSVG(w http.ResponseWriter, spec models.ChartSpec) {
	var buf bytes.Buffer
	if err := charts.RenderSVG(spec, &buf, charts.Options{}); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// chartSrc builds a chart URL that carries the full selection, so the
// image shows that selection even if the session changes before it loads.
func chartSrc(path string, state models.SelectionState) template.URL {
	q := url.Values{}
	q.Set("site", state.Site)
	q.Set("min", strconv.FormatFloat(state.Payload.Min, 'f', -1, 64))
	q.Set("max", strconv.FormatFloat(state.Payload.Max, 'f', -1, 64))
	return template.URL(path + "?" + q.Encode())
}

// applyQuery applies optional site, min and max query parameters to the
// session before a page or chart is rendered. All parameters are parsed
// and validated before any of them takes effect.
func applyQuery(vc *services.ViewController, r *http.Request) error {
	q := r.URL.Query()
	if !q.Has("site") && !q.Has("min") && !q.Has("max") {
		return nil
	}

	next := vc.State()
	if q.Has("site") {
		next.Site = q.Get("site")
	}
	for _, bound := range []struct {
		key string
		dst *float64
	}{
		{"min", &next.Payload.Min},
		{"max", &next.Payload.Max},
	} {
		if !q.Has(bound.key) {
			continue
		}
		v, err := strconv.ParseFloat(q.Get(bound.key), 64)
		if err != nil {
			return &models.InvalidSelectionError{Field: "payload " + bound.key, Value: q.Get(bound.key), Reason: "not a number"}
		}
		*bound.dst = v
	}

	_, _, err := vc.Select(next)
	return err
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var selErr *models.InvalidSelectionError
	if errors.As(err, &selErr) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: selErr.Error()})
		return
	}
	s.logger.Error("[server] %v", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
