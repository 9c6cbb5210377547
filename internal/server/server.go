// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the catalog and enhancement operations as a
// JSON HTTP API.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/internal/enhance"
	"github.com/pdiddy/astrobio-engine/internal/ingest"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

// Server routes API requests onto the catalog store, the ingestion
// pipeline, and the enhancement service.
type Server struct {
	Store    *catalog.Store
	Enhance  *enhance.Service
	FetchCfg types.FetchConfig
	Logger   *logrus.Entry
	Router   *http.ServeMux
}

// NewServer wires the routes and returns a ready server.
func NewServer(store *catalog.Store, svc *enhance.Service, fetchCfg types.FetchConfig, logger *logrus.Entry) *Server {
	s := &Server{
		Store:    store,
		Enhance:  svc,
		FetchCfg: fetchCfg,
		Logger:   logger,
		Router:   http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/health", s.handleHealth)
	s.Router.HandleFunc("/search", s.handleSearch)
	s.Router.HandleFunc("/publications/", s.handlePublication)
	s.Router.HandleFunc("/nasa-data/ingest", s.handleIngest)
	s.Router.HandleFunc("/nasa-data/stats", s.handleStats)
	s.Router.HandleFunc("/summarize", s.handleSummarize)
	s.Router.HandleFunc("/chat", s.handleChat)
	s.Router.HandleFunc("/gap_analyze", s.handleGapAnalyze)
	s.Router.HandleFunc("/timeline", s.handleTimeline)
}

// Start blocks serving the API on addr.
func (s *Server) Start(addr string) error {
	s.Logger.Infof("starting API server on %s", addr)
	return http.ListenAndServe(addr, s.Router)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	q := r.URL.Query()
	filters := types.SearchFilters{
		OrganismType:   q.Get("organism_type"),
		ResearchDomain: q.Get("research_domain"),
		Type:           q.Get("type"),
	}
	if yearStr := q.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "year must be an integer"})
			return
		}
		filters.Year = year
	}
	limit := intParam(q.Get("limit"), 0)
	offset := intParam(q.Get("offset"), 0)

	var (
		page types.SearchPage
		err  error
	)
	if q.Get("rank") == "similarity" {
		page, err = s.Store.RankBySimilarity(r.Context(), q.Get("q"), filters, limit, offset)
	} else {
		page, err = s.Store.Search(r.Context(), q.Get("q"), filters, limit, offset)
	}
	if err != nil {
		s.Logger.WithError(err).Error("search failed")
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "search failed"})
		return
	}
	if page.Publications == nil {
		page.Publications = []types.Publication{}
	}
	jsonResponse(w, http.StatusOK, page)
}

func (s *Server) handlePublication(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/publications/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "publication id must be an integer"})
		return
	}

	pub, err := s.Store.GetPublication(r.Context(), id)
	if err != nil {
		jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: "publication not found"})
		return
	}
	jsonResponse(w, http.StatusOK, pub)
}

// IngestRequest selects what to pull into the catalog.
type IngestRequest struct {
	Source string `json:"source"`
	Query  string `json:"query"`
}

// IngestResponse reports the outcome counts of an ingestion run.
type IngestResponse struct {
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Filtered int      `json:"filtered"`
	Failed   int      `json:"failed"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors,omitempty"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Source == "" {
		req.Source = ingest.SourceAll
	}

	s.Logger.WithField("source", req.Source).Info("ingestion started")
	summary, err := ingest.Run(r.Context(), s.Store, req.Source, req.Query, s.FetchCfg, logWriter{s.Logger})
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, IngestResponse{
		Created:  summary.Created,
		Skipped:  summary.Skipped,
		Filtered: summary.Filtered,
		Failed:   summary.Failed,
		Total:    summary.Total(),
		Errors:   summary.Errors,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	stats, err := s.Store.GetStats(r.Context())
	if err != nil {
		s.Logger.WithError(err).Error("stats failed")
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "stats failed"})
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// SummarizeRequest names the publication to summarize.
type SummarizeRequest struct {
	PublicationID int64 `json:"publication_id"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	pub, err := s.Store.GetPublication(r.Context(), req.PublicationID)
	if err != nil {
		jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: "publication not found"})
		return
	}

	res := s.Enhance.Summarize(r.Context(), pub)
	jsonResponse(w, http.StatusOK, res)
}

// ChatRequest carries a free-form question about the catalog.
type ChatRequest struct {
	Question string `json:"question"`
}

// chatContextLimit caps how many catalog records ground one answer.
const chatContextLimit = 10

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "question is required"})
		return
	}

	page, err := s.Store.RankBySimilarity(r.Context(), req.Question, types.SearchFilters{}, chatContextLimit, 0)
	if err != nil {
		s.Logger.WithError(err).Error("chat context lookup failed")
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "chat failed"})
		return
	}

	res := s.Enhance.Chat(r.Context(), req.Question, page.Publications)
	jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleGapAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	stats, err := s.Store.GetStats(r.Context())
	if err != nil {
		s.Logger.WithError(err).Error("gap analysis stats failed")
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "gap analysis failed"})
		return
	}

	res := s.Enhance.AnalyzeGaps(r.Context(), stats)
	jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	entries, err := s.Store.Timeline(r.Context())
	if err != nil {
		s.Logger.WithError(err).Error("timeline failed")
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "timeline failed"})
		return
	}
	if entries == nil {
		entries = []catalog.TimelineEntry{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{"timeline": entries})
}

func intParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// logWriter adapts the structured logger to the io.Writer the ingest
// pipeline prints progress to.
type logWriter struct {
	logger *logrus.Entry
}

func (lw logWriter) Write(p []byte) (int, error) {
	if line := strings.TrimSpace(string(p)); line != "" {
		lw.logger.Info(line)
	}
	return len(p), nil
}
