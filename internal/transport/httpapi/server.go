// Package httpapi exposes the retrieval engine and benchmark runners over a
// JSON HTTP API. All request parsing and serialization happens here; the
// retrieval core stays transport-free.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	dombench "github.com/lexidex/lexidex/internal/domain/benchmark"
	"github.com/lexidex/lexidex/internal/metrics"
	"github.com/lexidex/lexidex/internal/repository/memindex"
	retrievaluc "github.com/lexidex/lexidex/internal/usecase/retrieval"
	"github.com/lexidex/lexidex/internal/version"

	benchmarkuc "github.com/lexidex/lexidex/internal/usecase/benchmark"
)

// Server holds the shared retrieval engine and benchmark automation. The core
// has no concurrent-mutation guarantees of its own, so the server serializes
// all access to the shared engine and to the automated runner's history.
type Server struct {
	mu     sync.Mutex // guards engine
	engine *retrievaluc.Service

	benchMu   sync.Mutex // guards automated (history ring)
	automated *benchmarkuc.AutomatedRunner

	archive benchmarkuc.Archiver // nil = history endpoint disabled
	logger  *zap.Logger

	defaultTopK int
	maxTopK     int
}

// NewServer creates an HTTP API server.
func NewServer(
	engine *retrievaluc.Service,
	automated *benchmarkuc.AutomatedRunner,
	archive benchmarkuc.Archiver,
	logger *zap.Logger,
	defaultTopK, maxTopK int,
) *Server {
	return &Server{
		engine:      engine,
		automated:   automated,
		archive:     archive,
		logger:      logger,
		defaultTopK: defaultTopK,
		maxTopK:     maxTopK,
	}
}

// Routes registers all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/retrieve/index", s.RetrieveIndex)
	r.Post("/retrieve/query", s.RetrieveQuery)
	r.Post("/retrieve/benchmark", s.RetrieveBenchmark)
	r.Post("/retrieve/benchmark/automated", s.RetrieveBenchmarkAutomated)
	r.Get("/benchmarks/history", s.BenchmarkHistory)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	indexed := s.engine.Size()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.Version,
		Indexed: indexed,
	})
}

// RetrieveIndex handles POST /retrieve/index: ingest a knowledge bundle into
// the shared engine.
func (s *Server) RetrieveIndex(w http.ResponseWriter, r *http.Request) {
	var req BundleDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	bundle, err := bundleFromDTO(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	s.mu.Lock()
	count := s.engine.Ingest(bundle)
	s.mu.Unlock()

	metrics.RetrievalSlicesIngested.Add(float64(count))

	writeJSON(w, http.StatusOK, IngestResponse{Status: "indexed", Count: count})
}

// RetrieveQuery handles POST /retrieve/query.
func (s *Server) RetrieveQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}
	if topK > s.maxTopK {
		topK = s.maxTopK
	}

	s.mu.Lock()
	hits := s.engine.Query(req.Query, topK)
	s.mu.Unlock()

	metrics.RetrievalQueriesTotal.Inc()
	metrics.RetrievalHitsReturned.Observe(float64(len(hits)))

	writeJSON(w, http.StatusOK, QueryResponse{Hits: hitsToDTO(hits)})
}

// RetrieveBenchmark handles POST /retrieve/benchmark: run the supplied cases
// (or the canned corpus) against a fresh baseline engine.
func (s *Server) RetrieveBenchmark(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOptional[BenchmarkRequest](w, r)
	if !ok {
		return
	}

	cases, err := resolveCases(req.Cases)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	// A fresh engine per request: benchmark runs never touch the shared index.
	runner := benchmarkuc.NewRunner(retrievaluc.New(memindex.New()))
	suite := runner.Run(cases)

	writeJSON(w, http.StatusOK, suiteToDTO(suite))
}

// RetrieveBenchmarkAutomated handles POST /retrieve/benchmark/automated:
// compare registered adapters, optionally recording run history.
func (s *Server) RetrieveBenchmarkAutomated(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOptional[AutomatedBenchmarkRequest](w, r)
	if !ok {
		return
	}

	cases, err := resolveCases(req.Cases)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	track := true
	if req.Track != nil {
		track = *req.Track
	}

	s.benchMu.Lock()
	summary := s.automated.RunAll(r.Context(), cases, req.Adapters, track)
	s.benchMu.Unlock()

	writeJSON(w, http.StatusOK, summaryToDTO(summary))
}

// BenchmarkHistory handles GET /benchmarks/history: recent archived results.
func (s *Server) BenchmarkHistory(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusNotImplemented, ErrorCodeNotImplemented, "benchmark archive is disabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	results, err := s.archive.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to read benchmark archive", zap.Error(err))
		writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "failed to read archive")
		return
	}

	items := make([]AdapterResultDTO, 0, len(results))
	for _, res := range results {
		items = append(items, adapterResultToDTO(res))
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Results: items})
}

// resolveCases converts supplied case DTOs, falling back to the canned corpus
// when none are given.
func resolveCases(dtos []CaseDTO) ([]dombench.Case, error) {
	if len(dtos) == 0 {
		return benchmarkuc.DefaultCases(), nil
	}
	return casesFromDTO(dtos)
}

// decodeOptional decodes a JSON body that may legitimately be absent. An
// empty body yields the zero value; malformed JSON writes a 400 and returns
// false.
func decodeOptional[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var req T
	if r.Body == nil || r.ContentLength == 0 {
		return req, true
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		var zero T
		return zero, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
