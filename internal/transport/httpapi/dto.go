package httpapi

import (
	"fmt"

	dombench "github.com/lexidex/lexidex/internal/domain/benchmark"
	"github.com/lexidex/lexidex/internal/domain/knowledge"
	domret "github.com/lexidex/lexidex/internal/domain/retrieval"
)

// ErrorCode classifies API errors in responses.
type ErrorCode string

const (
	// ErrorCodeBadRequest signals a malformed request body.
	ErrorCodeBadRequest ErrorCode = "bad_request"
	// ErrorCodeValidationFailed signals an invalid bundle or case payload.
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	// ErrorCodeNotImplemented signals a disabled optional feature.
	ErrorCodeNotImplemented ErrorCode = "not_implemented"
	// ErrorCodeInternalError signals an unexpected server failure.
	ErrorCodeInternalError ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SliceDTO is the wire form of a knowledge slice.
type SliceDTO struct {
	ID         string   `json:"id"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Modality   string   `json:"modality"`
	SourceRefs []string `json:"source_refs,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// BundleDTO is the wire form of a knowledge bundle.
type BundleDTO struct {
	Slices  []SliceDTO `json:"slices"`
	TraceID string     `json:"trace_id,omitempty"`
}

// IngestResponse reports how many slices were indexed.
type IngestResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// QueryRequest is the body of POST /retrieve/query.
type QueryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// HitDTO is the wire form of a retrieval hit.
type HitDTO struct {
	ID       string   `json:"id"`
	Score    float64  `json:"score"`
	Summary  string   `json:"summary"`
	Tags     []string `json:"tags"`
	Modality string   `json:"modality"`
	Sources  []string `json:"sources"`
}

// QueryResponse is the body of a successful query.
type QueryResponse struct {
	Hits []HitDTO `json:"hits"`
}

// CaseDTO is the wire form of a benchmark case.
type CaseDTO struct {
	ID          string    `json:"id"`
	Bundle      BundleDTO `json:"bundle"`
	Query       string    `json:"query"`
	RelevantIDs []string  `json:"relevant_ids"`
	TopK        int       `json:"top_k"`
}

// BenchmarkRequest is the body of POST /retrieve/benchmark.
type BenchmarkRequest struct {
	Cases []CaseDTO `json:"cases,omitempty"`
}

// AutomatedBenchmarkRequest is the body of POST /retrieve/benchmark/automated.
// Track defaults to true when omitted.
type AutomatedBenchmarkRequest struct {
	Cases    []CaseDTO `json:"cases,omitempty"`
	Adapters []string  `json:"adapters,omitempty"`
	Track    *bool     `json:"track,omitempty"`
}

// ResultDTO is the wire form of a per-case benchmark result.
type ResultDTO struct {
	CaseID        string   `json:"case_id"`
	Hits          []HitDTO `json:"hits"`
	PrecisionAtK  float64  `json:"precision_at_k"`
	RecallAtK     float64  `json:"recall_at_k"`
	RelevantFound []string `json:"relevant_found"`
}

// SuiteDTO is the wire form of a benchmark suite.
type SuiteDTO struct {
	Results        []ResultDTO `json:"results"`
	MacroPrecision float64     `json:"macro_precision"`
	MacroRecall    float64     `json:"macro_recall"`
}

// AdapterResultDTO is the wire form of one adapter's benchmark outcome.
type AdapterResultDTO struct {
	Adapter    string   `json:"adapter"`
	Suite      SuiteDTO `json:"suite"`
	DurationMS float64  `json:"duration_ms"`
}

// SummaryDTO is the wire form of an automated benchmark summary. History is
// present only when history tracking was requested for the call.
type SummaryDTO struct {
	Runs           []AdapterResultDTO  `json:"runs"`
	MacroPrecision float64             `json:"macro_precision"`
	MacroRecall    float64             `json:"macro_recall"`
	History        *[]AdapterResultDTO `json:"history,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Indexed int    `json:"indexed"`
}

// HistoryResponse is the body of GET /benchmarks/history.
type HistoryResponse struct {
	Results []AdapterResultDTO `json:"results"`
}

// --- Converters ---

func bundleFromDTO(dto BundleDTO) (knowledge.Bundle, error) {
	slices := make([]knowledge.Slice, 0, len(dto.Slices))
	for i, s := range dto.Slices {
		sl, err := knowledge.NewSlice(
			s.ID, s.Summary, s.Highlights,
			knowledge.Modality(s.Modality), s.SourceRefs, s.Tags,
		)
		if err != nil {
			return knowledge.Bundle{}, fmt.Errorf("slice %d: %w", i, err)
		}
		slices = append(slices, sl)
	}
	b := knowledge.NewBundle(slices)
	b.TraceID = dto.TraceID
	return b, nil
}

func caseFromDTO(dto CaseDTO) (dombench.Case, error) {
	bundle, err := bundleFromDTO(dto.Bundle)
	if err != nil {
		return dombench.Case{}, fmt.Errorf("case %s: %w", dto.ID, err)
	}
	return dombench.NewCase(dto.ID, bundle, dto.Query, dto.RelevantIDs, dto.TopK)
}

func casesFromDTO(dtos []CaseDTO) ([]dombench.Case, error) {
	cases := make([]dombench.Case, 0, len(dtos))
	for _, dto := range dtos {
		c, err := caseFromDTO(dto)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func hitToDTO(h domret.Hit) HitDTO {
	return HitDTO{
		ID:       h.ID,
		Score:    h.Score,
		Summary:  h.Summary,
		Tags:     emptyIfNil(h.Tags),
		Modality: string(h.Modality),
		Sources:  emptyIfNil(h.Sources),
	}
}

func hitsToDTO(hits []domret.Hit) []HitDTO {
	out := make([]HitDTO, 0, len(hits))
	for _, h := range hits {
		out = append(out, hitToDTO(h))
	}
	return out
}

func suiteToDTO(s dombench.Suite) SuiteDTO {
	results := make([]ResultDTO, 0, len(s.Results))
	for _, r := range s.Results {
		results = append(results, ResultDTO{
			CaseID:        r.CaseID,
			Hits:          hitsToDTO(r.Hits),
			PrecisionAtK:  r.PrecisionAtK,
			RecallAtK:     r.RecallAtK,
			RelevantFound: emptyIfNil(r.RelevantFound),
		})
	}
	return SuiteDTO{
		Results:        results,
		MacroPrecision: s.MacroPrecision,
		MacroRecall:    s.MacroRecall,
	}
}

func adapterResultToDTO(r dombench.AdapterResult) AdapterResultDTO {
	return AdapterResultDTO{
		Adapter:    r.Adapter,
		Suite:      suiteToDTO(r.Suite),
		DurationMS: r.DurationMS,
	}
}

func summaryToDTO(s dombench.Summary) SummaryDTO {
	runs := make([]AdapterResultDTO, 0, len(s.Runs))
	for _, r := range s.Runs {
		runs = append(runs, adapterResultToDTO(r))
	}
	dto := SummaryDTO{
		Runs:           runs,
		MacroPrecision: s.MacroPrecision,
		MacroRecall:    s.MacroRecall,
	}
	if s.History != nil {
		history := make([]AdapterResultDTO, 0, len(s.History))
		for _, r := range s.History {
			history = append(history, adapterResultToDTO(r))
		}
		dto.History = &history
	}
	return dto
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
