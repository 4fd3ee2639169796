package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SecondBook5/MatrixMultiplication/internal/algorithms"
	"github.com/SecondBook5/MatrixMultiplication/internal/compare"
	"github.com/SecondBook5/MatrixMultiplication/internal/config"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrix"
	"github.com/SecondBook5/MatrixMultiplication/internal/matrixio"
)

// CompareRequest is the JSON body of POST /api/v1/compare. Exactly one input
// form must be supplied: inline matrix pairs, or a size list for seeded
// random generation.
type CompareRequest struct {
	// Pairs are inline matrix pairs, each with square same-size A and B.
	Pairs []InlinePair `json:"pairs,omitempty"`
	// Sizes requests seeded random pairs of the given power-of-two sizes.
	Sizes []int `json:"sizes,omitempty"`
	// Seed seeds the random generator (default 42).
	Seed *int64 `json:"seed,omitempty"`
	// Algo names the divide-and-conquer engine (default "strassen").
	Algo string `json:"algo,omitempty"`
	// Parallel enables fork/join execution.
	Parallel bool `json:"parallel,omitempty"`
	// ZeroSkip enables the zero-matrix short circuit.
	ZeroSkip bool `json:"zeroSkip,omitempty"`
}

// InlinePair is one (A, B) pair given as row slices.
type InlinePair struct {
	A [][]float64 `json:"a"`
	B [][]float64 `json:"b"`
}

// PairReport is the JSON form of one compared pair.
type PairReport struct {
	compare.PerformanceRecord
	// Match reports whether the two products agreed.
	Match bool `json:"match"`
}

// CompareResponse is the JSON body of a successful comparison.
type CompareResponse struct {
	// Engine is the display name of the divide-and-conquer engine used.
	Engine string `json:"engine"`
	// Pairs holds one report per processed pair, in input order.
	Pairs []PairReport `json:"pairs"`
	// AllMatch is true when every pair's products agreed.
	AllMatch bool `json:"allMatch"`
	// Duration is the total wall-clock time of the run.
	Duration string `json:"duration"`
}

// ErrorResponse is the standardized JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handleHealth responds to liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleCompare runs the benchmark described by the request body and
// returns the per-pair records and agreement verdicts.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req CompareRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestSize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pairs, engineName, status, msg := s.resolveInput(req)
	if msg != "" {
		s.writeErrorResponse(w, status, msg)
		return
	}

	driver, err := compare.NewDriver(engineName, algorithms.Options{
		Parallel: req.Parallel,
		ZeroSkip: req.ZeroSkip,
	})
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Unknown algorithm: "+engineName)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	results, err := driver.Run(ctx, pairs)
	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			s.writeErrorResponse(w, http.StatusRequestTimeout, "Comparison timed out")
			return
		}
		s.writeErrorResponse(w, http.StatusUnprocessableEntity, "Comparison failed: "+err.Error())
		return
	}
	s.metrics.ObserveComparison(duration, len(results))

	reports := make([]PairReport, len(results))
	for i, res := range results {
		reports[i] = PairReport{PerformanceRecord: res.Record, Match: res.Match}
	}
	s.writeJSONResponse(w, http.StatusOK, CompareResponse{
		Engine:   driver.EngineName(),
		Pairs:    reports,
		AllMatch: compare.AllMatch(results),
		Duration: duration.String(),
	})
}

// resolveInput turns the request into validated matrix pairs and an engine
// name. On failure it returns a non-empty message and the HTTP status to
// send.
func (s *Server) resolveInput(req CompareRequest) (pairs []matrix.Pair, engineName string, status int, msg string) {
	engineName = req.Algo
	if engineName == "" {
		engineName = s.cfg.Algo
	}
	if engineName == "" {
		engineName = config.DefaultAlgo
	}

	switch {
	case len(req.Pairs) > 0 && len(req.Sizes) > 0:
		return nil, "", http.StatusBadRequest, "Supply either 'pairs' or 'sizes', not both"
	case len(req.Pairs) > 0:
		pairs = make([]matrix.Pair, 0, len(req.Pairs))
		for i, ip := range req.Pairs {
			a, err := matrix.FromRows(ip.A)
			if err != nil {
				return nil, "", http.StatusBadRequest, pairError(i, "a", err)
			}
			b, err := matrix.FromRows(ip.B)
			if err != nil {
				return nil, "", http.StatusBadRequest, pairError(i, "b", err)
			}
			if a.Size() != b.Size() {
				return nil, "", http.StatusBadRequest, pairError(i, "", errors.New("operand sizes differ"))
			}
			if a.Size() > MaxBenchmarkSize {
				return nil, "", http.StatusBadRequest, pairError(i, "", errors.New("matrix too large for a synchronous request"))
			}
			pairs = append(pairs, matrix.Pair{A: a, B: b})
		}
		return pairs, engineName, 0, ""
	case len(req.Sizes) > 0:
		for _, n := range req.Sizes {
			if n <= 0 || !matrix.IsPowerOfTwo(n) {
				return nil, "", http.StatusBadRequest, "Sizes must be positive powers of two"
			}
			if n > MaxBenchmarkSize {
				return nil, "", http.StatusBadRequest, "Requested size exceeds the server limit"
			}
		}
		seed := config.DefaultSeed
		if req.Seed != nil {
			seed = *req.Seed
		}
		pairs, err := matrixio.RandomPairs(req.Sizes, seed)
		if err != nil {
			return nil, "", http.StatusBadRequest, "Failed to generate pairs: "+err.Error()
		}
		return pairs, engineName, 0, ""
	default:
		return nil, "", http.StatusBadRequest, "Either 'pairs' or 'sizes' is required"
	}
}

func pairError(index int, operand string, err error) string {
	if operand == "" {
		return fmt.Sprintf("Invalid pair %d: %v", index+1, err)
	}
	return fmt.Sprintf("Invalid matrix %q in pair %d: %v", operand, index+1, err)
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("error encoding JSON response")
	}
}

// writeErrorResponse writes a standardized error body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
