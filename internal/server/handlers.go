package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edp1096/toy-numeric/pkg/analysis"
	"github.com/edp1096/toy-numeric/pkg/deck"
	"github.com/edp1096/toy-numeric/pkg/numerr"
	"github.com/edp1096/toy-numeric/pkg/rootfind"
)

type RootRequest struct {
	Equation string   `json:"equation"`
	Decimals *int     `json:"decimals,omitempty"`
	X0       *float64 `json:"x0,omitempty"`
	X1       *float64 `json:"x1,omitempty"`
}

type LinearRequest struct {
	// Matrix holds the rows of the augmented matrix [A|b].
	Matrix    [][]float64 `json:"matrix"`
	Method    string      `json:"method,omitempty"`
	Tolerance *float64    `json:"tolerance,omitempty"`
	MaxIter   *int        `json:"max_iter,omitempty"`
}

type solveResponse struct {
	*analysis.Report
	Warning string `json:"warning,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleRoot handles POST /v1/roots/{method}.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	method, err := rootfind.ParseMethod(chi.URLParam(r, "method"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req RootRequest
	if !decode(w, r, &req) {
		return
	}

	p := &deck.Problem{Method: string(method), Equation: req.Equation, Decimals: req.Decimals}
	if method == rootfind.MethodSecant {
		if req.X0 == nil || req.X1 == nil {
			writeError(w, numerr.New(numerr.ConfigurationError, "server", "secant needs x0 and x1"))
			return
		}
		p.Seeds = []float64{*req.X0, *req.X1}
	}
	s.solve(w, r, p)
}

// HandleLinear handles POST /v1/linear.
func (s *Server) HandleLinear(w http.ResponseWriter, r *http.Request) {
	var req LinearRequest
	if !decode(w, r, &req) {
		return
	}

	p := &deck.Problem{Method: req.Method, Rows: req.Matrix, Tolerance: req.Tolerance, MaxIter: req.MaxIter}
	if p.Method == "" {
		p.Method = "linear"
	}
	if p.Kind() != deck.KindLinear {
		writeError(w, numerr.New(numerr.ConfigurationError, "server", "unknown linear method %q", req.Method))
		return
	}
	s.solve(w, r, p)
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request, p *deck.Problem) {
	ctx := r.Context()
	logger := s.logger.With("request_id", middleware.GetReqID(ctx))

	rep, err := analysis.Run(ctx, p, analysis.WithLogger(logger), analysis.WithSettings(s.settings))
	s.observe(p.Method, rep, err)

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, solveResponse{Report: rep})
	case rep != nil && numerr.Is(err, numerr.DidNotConverge):
		writeJSON(w, http.StatusOK, solveResponse{Report: rep, Warning: err.Error()})
	default:
		writeError(w, err)
	}
}

func (s *Server) observe(method string, rep *analysis.Report, err error) {
	if rep == nil {
		s.metrics.ObserveSolve(method, outcome(err), 0, 0)
		return
	}
	if rep.Root != nil || rep.Linear == nil {
		n := 0
		if rep.Root != nil {
			n = len(rep.Root.Iterations)
		}
		s.metrics.ObserveSolve(rep.Method, outcome(err), n, rep.Duration)
		return
	}
	for _, out := range []*analysis.MethodOutcome{rep.Linear.Jacobi, rep.Linear.GaussSeidel} {
		if out == nil || out.Result == nil {
			continue
		}
		s.metrics.ObserveSolve(string(out.Result.Method), outcome(out.Err), len(out.Result.Iterations), rep.Duration)
	}
}

func outcome(err error) string {
	if err == nil {
		return "converged"
	}
	if kind := numerr.KindOf(err); kind != "" {
		return string(kind)
	}
	return "internal"
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return false
	}
	return true
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch numerr.KindOf(err) {
	case numerr.InvalidExpression, numerr.ConfigurationError:
		return http.StatusBadRequest
	case numerr.BracketNotFound, numerr.DegenerateStep, numerr.EvaluationError, numerr.DidNotConverge:
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: string(numerr.KindOf(err)), Message: err.Error()}
	if status == http.StatusInternalServerError {
		resp = errorResponse{Error: "internal_error", Message: "internal error"}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
