package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/isocheck/pkg/buildinfo"
	"github.com/matzehuels/isocheck/pkg/errors"
	"github.com/matzehuels/isocheck/pkg/graph"
	isoio "github.com/matzehuels/isocheck/pkg/io"
	"github.com/matzehuels/isocheck/pkg/iso"
	"github.com/matzehuels/isocheck/pkg/pipeline"
)

// statusClientClosed is the non-standard status for requests whose client
// went away before the check finished.
const statusClientClosed = 499

type checkRequest struct {
	Graph1    json.RawMessage `json:"graph1"`
	Graph2    json.RawMessage `json:"graph2"`
	Algorithm string          `json:"algorithm"`
	Witness   bool            `json:"witness"`
}

type checkResponse struct {
	ID          string                        `json:"id"`
	Algorithm   string                        `json:"algorithm"`
	Matched     bool                          `json:"matched"`
	Heuristic   bool                          `json:"heuristic"`
	Prefiltered bool                          `json:"prefiltered"`
	ElapsedMS   float64                       `json:"elapsed_ms"`
	Witness     map[graph.NodeID]graph.NodeID `json:"witness,omitempty"`
}

type canonRequest struct {
	Graph json.RawMessage `json:"graph"`
}

type canonResponse struct {
	Hash   string         `json:"hash"`
	Order  []graph.NodeID `json:"order"`
	Cached bool           `json:"cached"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, iso.Algorithms())
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	g1, err := parseGraph("graph1", req.Graph1)
	if err != nil {
		s.writeError(w, err)
		return
	}
	g2, err := parseGraph("graph2", req.Graph2)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Graph1:    g1,
		Graph2:    g2,
		Algorithm: req.Algorithm,
		Timeout:   s.timeout,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := checkResponse{
		ID:          res.ID,
		Algorithm:   res.Algorithm,
		Matched:     res.Matched,
		Heuristic:   res.Heuristic,
		Prefiltered: res.Prefiltered,
		ElapsedMS:   float64(res.Elapsed.Microseconds()) / 1000,
	}
	if req.Witness {
		resp.Witness = res.Witness
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCanon(w http.ResponseWriter, r *http.Request) {
	var req canonRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	g, err := parseGraph("graph", req.Graph)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	c, cached, err := s.runner.Canonical(ctx, g, false)
	if err != nil {
		s.writeError(w, errors.FromContext(err, "canonicalize"))
		return
	}
	writeJSON(w, http.StatusOK, canonResponse{Hash: c.Certificate.Hash(), Order: c.Order, Cached: cached})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.ErrCodeTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func parseGraph(field string, raw json.RawMessage) (*graph.Graph, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is required", field)
	}
	g, err := isoio.Unmarshal(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "%s: %s", field, errors.UserMessage(err))
	}
	return g, nil
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeMalformedGraph, errors.ErrCodeInvalidInput, errors.ErrCodeUnknownAlgorithm:
		return http.StatusBadRequest
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeCanceled:
		return statusClientClosed
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
