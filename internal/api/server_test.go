package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isocheck/internal/testgraphs"
	"github.com/matzehuels/isocheck/pkg/cache"
	"github.com/matzehuels/isocheck/pkg/errors"
	"github.com/matzehuels/isocheck/pkg/graph"
	isoio "github.com/matzehuels/isocheck/pkg/io"
	"github.com/matzehuels/isocheck/pkg/observability"
	"github.com/matzehuels/isocheck/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(&bytes.Buffer{})
	runner := pipeline.NewRunner(c, nil, logger)
	srv := httptest.NewServer(New(runner, logger, 5*time.Second).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func rawGraph(t *testing.T, g *graph.Graph) json.RawMessage {
	t.Helper()
	data, err := isoio.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func post(t *testing.T, srv *httptest.Server, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+path, "application/json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return resp, out.Bytes()
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == nil {
		t.Errorf("body = %v, want status and version", body)
	}
}

func TestAlgorithms(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/algorithms")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var infos []struct {
		Name  string `json:"name"`
		Exact bool   `json:"exact"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != 3 || infos[0].Name != "canonical" || !infos[0].Exact {
		t.Errorf("algorithms = %+v", infos)
	}
}

func TestCheck(t *testing.T) {
	srv := newTestServer(t)
	grid := testgraphs.Grid(3, 3)
	shuffled, _ := grid.Shuffled(rand.New(rand.NewPCG(1, 2)), "n")

	tests := []struct {
		name        string
		g1, g2      *graph.Graph
		algorithm   string
		witness     bool
		wantMatch   bool
		wantHeur    bool
		wantWitness bool
	}{
		{"canonical with witness", grid, shuffled, "canonical", true, true, false, true},
		{"canonical without witness", grid, shuffled, "Nauty-Traces", false, true, false, false},
		{"backtracking negative", testgraphs.Path(4), testgraphs.Star(4), "backtracking", true, false, false, false},
		{"color refinement heuristic", testgraphs.Cycle(6), testgraphs.TwoTriangles(), "Weisfeiler-Lehman", true, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, srv, "/v1/check", map[string]any{
				"graph1":    rawGraph(t, tt.g1),
				"graph2":    rawGraph(t, tt.g2),
				"algorithm": tt.algorithm,
				"witness":   tt.witness,
			})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, body)
			}
			var got checkResponse
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatal(err)
			}
			if got.ID == "" {
				t.Error("missing check id")
			}
			if got.Matched != tt.wantMatch || got.Heuristic != tt.wantHeur {
				t.Errorf("got (matched %v, heuristic %v), want (%v, %v)", got.Matched, got.Heuristic, tt.wantMatch, tt.wantHeur)
			}
			if (got.Witness != nil) != tt.wantWitness {
				t.Errorf("witness = %v, want present=%v", got.Witness, tt.wantWitness)
			}
			if tt.wantWitness && !graph.IsIsomorphism(tt.g1, tt.g2, got.Witness) {
				t.Error("witness is not an isomorphism")
			}
		})
	}
}

func TestCheckErrors(t *testing.T) {
	srv := newTestServer(t)
	c4 := rawGraph(t, testgraphs.Cycle(4))

	tests := []struct {
		name   string
		body   any
		status int
		code   errors.Code
	}{
		{"not json", "{", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"missing graph", map[string]any{"graph1": c4}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown algorithm", map[string]any{"graph1": c4, "graph2": c4, "algorithm": "vf2"}, http.StatusBadRequest, errors.ErrCodeUnknownAlgorithm},
		{"self loop", map[string]any{
			"graph1": c4,
			"graph2": json.RawMessage(`{"nodes":[{"id":1}],"edges":[{"source":1,"target":1}]}`),
		}, http.StatusBadRequest, errors.ErrCodeMalformedGraph},
		{"graph without edges key", map[string]any{
			"graph1": json.RawMessage(`{"nodes":[{"id":1}]}`),
			"graph2": c4,
		}, http.StatusBadRequest, errors.ErrCodeMalformedGraph},
		{"dangling edge", map[string]any{
			"graph1": json.RawMessage(`{"nodes":[{"id":"a"}],"edges":[{"source":"a","target":"b"}]}`),
			"graph2": c4,
		}, http.StatusBadRequest, errors.ErrCodeMalformedGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, srv, "/v1/check", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatal(err)
			}
			if e.Code != tt.code || e.Message == "" {
				t.Errorf("error = %+v, want code %s", e, tt.code)
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(&bytes.Buffer{})
	s := New(pipeline.NewRunner(c, nil, logger), logger, time.Second)
	s.maxBody = 64
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	c4 := rawGraph(t, testgraphs.Cycle(4))
	for _, path := range []string{"/v1/check", "/v1/canon"} {
		t.Run(path, func(t *testing.T) {
			resp, body := post(t, srv, path, map[string]any{"graph": c4, "graph1": c4, "graph2": c4})
			if resp.StatusCode != http.StatusRequestEntityTooLarge {
				t.Errorf("status = %d, want 413 (body %s)", resp.StatusCode, body)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatal(err)
			}
			if e.Code != errors.ErrCodeTooLarge {
				t.Errorf("code = %s, want %s", e.Code, errors.ErrCodeTooLarge)
			}
		})
	}
}

func TestCanon(t *testing.T) {
	srv := newTestServer(t)
	g := testgraphs.Petersen()
	h, _ := g.Shuffled(rand.New(rand.NewPCG(3, 4)), "p")

	var first canonResponse
	for i, in := range []*graph.Graph{g, h, g} {
		resp, body := post(t, srv, "/v1/canon", map[string]any{"graph": rawGraph(t, in)})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, body %s", resp.StatusCode, body)
		}
		var got canonResponse
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatal(err)
		}
		if len(got.Order) != in.NodeCount() {
			t.Errorf("len(order) = %d, want %d", len(got.Order), in.NodeCount())
		}
		switch i {
		case 0:
			first = got
			if got.Cached {
				t.Error("first request should not hit the cache")
			}
		case 1:
			if got.Hash != first.Hash {
				t.Error("relabeled graph has a different hash")
			}
		case 2:
			if !got.Cached {
				t.Error("repeated request should hit the cache")
			}
		}
	}
}

func TestCanonTimeout(t *testing.T) {
	logger := log.New(&bytes.Buffer{})
	s := New(pipeline.NewRunner(nil, nil, logger), logger, time.Nanosecond)
	body := `{"graph":` + string(rawGraph(t, testgraphs.Petersen())) + `}`

	req := httptest.NewRequest(http.MethodPost, "/v1/canon", strings.NewReader(body))
	ctx, cancel := context.WithDeadline(req.Context(), time.Now().Add(-time.Second))
	defer cancel()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504 (body %s)", rec.Code, rec.Body)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses map[string]int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses[path] = status
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{statuses: make(map[string]int)}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	logger := log.New(&bytes.Buffer{})
	h := New(pipeline.NewRunner(nil, nil, logger), logger, time.Second).Handler()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader("{")))

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.statuses["/healthz"] != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", hooks.statuses["/healthz"])
	}
	if hooks.statuses["/v1/check"] != http.StatusBadRequest {
		t.Errorf("check status = %d, want 400", hooks.statuses["/v1/check"])
	}
}
