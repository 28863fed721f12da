package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/playback"
	"github.com/aretw0/automata/pkg/session"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain() domain.Graph {
	return domain.Graph{
		Nodes: []domain.Node{
			{ID: "S0", IsInitial: true},
			{ID: "S1"},
			{ID: "S2", IsFinal: true},
			{ID: "S3"},
		},
		Edges: []domain.Edge{
			{ID: "eS0-S1", Source: "S0", Target: "S1", Label: "a"},
			{ID: "eS1-S2", Source: "S1", Target: "S2", Label: "b"},
		},
	}
}

func newTestServer(t *testing.T) (*Server, http.Handler, *observability.Metrics) {
	t.Helper()
	m := observability.NewMetrics()
	srv := NewServer(session.NewManager(memory.NewStore()), WithMetrics(m))
	return srv, srv.Routes(), m
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) playback.View {
	t.Helper()
	var v playback.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestServer_HealthAndInfo(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/info", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"app":"automata-http"`)

	rec = do(t, h, http.MethodOptions, "/steps", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Algorithms(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/algorithms", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var algs []domain.AlgorithmInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &algs))
	require.Len(t, algs, 2)
	assert.Equal(t, domain.AlgorithmAccessible, algs[0].Name)
	assert.Equal(t, "Q", algs[1].ResultName)
	assert.Len(t, algs[1].Code, 9)
}

func TestServer_PostSteps(t *testing.T) {
	_, h, m := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/steps", StepsRequest{Algorithm: "co-accessible", Graph: chain()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp StepsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.AlgorithmCoAccessible, resp.Algorithm)
	assert.ElementsMatch(t, []string{"S0", "S1", "S2"}, resp.Result)
	assert.Equal(t, 1, resp.Steps[0].Line)
	assert.Equal(t, 9, resp.Steps[len(resp.Steps)-1].Line)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("co-accessible")))

	rec = do(t, h, http.MethodPost, "/steps", StepsRequest{Algorithm: "dijkstra", Graph: chain()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/steps", StepsRequest{Graph: chain(), Frontier: "random"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/steps", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_PostExport(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/export", ExportRequest{Graph: chain()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"alphabet": ["a", "b"],
		"states": ["S0", "S1", "S2", "S3"],
		"initialState": "S0",
		"finalStates": ["S2"],
		"transitions": [
			{"from": "S0", "symbol": "a", "to": "S1"},
			{"from": "S1", "symbol": "b", "to": "S2"}
		]
	}`, rec.Body.String())
}

func TestServer_PostExportReduced(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/export", ExportRequest{Graph: chain(), Reduce: "trim"})
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		States []string `json:"states"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, []string{"S0", "S1", "S2"}, out.States)

	rec = do(t, h, http.MethodPost, "/export", ExportRequest{Graph: chain(), Reduce: "minimize"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_PostValidate(t *testing.T) {
	_, h, _ := newTestServer(t)

	g := chain()
	g.Edges = append(g.Edges, domain.Edge{ID: "eS2-S9", Source: "S2", Target: "S9", Label: "a"})
	rec := do(t, h, http.MethodPost, "/validate", ValidateRequest{Graph: g})
	require.Equal(t, http.StatusOK, rec.Code)

	var report validator.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Problems)
}

func TestServer_SessionLifecycle(t *testing.T) {
	_, h, m := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/sessions", CreateSessionRequest{Graph: chain()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeView(t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.Cursor)
	assert.Equal(t, 1, created.Line)
	assert.False(t, created.CanPrune)
	base := "/sessions/" + created.ID

	rec = do(t, h, http.MethodGet, "/sessions", nil)
	assert.Contains(t, rec.Body.String(), created.ID)

	rec = do(t, h, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeView(t, rec).Cursor)
	assert.Equal(t, 1, decodeView(t, do(t, h, http.MethodGet, base, nil)).Cursor, "cursor is persisted")

	rec = do(t, h, http.MethodPost, base+"/prune", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = do(t, h, http.MethodPost, base+"/restore", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/seek", SeekRequest{Cursor: 1000})
	require.Equal(t, http.StatusOK, rec.Code)
	end := decodeView(t, rec)
	assert.True(t, end.Finished)
	assert.True(t, end.CanPrune)
	assert.Equal(t, end.Total-1, end.Cursor)

	rec = do(t, h, http.MethodPost, base+"/prune", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pruned := decodeView(t, rec)
	assert.True(t, pruned.CanRestore)
	assert.Len(t, pruned.Graph.Nodes, 3, "S3 is not accessible")
	assert.Equal(t, 0, pruned.Cursor)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Prunes.WithLabelValues("accessible")))

	rec = do(t, h, http.MethodPost, base+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeView(t, rec).Graph.Nodes, 4)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restores))

	rec = do(t, h, http.MethodPut, base+"/algorithm", AlgorithmRequest{Algorithm: "coaccessible"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Q", decodeView(t, rec).ResultName)

	rec = do(t, h, http.MethodPut, base+"/algorithm", AlgorithmRequest{Algorithm: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	small := domain.Graph{Nodes: []domain.Node{{ID: "A", IsInitial: true, IsFinal: true}}}
	rec = do(t, h, http.MethodPut, base+"/graph", GraphRequest{Graph: small})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, small.Nodes, decodeView(t, rec).Graph.Nodes)

	rec = do(t, h, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeView(t, rec).Cursor)

	rec = do(t, h, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Mermaid(t *testing.T) {
	_, h, _ := newTestServer(t)
	created := decodeView(t, do(t, h, http.MethodPost, "/sessions", CreateSessionRequest{Graph: chain()}))

	rec := do(t, h, http.MethodGet, "/sessions/"+created.ID+"/mermaid", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "flowchart LR"))
	assert.Contains(t, body, "class S0 current;")
}

func TestServer_Metrics(t *testing.T) {
	_, h, _ := newTestServer(t)
	do(t, h, http.MethodGet, "/health", nil)

	rec := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/health"`)
}

func TestServer_Events(t *testing.T) {
	srv, h, _ := newTestServer(t)
	created := decodeView(t, do(t, h, http.MethodPost, "/sessions", CreateSessionRequest{Graph: chain()}))
	base := "/sessions/" + created.ID

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(sub, httptest.NewRequest(http.MethodGet, base+"/events", nil).WithContext(ctx))
	}()

	require.Eventually(t, func() bool {
		return srv.Streams.Subscribers(created.ID) == 1
	}, time.Second, 10*time.Millisecond)

	rec := do(t, h, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Eventually(t, func() bool {
		return pendingDrained(srv, created.ID)
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	out := sub.Body.String()
	assert.Equal(t, 2, strings.Count(out, "event: view"), out)
	assert.Contains(t, out, `"cursor":1`)
	assert.Equal(t, 0, srv.Streams.Subscribers(created.ID))
}

// pendingDrained reports whether every subscriber channel of id is empty.
func pendingDrained(srv *Server, id string) bool {
	srv.Streams.mu.RLock()
	defer srv.Streams.mu.RUnlock()
	for ch := range srv.Streams.subscribers[id] {
		if len(ch) > 0 {
			return false
		}
	}
	return true
}

func TestStreamManager_Close(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s")
	sm.Publish("s", map[string]int{"cursor": 2})

	assert.JSONEq(t, `{"cursor":2}`, <-ch)
	sm.Close("s")
	_, open := <-ch
	assert.False(t, open)
	cancel()
	assert.Equal(t, 0, sm.Subscribers("s"))
}
