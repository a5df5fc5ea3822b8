package server

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MonaAghili/public-notes/internal/index"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha.md"),
		[]byte("---\ntitle: Alpha\ndescription: First note\n---\n\n# Alpha\n\nAlpha body text."), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "guides"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "guides", "setup.md"),
		[]byte("# Setup\n\nHow to set things up."), 0o644))

	ix := index.New(root)
	require.NoError(t, ix.Reload(t.Context()))

	s := New(":0", ix)
	s.started = time.Now()
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHandleTree_ListsFoldersBeforeFiles(t *testing.T) {
	_, ts := newTestServer(t)

	var tree []map[string]any
	status := getJSON(t, ts.URL+"/api/tree", &tree)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, tree, 2)
	require.Equal(t, "folder", tree[0]["kind"])
	require.Equal(t, "guides", tree[0]["name"])
	require.Equal(t, "file", tree[1]["kind"])
	require.Equal(t, "alpha", tree[1]["path"])
}

func TestHandlePage_KnownSlug_ReturnsRecord(t *testing.T) {
	_, ts := newTestServer(t)

	var page map[string]any
	status := getJSON(t, ts.URL+"/api/pages/guides/setup", &page)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "guides/setup", page["slug"])
	require.Equal(t, "setup", page["title"])
	require.Contains(t, page["html"], "<h1")
}

func TestHandlePage_UnknownSlug_Returns404(t *testing.T) {
	_, ts := newTestServer(t)

	var body map[string]any
	status := getJSON(t, ts.URL+"/api/pages/missing", &body)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "not_found", body["category"])
}

func TestHandlePage_MalformedSlug_Returns400(t *testing.T) {
	_, ts := newTestServer(t)

	var body map[string]any
	status := getJSON(t, ts.URL+"/api/pages/..%2Fsecret", &body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "validation", body["category"])
}

func TestHandleSearch_MatchesBodyText(t *testing.T) {
	_, ts := newTestServer(t)

	var body struct {
		Count   int `json:"count"`
		Results []struct {
			Slug        string `json:"slug"`
			Description string `json:"description"`
		} `json:"results"`
	}
	status := getJSON(t, ts.URL+"/api/search?q=alpha+body", &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, body.Count)
	require.Equal(t, "alpha", body.Results[0].Slug)
	require.Equal(t, "First note", body.Results[0].Description)
}

func TestHandleSearch_EmptyQuery_ReturnsNoResults(t *testing.T) {
	_, ts := newTestServer(t)

	var body struct {
		Count   int   `json:"count"`
		Results []any `json:"results"`
	}
	status := getJSON(t, ts.URL+"/api/search", &body)
	require.Equal(t, http.StatusOK, status)
	require.Zero(t, body.Count)
	require.Empty(t, body.Results)
}

func TestHandleSearch_OversizedQuery_Returns413(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/search?q=" + strings.Repeat("a", 600))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestHandleReload_RepopulatesIndex(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/reload", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	require.EqualValues(t, 2, body["documents"])
}

func TestHandleStatus_ReportsDocumentCount(t *testing.T) {
	_, ts := newTestServer(t)

	var body statusResponse
	status := getJSON(t, ts.URL+"/api/status", &body)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body.Status)
	require.Equal(t, 2, body.Documents)
	require.NotNil(t, body.LastSync)
}

func TestHub_Broadcast_ReachesConnectedClient(t *testing.T) {
	s, _ := newTestServer(t)

	srv := httptest.NewServer(http.HandlerFunc(s.Hub().ServeHTTP))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, ": connected"))

	s.Hub().Broadcast(7)

	deadline := time.After(5 * time.Second)
	for {
		lineCh := make(chan string, 1)
		go func() {
			if l, rerr := reader.ReadString('\n'); rerr == nil {
				lineCh <- l
			}
		}()
		select {
		case l := <-lineCh:
			if strings.HasPrefix(l, "data:") {
				require.Contains(t, l, `"revision":7`)
				return
			}
		case <-deadline:
			t.Fatal("no revision event received")
		}
	}
}

func TestHub_Close_RejectsNewClients(t *testing.T) {
	hub := NewHub()
	hub.Close()

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	hub.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
