package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
)

func newGitHubRouter(t *testing.T, upstream *httptest.Server) *gin.Engine {
	t.Helper()
	u, err := url.Parse(upstream.URL)
	if err != nil {
		t.Fatalf("parse upstream url: %v", err)
	}
	g := &GitHubController{
		token:   "test-token",
		apiBase: upstream.URL,
		apiHost: u.Host,
		client:  upstream.Client(),
	}
	r := gin.New()
	r.GET("/repo-tree", g.RepoTree)
	r.GET("/repo-folder", g.RepoFolder)
	return r
}

func newUpstream(t *testing.T, calls *int64, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		handler(w, r)
	}))
}

func TestRepoTreeProxiesContents(t *testing.T) {
	var calls int64
	upstream := newUpstream(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/ada/navbar/contents/" {
			t.Errorf("unexpected upstream path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"main.go","path":"main.go","type":"file"}]`))
	})
	defer upstream.Close()

	r := newGitHubRouter(t, upstream)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/repo-tree?url="+url.QueryEscape("https://github.com/ada/navbar"), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var body struct {
		Tree []struct {
			Name string `json:"name"`
		} `json:"tree"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Tree) != 1 || body.Tree[0].Name != "main.go" {
		t.Fatalf("unexpected tree: %+v", body.Tree)
	}
	if atomic.LoadInt64(&calls) != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}
}

func TestRepoTreeRejectsBadURLsWithoutUpstreamCall(t *testing.T) {
	var calls int64
	upstream := newUpstream(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	defer upstream.Close()

	r := newGitHubRouter(t, upstream)

	for _, target := range []string{
		"/repo-tree",
		"/repo-tree?url=" + url.QueryEscape("https://example.com/ada/navbar"),
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, w.Code)
		}
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatalf("rejected requests must not reach upstream, got %d calls", calls)
	}
}

func TestRepoTreeUpstreamFailure(t *testing.T) {
	var calls int64
	upstream := newUpstream(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer upstream.Close()

	r := newGitHubRouter(t, upstream)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/repo-tree?url="+url.QueryEscape("https://github.com/ada/navbar"), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on upstream failure, got %d", w.Code)
	}
}

func TestRepoFolderProxiesListing(t *testing.T) {
	var calls int64
	upstream := newUpstream(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/ada/navbar/contents/src" {
			t.Errorf("unexpected upstream path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"app.tsx","path":"src/app.tsx","type":"file"}]`))
	})
	defer upstream.Close()

	r := newGitHubRouter(t, upstream)
	folderURL := upstream.URL + "/repos/ada/navbar/contents/src"
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/repo-folder?url="+url.QueryEscape(folderURL), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var nodes []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &nodes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "app.tsx" {
		t.Fatalf("unexpected listing: %+v", nodes)
	}
}

func TestRepoFolderRejectsForeignHosts(t *testing.T) {
	var calls int64
	upstream := newUpstream(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	defer upstream.Close()

	r := newGitHubRouter(t, upstream)

	for _, target := range []string{
		"/repo-folder",
		"/repo-folder?url=" + url.QueryEscape("https://evil.example/steal"),
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, w.Code)
		}
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Fatalf("rejected requests must not reach upstream, got %d calls", calls)
	}
}
