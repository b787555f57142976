package explorer

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeFetcher struct {
	mu          sync.Mutex
	treeCalls   int
	folderCalls int
	fileCalls   int

	trees   map[string][]Node
	folders map[string][]Node
	files   map[string][]byte

	folderErr  error
	onRepoTree func(repoURL string)
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		trees:   map[string][]Node{},
		folders: map[string][]Node{},
		files:   map[string][]byte{},
	}
}

func (f *fakeFetcher) RepoTree(_ context.Context, repoURL string) ([]Node, error) {
	f.mu.Lock()
	f.treeCalls++
	hook := f.onRepoTree
	f.mu.Unlock()
	if hook != nil {
		hook(repoURL)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trees[repoURL], nil
}

func (f *fakeFetcher) FolderContents(_ context.Context, apiURL string) ([]Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folderCalls++
	if f.folderErr != nil {
		return nil, f.folderErr
	}
	return f.folders[apiURL], nil
}

func (f *fakeFetcher) FileContents(_ context.Context, downloadURL string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fileCalls++
	b, ok := f.files[downloadURL]
	if !ok {
		return nil, errors.New("no such file")
	}
	return b, nil
}

func TestToggleFetchesOnceAndCaches(t *testing.T) {
	f := newFakeFetcher()
	dir := Node{Name: "src", Path: "src", Type: NodeDir, URL: "api/src"}
	f.folders["api/src"] = []Node{
		{Name: "main.go", Path: "src/main.go", Type: NodeFile},
	}

	s := NewSession(f)
	ctx := context.Background()

	open, err := s.Toggle(ctx, dir)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !open {
		t.Fatal("expected directory to open")
	}
	if children, ok := s.Children("src"); !ok || len(children) != 1 {
		t.Fatalf("expected cached children, got ok=%v len=%d", ok, len(children))
	}

	// Collapse, then reopen: visibility flip only, no second fetch.
	if open, _ = s.Toggle(ctx, dir); open {
		t.Fatal("expected directory to close")
	}
	if open, _ = s.Toggle(ctx, dir); !open {
		t.Fatal("expected directory to reopen")
	}

	if f.folderCalls != 1 {
		t.Fatalf("expected exactly 1 folder fetch, got %d", f.folderCalls)
	}
}

func TestToggleFailureLeavesNodeCollapsed(t *testing.T) {
	f := newFakeFetcher()
	dir := Node{Name: "src", Path: "src", Type: NodeDir, URL: "api/src"}
	f.folders["api/src"] = []Node{{Name: "a.go", Path: "src/a.go", Type: NodeFile}}
	f.folderErr = errors.New("upstream down")

	s := NewSession(f)
	ctx := context.Background()

	if _, err := s.Toggle(ctx, dir); err == nil {
		t.Fatal("expected toggle to fail")
	}
	if s.IsOpen("src") {
		t.Fatal("failed expand must leave the node collapsed")
	}
	if _, ok := s.Children("src"); ok {
		t.Fatal("failed expand must not cache children")
	}

	// Next attempt retries the fetch.
	f.mu.Lock()
	f.folderErr = nil
	f.mu.Unlock()
	open, err := s.Toggle(ctx, dir)
	if err != nil || !open {
		t.Fatalf("retry toggle: open=%v err=%v", open, err)
	}
	if f.folderCalls != 2 {
		t.Fatalf("expected 2 folder fetches, got %d", f.folderCalls)
	}
}

func TestSelectRoutesByExtension(t *testing.T) {
	f := newFakeFetcher()
	f.files["dl/main.go"] = []byte("package main")
	f.files["dl/notes.zig"] = []byte("const x = 1;")

	s := NewSession(f)
	ctx := context.Background()

	img, err := s.Select(ctx, Node{Name: "shot.png", Path: "shot.png", Type: NodeFile, DownloadURL: "dl/shot.png"})
	if err != nil {
		t.Fatalf("select image: %v", err)
	}
	if img.Mode != ViewImage || img.ImageURL != "dl/shot.png" {
		t.Fatalf("expected image view, got %+v", img)
	}
	if f.fileCalls != 0 {
		t.Fatalf("image selection must not fetch content, got %d calls", f.fileCalls)
	}

	code, err := s.Select(ctx, Node{Name: "main.go", Path: "main.go", Type: NodeFile, DownloadURL: "dl/main.go"})
	if err != nil {
		t.Fatalf("select code: %v", err)
	}
	if code.Mode != ViewText || code.Language != "go" || code.Content != "package main" {
		t.Fatalf("unexpected code view: %+v", code)
	}

	plain, err := s.Select(ctx, Node{Name: "notes.zig", Path: "notes.zig", Type: NodeFile, DownloadURL: "dl/notes.zig"})
	if err != nil {
		t.Fatalf("select unknown extension: %v", err)
	}
	if plain.Language != "plaintext" {
		t.Fatalf("unknown extension must default to plaintext, got %q", plain.Language)
	}

	if _, err := s.Select(ctx, Node{Name: "src", Path: "src", Type: NodeDir}); err == nil {
		t.Fatal("selecting a directory must fail")
	}
}

func TestSetRepoResetsCachedState(t *testing.T) {
	f := newFakeFetcher()
	f.trees["repoA"] = []Node{{Name: "a.go", Path: "a.go", Type: NodeFile}}
	f.trees["repoB"] = []Node{{Name: "b.go", Path: "b.go", Type: NodeFile}}
	dir := Node{Name: "src", Path: "src", Type: NodeDir, URL: "api/src"}
	f.folders["api/src"] = []Node{{Name: "x.go", Path: "src/x.go", Type: NodeFile}}

	s := NewSession(f)
	ctx := context.Background()

	if err := s.SetRepo(ctx, "repoA"); err != nil {
		t.Fatalf("set repoA: %v", err)
	}
	if _, err := s.Toggle(ctx, dir); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := s.SetRepo(ctx, "repoB"); err != nil {
		t.Fatalf("set repoB: %v", err)
	}
	if _, ok := s.Children("src"); ok {
		t.Fatal("changing repository must discard cached listings")
	}
	if s.IsOpen("src") {
		t.Fatal("changing repository must collapse everything")
	}
	if root := s.Root(); len(root) != 1 || root[0].Name != "b.go" {
		t.Fatalf("unexpected root after switch: %+v", root)
	}
}

func TestSetRepoDiscardsStaleRootLoad(t *testing.T) {
	f := newFakeFetcher()
	f.trees["repoA"] = []Node{{Name: "a.go", Path: "a.go", Type: NodeFile}}
	f.trees["repoB"] = []Node{{Name: "b.go", Path: "b.go", Type: NodeFile}}

	var s *Session
	var once sync.Once
	f.onRepoTree = func(repoURL string) {
		if repoURL == "repoA" {
			// Simulate the user switching repositories while the first
			// root listing is still in flight.
			once.Do(func() {
				if err := s.SetRepo(context.Background(), "repoB"); err != nil {
					t.Errorf("nested set repo: %v", err)
				}
			})
		}
	}
	s = NewSession(f)

	if err := s.SetRepo(context.Background(), "repoA"); err != nil {
		t.Fatalf("set repoA: %v", err)
	}

	root := s.Root()
	if len(root) != 1 || root[0].Name != "b.go" {
		t.Fatalf("stale root listing must be dropped, got %+v", root)
	}
	if s.RepoURL() != "repoB" {
		t.Fatalf("expected repoB active, got %q", s.RepoURL())
	}
}

func TestLanguageTable(t *testing.T) {
	cases := map[string]string{
		"app.jsx":     "javascript",
		"index.ts":    "typescript",
		"styles.css":  "css",
		"readme":      "plaintext",
		"Makefile":    "plaintext",
		"data.JSON":   "json",
		"service.py":  "python",
		"Server.java": "java",
	}
	for name, want := range cases {
		if got := LanguageFor(name); got != want {
			t.Errorf("LanguageFor(%q) = %q, want %q", name, got, want)
		}
	}
	if !IsImage("photo.JPEG") {
		t.Error("IsImage should be case-insensitive")
	}
	if IsImage("archive.tar") {
		t.Error("archive.tar is not an image")
	}
}
