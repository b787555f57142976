// Package explorer implements a repository browsing session over the GitHub
// contents proxies: a lazily expanded directory tree whose folder listings
// are fetched once and cached by path, and file selection that routes to an
// image or syntax-highlighted text view.
package explorer

import (
	"context"
	"fmt"
	"sync"
)

// Node is one entry in a repository listing, as returned by the contents API.
type Node struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"` // "file" or "dir"
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
}

const (
	NodeFile = "file"
	NodeDir  = "dir"
)

// ViewMode says how a selected file should be rendered.
type ViewMode string

const (
	ViewImage ViewMode = "image"
	ViewText  ViewMode = "text"
)

// FileView is the display-ready result of selecting a file node.
type FileView struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Mode     ViewMode `json:"mode"`
	Language string   `json:"language,omitempty"`
	Content  string   `json:"content,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// Fetcher retrieves repository listings and file contents.
type Fetcher interface {
	RepoTree(ctx context.Context, repoURL string) ([]Node, error)
	FolderContents(ctx context.Context, apiURL string) ([]Node, error)
	FileContents(ctx context.Context, downloadURL string) ([]byte, error)
}

// Session holds the explorer state for one repository browsing session.
// Folder listings are cached by path for the session lifetime and never
// refetched; collapsing a directory only hides it. Switching repositories
// resets everything, and a load finishing after the repository changed
// again is dropped rather than committed against the wrong tree.
type Session struct {
	fetcher Fetcher

	mu       sync.Mutex
	gen      uint64
	repoURL  string
	root     []Node
	children map[string][]Node
	open     map[string]bool
}

// NewSession creates an empty session; call SetRepo to load a repository.
func NewSession(f Fetcher) *Session {
	return &Session{
		fetcher:  f,
		children: map[string][]Node{},
		open:     map[string]bool{},
	}
}

// SetRepo points the session at a repository and loads its root listing.
func (s *Session) SetRepo(ctx context.Context, repoURL string) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.repoURL = repoURL
	s.root = nil
	s.children = map[string][]Node{}
	s.open = map[string]bool{}
	s.mu.Unlock()

	nodes, err := s.fetcher.RepoTree(ctx, repoURL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// The repository changed while the root was loading; drop the result.
		return nil
	}
	s.root = nodes
	return nil
}

// RepoURL returns the repository the session currently points at.
func (s *Session) RepoURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repoURL
}

// Root returns the root listing loaded by SetRepo.
func (s *Session) Root() []Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Toggle opens or closes a directory node, returning whether it is now open.
// Children are fetched at most once per path; reopening a collapsed
// directory is a cache hit with no network call. On fetch failure the node
// stays collapsed and nothing is cached.
func (s *Session) Toggle(ctx context.Context, dir Node) (bool, error) {
	if dir.Type != NodeDir {
		return false, fmt.Errorf("not a directory: %s", dir.Path)
	}

	s.mu.Lock()
	if s.open[dir.Path] {
		s.open[dir.Path] = false
		s.mu.Unlock()
		return false, nil
	}
	if _, ok := s.children[dir.Path]; ok {
		s.open[dir.Path] = true
		s.mu.Unlock()
		return true, nil
	}
	gen := s.gen
	s.mu.Unlock()

	nodes, err := s.fetcher.FolderContents(ctx, dir.URL)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// Repository changed mid-flight; the listing belongs to the old tree.
		return false, nil
	}
	s.children[dir.Path] = nodes
	s.open[dir.Path] = true
	return true, nil
}

// Children returns the cached listing for a directory path.
func (s *Session) Children(path string) ([]Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, ok := s.children[path]
	return nodes, ok
}

// IsOpen reports whether a directory path is currently expanded.
func (s *Session) IsOpen(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[path]
}

// Select loads a file node for display. Image extensions route to an image
// view backed by the node's direct download URL; everything else is fetched
// and rendered as read-only text with the language inferred from the
// extension, defaulting to plaintext.
func (s *Session) Select(ctx context.Context, file Node) (FileView, error) {
	if file.Type != NodeFile {
		return FileView{}, fmt.Errorf("not a file: %s", file.Path)
	}

	view := FileView{Name: file.Name, Path: file.Path}
	if IsImage(file.Name) {
		view.Mode = ViewImage
		view.ImageURL = file.DownloadURL
		return view, nil
	}

	content, err := s.fetcher.FileContents(ctx, file.DownloadURL)
	if err != nil {
		return FileView{}, err
	}
	view.Mode = ViewText
	view.Language = LanguageFor(file.Name)
	view.Content = string(content)
	return view, nil
}
