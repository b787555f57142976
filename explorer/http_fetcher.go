package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codesharehq/codeshare/config"
)

// maxFileBytes caps how much of a selected file is read for display.
const maxFileBytes = 4 << 20

// HTTPFetcher loads listings through the server's proxy endpoints and file
// contents straight from their download URLs (those are already resolved
// static asset links, no proxying needed).
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates a fetcher against the given server base URL.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewDefaultSession builds a browsing session backed by this server's own
// proxy endpoints.
func NewDefaultSession() *Session {
	return NewSession(NewHTTPFetcher(config.Get().ServerBaseURL))
}

// RepoTree fetches the root listing for a repository web URL.
func (f *HTTPFetcher) RepoTree(ctx context.Context, repoURL string) ([]Node, error) {
	endpoint := fmt.Sprintf("%s/repo-tree?url=%s", f.BaseURL, url.QueryEscape(repoURL))
	var payload struct {
		Tree []Node `json:"tree"`
	}
	if err := f.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Tree, nil
}

// FolderContents fetches one folder listing by its contents-API URL.
func (f *HTTPFetcher) FolderContents(ctx context.Context, apiURL string) ([]Node, error) {
	endpoint := fmt.Sprintf("%s/repo-folder?url=%s", f.BaseURL, url.QueryEscape(apiURL))
	var nodes []Node
	if err := f.getJSON(ctx, endpoint, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// FileContents fetches a file's raw bytes from its download URL.
func (f *HTTPFetcher) FileContents(ctx context.Context, downloadURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", downloadURL, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxFileBytes))
}

func (f *HTTPFetcher) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", endpoint, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
