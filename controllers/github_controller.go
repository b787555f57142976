package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codesharehq/codeshare/config"
	"github.com/codesharehq/codeshare/utils"
)

// maxProxyBody caps how much of an upstream response body is relayed.
const maxProxyBody = 4 << 20

var repoURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)

// GitHubController proxies the two GitHub contents-API reads the repository
// explorer needs. Both calls share one bearer token and one bounded client.
type GitHubController struct {
	token   string
	apiBase string
	apiHost string
	client  *http.Client
}

// NewGitHubController builds the proxy controller from configuration.
func NewGitHubController(cfg config.AppConfig) *GitHubController {
	base := strings.TrimRight(cfg.GitHubAPIBase, "/")
	host := ""
	if u, err := url.Parse(base); err == nil {
		host = u.Host
	}
	return &GitHubController{
		token:   cfg.GitHubToken,
		apiBase: base,
		apiHost: host,
		client:  &http.Client{Timeout: time.Duration(cfg.GitHubTimeoutSec) * time.Second},
	}
}

// RepoTree lists the root contents of a repository given its web URL.
// The URL must contain an owner/repo path; nothing is fetched otherwise.
func (g *GitHubController) RepoTree(ctx *gin.Context) {
	repoURL := strings.TrimSpace(ctx.Query("url"))
	if repoURL == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing URL parameter"})
		return
	}

	m := repoURLPattern.FindStringSubmatch(repoURL)
	if m == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid GitHub URL"})
		return
	}
	owner, repo := m[1], strings.TrimSuffix(m[2], ".git")

	apiURL := fmt.Sprintf("%s/repos/%s/%s/contents/", g.apiBase, owner, repo)
	body, status, err := g.proxy(ctx, apiURL)
	if err != nil || status != http.StatusOK {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("repo tree fetch failed url=%s status=%d err=%v", apiURL, status, err)
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching GitHub data"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tree": json.RawMessage(body)})
}

// RepoFolder relays a folder-listing call. The client hands back the exact
// API URL a directory node carries; only the configured API host is allowed.
func (g *GitHubController) RepoFolder(ctx *gin.Context) {
	apiURL := strings.TrimSpace(ctx.Query("url"))
	if apiURL == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing url parameter"})
		return
	}

	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" || u.Host != g.apiHost {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API URL"})
		return
	}

	body, status, err := g.proxy(ctx, apiURL)
	if err != nil || status != http.StatusOK {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("folder fetch failed url=%s status=%d err=%v", apiURL, status, err)
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching GitHub data"})
		return
	}

	ctx.Data(http.StatusOK, "application/json", body)
}

func (g *GitHubController) proxy(ctx *gin.Context, apiURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx.Request.Context(), http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, 0, err
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProxyBody))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
