package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/codesharehq/codeshare/middleware"
	"github.com/codesharehq/codeshare/models"
)

func newStatsRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := openTestDB(t, &models.Post{}, &models.PageView{})
	pc := &PostController{db: db}
	sc := &StatsController{db: db}
	r := gin.New()
	r.Use(middleware.PageViewRecorder(db))
	r.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/posts", pc.ListPosts)
	r.GET("/posts/:id", pc.GetPost)
	r.POST("/posts", pc.CreatePost)
	r.GET("/stats", sc.GetStats)
	return r, db
}

func TestPageViewRecorderAggregatesPerDayAndPath(t *testing.T) {
	r, db := newStatsRouter(t)
	seedPosts(t, db, 1)

	for i := 0; i < 3; i++ {
		if w := doJSON(r, http.MethodGet, "/posts", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, w.Code)
		}
	}

	var rows []models.PageView
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("load page views: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("repeated views of one path must upsert a single row, got %d", len(rows))
	}
	if rows[0].Path != "/posts" || rows[0].Count != 3 {
		t.Fatalf("unexpected row: path=%q count=%d", rows[0].Path, rows[0].Count)
	}
}

func TestPageViewRecorderSkipsNonContentRequests(t *testing.T) {
	r, db := newStatsRouter(t)
	seedPosts(t, db, 1)

	// Skip-listed paths, mutations, and error responses must not count.
	for _, target := range []string{"/health", "/stats"} {
		if w := doJSON(r, http.MethodGet, target, nil); w.Code != http.StatusOK {
			t.Fatalf("%s: status %d", target, w.Code)
		}
	}
	if w := doJSON(r, http.MethodPost, "/posts", validPayload()); w.Code != http.StatusOK {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, http.MethodGet, "/posts/999", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var count int64
	db.Model(&models.PageView{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no page view rows, got %d", count)
	}
}

func TestGetStats(t *testing.T) {
	r, db := newStatsRouter(t)
	seedPosts(t, db, 2)

	for i := 0; i < 2; i++ {
		if w := doJSON(r, http.MethodGet, "/posts", nil); w.Code != http.StatusOK {
			t.Fatalf("view %d: status %d", i, w.Code)
		}
	}

	// A prior day's counter feeds the total but not today's figure.
	now := time.Now().In(time.Local)
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	if err := db.Create(&models.PageView{Date: yesterday, Path: "/posts", Count: 5}).Error; err != nil {
		t.Fatalf("seed prior day: %v", err)
	}

	w := doJSON(r, http.MethodGet, "/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Posts      int64 `json:"posts"`
			Views      int64 `json:"views"`
			ViewsToday int64 `json:"viewsToday"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Posts != 2 {
		t.Fatalf("posts = %d, want 2", resp.Data.Posts)
	}
	if resp.Data.Views != 7 {
		t.Fatalf("views = %d, want 7", resp.Data.Views)
	}
	if resp.Data.ViewsToday != 2 {
		t.Fatalf("viewsToday = %d, want 2", resp.Data.ViewsToday)
	}
}
