package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codesharehq/codeshare/config"
	"github.com/codesharehq/codeshare/models"
	"github.com/codesharehq/codeshare/utils"
)

// FeedPageSize is the fixed feed page length, known to both server and client.
const FeedPageSize = 20

// PostController serves the code post feed, detail, submission, and screenshot upload.
type PostController struct {
	db *gorm.DB
	// cacheEnabled gates the redis response cache; tests construct the
	// controller with it off so runs stay hermetic.
	cacheEnabled bool
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db, cacheEnabled: true}
}

// ListPosts returns one feed page ordered by ascending id, starting strictly
// after the cursor. nextCursor is the last id when the page is full and null
// otherwise; a short page is the termination signal.
func (p *PostController) ListPosts(ctx *gin.Context) {
	raw := strings.TrimSpace(ctx.Query("cursor"))
	var cursor uint64
	if raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cursor."})
			return
		}
		cursor = v
	}

	cacheKey := "cache:posts:feed:cursor=" + raw
	if p.cacheEnabled {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	posts := make([]models.Post, 0, FeedPageSize)
	q := p.db.Order("id ASC").Limit(FeedPageSize)
	if cursor > 0 {
		q = q.Where("id > ?", cursor)
	}
	if err := q.Find(&posts).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("feed query failed cursor=%d: %v", cursor, err)
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching posts."})
		return
	}

	var nextCursor interface{}
	if len(posts) == FeedPageSize {
		nextCursor = strconv.FormatUint(uint64(posts[len(posts)-1].ID), 10)
	}

	payload := gin.H{"posts": posts, "nextCursor": nextCursor}
	if p.cacheEnabled {
		if b, err := json.Marshal(payload); err == nil {
			utils.CacheSetBytes(cacheKey, b, time.Hour)
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}
	ctx.JSON(http.StatusOK, payload)
}

// GetPost returns a single post by id.
func (p *PostController) GetPost(ctx *gin.Context) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Post not found."})
		return
	}

	cacheKey := "cache:post:detail:" + raw
	if p.cacheEnabled {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Post not found."})
			return
		}
		if utils.Sugar != nil {
			utils.Sugar.Errorf("post detail query failed id=%d: %v", id, err)
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching the post."})
		return
	}

	payload := gin.H{"post": post}
	if p.cacheEnabled {
		if b, err := json.Marshal(payload); err == nil {
			utils.CacheSetBytes(cacheKey, b, time.Hour)
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}
	ctx.JSON(http.StatusOK, payload)
}

type externalLinkInput struct {
	Type string `json:"type" binding:"required"`
	URL  string `json:"url" binding:"required,url"`
}

type createPostRequest struct {
	Username      string              `json:"username" binding:"required,min=2"`
	Title         string              `json:"title" binding:"required,min=3"`
	Description   string              `json:"description" binding:"required,min=10"`
	Technologies  []string            `json:"technologies" binding:"required,min=1,dive,required"`
	Screenshots   []string            `json:"screenshots" binding:"required,min=1,dive,required,url"`
	Github        string              `json:"github" binding:"omitempty,url"`
	Code          string              `json:"code"`
	ExternalLinks []externalLinkInput `json:"externalLinks" binding:"omitempty,dive"`
}

// CreatePost validates and persists a new code post. Validation failures are
// rejected with per-field messages before anything reaches the store; a valid
// payload results in exactly one insert.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req createPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Validation failed.",
				"errors":  fieldErrors(verrs),
			})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload."})
		return
	}

	post := models.Post{
		Username:     strings.TrimSpace(req.Username),
		Title:        utils.Sanitize(strings.TrimSpace(req.Title)),
		Description:  utils.Sanitize(req.Description),
		Technologies: utils.UniqueStrings(req.Technologies),
		Screenshots:  models.StringList(req.Screenshots),
		Github:       strings.TrimSpace(req.Github),
		Code:         req.Code, // stored verbatim, rendered read-only
	}
	for _, l := range req.ExternalLinks {
		post.ExternalLinks = append(post.ExternalLinks, models.ExternalLink{Type: l.Type, URL: l.URL})
	}

	if err := p.db.Create(&post).Error; err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("failed to create post: %v", err)
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating code post."})
		return
	}

	if p.cacheEnabled {
		utils.InvalidateByPrefix("cache:posts:feed:")
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Code post created successfully.",
		"post":    post,
	})
}

// fieldErrors maps validator failures onto the JSON field names the form
// renders its inline messages next to.
func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		// Element-level failures carry indexed names like Screenshots[0];
		// the form renders one message per field, not per element.
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		switch name {
		case "Username":
			out["username"] = "username must be at least 2 characters"
		case "Title":
			out["title"] = "title must be at least 3 characters"
		case "Description":
			out["description"] = "description must be at least 10 characters"
		case "Technologies":
			out["technologies"] = "select at least one technology"
		case "Screenshots":
			out["screenshots"] = "at least one image URL is required"
		case "Github":
			out["github"] = "github must be a valid URL"
		case "Type", "URL":
			out["externalLinks"] = "external links need a platform and a valid URL"
		default:
			out[strings.ToLower(name)] = fmt.Sprintf("%s is invalid", name)
		}
	}
	return out
}

var screenshotExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".svg": true, ".webp": true,
}

// UploadScreenshot stores one screenshot image under the upload directory and
// returns its public URL. Posts reference the URL; the file itself is subject
// to the timed cleaner when enabled.
func (p *PostController) UploadScreenshot(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "no file uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !screenshotExtensions[ext] {
		utils.Error(ctx, http.StatusBadRequest, 40031, "only image files are accepted")
		return
	}

	conf := config.Get()
	maxSize := int64(conf.UploadMaxSizeMB) << 20
	if header.Size > 0 && header.Size > maxSize {
		utils.Error(ctx, http.StatusBadRequest, 40032, fmt.Sprintf("file size exceeds %dMB", conf.UploadMaxSizeMB))
		return
	}

	now := time.Now()
	year := now.Format("2006")
	month := now.Format("01")
	day := now.Format("02")
	baseDir := filepath.Join(conf.UploadDir, year, month, day)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create upload directory")
		return
	}

	safeName := uuid.NewString() + ext
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to save file")
		return
	}
	defer out.Close()

	// Enforce the size cap with a limited reader; multipart headers can lie.
	lr := &io.LimitedReader{R: file, N: maxSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to write file")
		return
	}
	if written > maxSize {
		_ = out.Close()
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40032, fmt.Sprintf("file size exceeds %dMB", conf.UploadMaxSizeMB))
		return
	}

	relURL := fmt.Sprintf("/static/uploads/%s/%s/%s/%s", year, month, day, safeName)

	expireAt := now.Add(time.Duration(conf.UploadsTTLMinutes) * time.Minute)
	absPath, _ := filepath.Abs(dstPath)
	if err := p.db.Create(&models.UploadedFile{FilePath: absPath, URL: relURL, ExpireAt: expireAt}).Error; err != nil {
		// Best-effort bookkeeping; the upload itself succeeded.
		if utils.Sugar != nil {
			utils.Sugar.Warnf("failed to record uploaded file %s: %v", relURL, err)
		}
	}

	utils.Success(ctx, gin.H{"url": relURL})
}
