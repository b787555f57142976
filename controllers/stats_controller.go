package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/codesharehq/codeshare/models"
	"github.com/codesharehq/codeshare/utils"
)

// StatsController exposes lightweight site counters.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns total posts plus aggregate and today's page views.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var totalPosts int64
	if err := s.db.Model(&models.Post{}).Count(&totalPosts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to count posts")
		return
	}

	var totalViews int64
	if err := s.db.Model(&models.PageView{}).Select("COALESCE(SUM(count), 0)").Scan(&totalViews).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to sum page views")
		return
	}

	now := time.Now().In(time.Local)
	localMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var todayViews int64
	if err := s.db.Model(&models.PageView{}).Select("COALESCE(SUM(count), 0)").Where("date = ?", localMidnight).Scan(&todayViews).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to sum today's page views")
		return
	}

	utils.Success(ctx, gin.H{
		"posts":      totalPosts,
		"views":      totalViews,
		"viewsToday": todayViews,
	})
}
