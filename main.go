package main

import (
	"time"

	"github.com/codesharehq/codeshare/config"
	"github.com/codesharehq/codeshare/models"
	"github.com/codesharehq/codeshare/routes"
	"github.com/codesharehq/codeshare/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Post{}, &models.PageView{}, &models.UploadedFile{})

	r := routes.SetupRouter(db)

	// Start background cleanup for expired screenshot uploads (best-effort)
	utils.StartUploadCleaner(5 * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
