// @title CourseHub 后端 API
// @version 1.0
// @description 课程发布平台的后端服务器。

// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"coursehub_backend/internal/app"
	"coursehub_backend/internal/config"
	"coursehub_backend/pkg/logger"
)

func main() {
	// 迁移在启动时总会执行，-migrate-only 跑完迁移就退出
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	application.Run()
}
