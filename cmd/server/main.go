package main

import (
	"log"

	"github.com/campuslog/internal/config"
	"github.com/campuslog/internal/db"
	"github.com/campuslog/internal/handler"
	"github.com/campuslog/internal/logger"
	"github.com/campuslog/internal/moderation"
	"github.com/campuslog/internal/router"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// 初始化数据库
	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureUser(cfg.AdminUsername, moderation.RoleAdmin); err != nil {
		log.Fatalf("failed to ensure admin user: %v", err)
	}

	// 设置并运行 Gin 服务器
	api := handler.NewAPI(gdb, zlog, cfg)
	r := router.SetupRouter(api, zlog)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
