package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr         string
	Port               string
	DatabasePath       string
	GinMode            string
	LogLevel           string
	WriteTimeout       time.Duration
	AuditRetentionDays int
	BulkWorkers        int
	AdminUsername      string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "campuslog.db"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	logLevel := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}

	writeTimeout := 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("WRITE_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			writeTimeout = parsed
		}
	}

	retentionDays := 180
	if raw := strings.TrimSpace(os.Getenv("AUDIT_RETENTION_DAYS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			retentionDays = parsed
		}
	}

	bulkWorkers := 4
	if raw := strings.TrimSpace(os.Getenv("BULK_WORKERS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			bulkWorkers = parsed
		}
	}

	adminUsername := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))

	return AppConfig{
		ListenAddr:         listenAddr,
		Port:               port,
		DatabasePath:       databasePath,
		GinMode:            ginMode,
		LogLevel:           logLevel,
		WriteTimeout:       writeTimeout,
		AuditRetentionDays: retentionDays,
		BulkWorkers:        bulkWorkers,
		AdminUsername:      adminUsername,
	}
}
