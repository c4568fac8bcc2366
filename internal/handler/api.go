package handler

import (
	"time"

	"github.com/campuslog/internal/config"
	"github.com/campuslog/internal/lock"
	"github.com/campuslog/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	posts         *service.PostService
	moderation    *service.ModerationService
	queue         *service.QueueService
	bulk          *service.BulkService
	audit         *service.AuditService
	violations    *service.ViolationService
	log           *zap.Logger
	retentionDays int
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, log *zap.Logger, cfg config.AppConfig) *API {
	auditService := service.NewAuditService(gdb)
	moderationService := service.NewModerationService(
		gdb,
		lock.New(),
		auditService,
		service.NewLogNotifier(log),
		log,
		cfg.WriteTimeout,
	)

	return &API{
		db:            gdb,
		posts:         service.NewPostService(gdb),
		moderation:    moderationService,
		queue:         service.NewQueueService(gdb),
		bulk:          service.NewBulkService(moderationService, cfg.BulkWorkers),
		audit:         auditService,
		violations:    service.NewViolationService(gdb),
		log:           log,
		retentionDays: cfg.AuditRetentionDays,
	}
}

// RetentionCutoff returns the configured purge horizon for the audit sweep.
func (a *API) RetentionCutoff() time.Time {
	return time.Now().UTC().AddDate(0, 0, -a.retentionDays)
}
