package router

import (
	"time"

	"github.com/campuslog/internal/handler"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 所有业务路由要求网关已解析好操作者身份
	apiGroup := r.Group("/api", handler.ActorRequired())
	{
		apiGroup.POST("/posts", api.CreatePost)
		apiGroup.GET("/posts/:id", api.GetPost)
		apiGroup.POST("/posts/:id/transition", api.TransitionPost)
		apiGroup.POST("/posts/:id/violations", api.AttachViolations)
		apiGroup.POST("/posts/bulk", api.BulkApply)

		apiGroup.GET("/queue", api.ListQueue)
		apiGroup.GET("/audit", api.QueryAudit)

		admin := apiGroup.Group("", handler.AdminRequired())
		{
			admin.POST("/audit/sweep", api.SweepAudit)
		}
	}

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
