package leaverequest

import (
	"github.com/businessregulatoryreviewagency/brra/internal/middleware"
	"github.com/businessregulatoryreviewagency/brra/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	requests.Use(middleware.ContextLogger(logger))
	{
		if redisClient != nil {
			requests.POST("",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "leave_request", "create"),
				handler.Create,
			)
			requests.POST("/local",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "leave_request", "create"),
				handler.CreateLocal,
			)
		} else {
			requests.POST("", middleware.RBACAuthorize(rbacService, "leave_request", "create"), handler.Create)
			requests.POST("/local", middleware.RBACAuthorize(rbacService, "leave_request", "create"), handler.CreateLocal)
		}

		requests.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.History,
		)
		requests.GET("/summary",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.Summary,
		)
		requests.GET("/pending",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			handler.Pending,
		)
		requests.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.GetById,
		)

		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave_request", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave_request", "reject"), handler.Reject)
	}
}
