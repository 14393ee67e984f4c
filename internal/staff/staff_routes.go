package staff

import (
	"github.com/businessregulatoryreviewagency/brra/internal/middleware"
	"github.com/businessregulatoryreviewagency/brra/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	members := r.Group("/staff")
	members.Use(middleware.AuthMiddleware())
	{
		members.GET("/approver-options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "staff", "read"),
			handler.ApproverOptions,
		)
		members.GET("", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetAll)
		members.GET("/:id", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetById)
		members.POST("", middleware.RBACAuthorize(rbacService, "staff", "manage"), handler.Create)
		members.PUT("/:id", middleware.RBACAuthorize(rbacService, "staff", "manage"), handler.Update)
	}
}
