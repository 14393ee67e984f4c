package rbac

import (
	"github.com/businessregulatoryreviewagency/brra/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", middleware.RBACAuthorize(service, "rbac", "read"), handler.Enforce)
	}
}
