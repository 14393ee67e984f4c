package calendar

import (
	"github.com/businessregulatoryreviewagency/brra/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	cal := r.Group("/calendar")
	cal.Use(middleware.AuthMiddleware())
	cal.Use(middleware.RateLimitByIP(5, 20))
	{
		cal.GET("/working-days", handler.WorkingDays)
		cal.GET("/months-between", handler.MonthsBetween)
		cal.GET("/accrued-days", handler.AccruedDays)
	}
}
