package http

import (
	"github.com/gin-gonic/gin"

	"github.com/projecthub/projecthub-backend/internal/auth/middleware"
)

// Register attaches project routes to the given router group. The group
// is expected to already carry the bearer-auth middleware; teacher-only
// routes add a role check on top.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.listApproved)
	rg.GET("/my-projects", h.listMine)
	rg.POST("/check-originality", h.checkOriginality)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)

	teacher := rg.Group("")
	teacher.Use(middleware.RequireTeacher())
	teacher.GET("/mentored", h.listMentored)
	teacher.GET("/pending", h.listPending)
	teacher.PUT("/:id/approve", h.approve)
	teacher.PUT("/:id/reject", h.reject)
}
