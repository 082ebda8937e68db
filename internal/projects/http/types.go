package http

import (
	"github.com/projecthub/projecthub-backend/internal/originality"
	"github.com/projecthub/projecthub-backend/internal/projects/service"
)

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	svc    *service.ProjectService
	engine *originality.Engine
}

func New(svc *service.ProjectService, engine *originality.Engine) *Handler {
	return &Handler{svc: svc, engine: engine}
}

type createReq struct {
	Title       string  `json:"title" binding:"required"`
	Synopsis    *string `json:"synopsis"`
	MentorEmail string  `json:"mentor_email"`
}

type updateReq struct {
	Title    *string `json:"title"`
	Synopsis *string `json:"synopsis"`
}

type originalityReq struct {
	Title    string `json:"title" binding:"required"`
	Synopsis string `json:"synopsis"`
}
