package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/projecthub/projecthub-backend/internal/auth"
	authdomain "github.com/projecthub/projecthub-backend/internal/auth/domain"
	"github.com/projecthub/projecthub-backend/internal/embedding"
	"github.com/projecthub/projecthub-backend/internal/projects/domain"
	"github.com/projecthub/projecthub-backend/internal/projects/service"
)

func (h *Handler) checkOriginality(c *gin.Context) {
	var req originalityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body"})
		return
	}

	result, err := h.engine.Check(c.Request.Context(), req.Title, req.Synopsis)
	if err != nil {
		if errors.Is(err, embedding.ErrUnavailable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot check originality without embedding generation."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "originality check failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.CurrentAccount(c), service.CreateInput{
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		MentorEmail: req.MentorEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) listApproved(c *gin.Context) {
	items, err := h.svc.ListApproved(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) listMine(c *gin.Context) {
	items, err := h.svc.ListMine(c.Request.Context(), auth.CurrentAccount(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) listMentored(c *gin.Context) {
	items, err := h.svc.ListMentored(c.Request.Context(), auth.CurrentAccount(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) listPending(c *gin.Context) {
	items, err := h.svc.ListPending(c.Request.Context(), auth.CurrentAccount(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) approve(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	p, err := h.svc.Approve(c.Request.Context(), auth.CurrentAccount(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) reject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	p, err := h.svc.Reject(c.Request.Context(), auth.CurrentAccount(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid body"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), auth.CurrentAccount(c), id, service.UpdateInput{
		Title:    req.Title,
		Synopsis: req.Synopsis,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), auth.CurrentAccount(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return 0, false
	}
	return id, true
}

// respondError maps domain failures onto HTTP statuses. Authorization
// and validation failures surface directly; nothing here is retried.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrMentorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for this project"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
