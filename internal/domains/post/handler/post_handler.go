package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/hanameee/bloglist-backend/internal/domains/account"
	"github.com/hanameee/bloglist-backend/internal/domains/post"
	"github.com/hanameee/bloglist-backend/internal/domains/post/service"
	"github.com/hanameee/bloglist-backend/internal/shared/auth"
	"github.com/hanameee/bloglist-backend/internal/shared/middleware"
	"github.com/hanameee/bloglist-backend/internal/shared/response"
	"github.com/hanameee/bloglist-backend/pkg/logger"
)

// PostHandler exposes the post collection endpoints.
type PostHandler struct {
	service service.Service
}

func NewPostHandler(service service.Service) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /posts.
func (h *PostHandler) List(c *gin.Context) {
	dtos, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dtos)
}

// Create handles POST /posts. The auth middleware has already resolved the
// acting account.
func (h *PostHandler) Create(c *gin.Context) {
	actorID, ok := middleware.AccountID(c)
	if !ok {
		response.Unauthorized(c, "missing or invalid token")
		return
	}

	var req post.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	dto, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/posts/"+dto.ID.String())
	response.Success(c, http.StatusCreated, dto)
}

// Update handles PUT /posts/:id. No token required: like-count updates are
// a public action, not an owner-restricted edit.
func (h *PostHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}

	var req post.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	dto, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Delete handles DELETE /posts/:id, permitted only to the owner.
func (h *PostHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.AccountID(c)
	if !ok {
		response.Unauthorized(c, "missing or invalid token")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "post not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorID, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Stats handles GET /posts/stats.
func (h *PostHandler) Stats(c *gin.Context) {
	summary, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// handleError maps domain errors onto HTTP status codes. Anything not
// recognized is a store failure: logged and answered with a generic 500.
func (h *PostHandler) handleError(c *gin.Context, err error) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verr)
	case errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, account.ErrAccountNotFound):
		// The token names an account the store no longer knows.
		response.Unauthorized(c, "unknown account")
	case errors.Is(err, auth.ErrForbidden):
		response.Forbidden(c, "only the owner may do that")
	case errors.Is(err, auth.ErrUnauthorized):
		response.Unauthorized(c, "missing or invalid token")
	default:
		logger.Error("post operation failed", err)
		response.InternalServerError(c, "internal server error")
	}
}
