package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hanameee/bloglist-backend/internal/domains/account"
	"github.com/hanameee/bloglist-backend/internal/shared/response"
	"github.com/hanameee/bloglist-backend/pkg/logger"
)

// AccountHandler exposes registration, login and the public account list.
type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register handles POST /accounts.
func (h *AccountHandler) Register(c *gin.Context) {
	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/accounts/"+dto.ID.String())
	response.Success(c, http.StatusCreated, dto)
}

// Login handles POST /login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// List handles GET /accounts.
func (h *AccountHandler) List(c *gin.Context) {
	dtos, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dtos)
}

// handleError maps domain errors onto HTTP status codes. Anything not
// recognized is a store failure: logged and answered with a generic 500.
func (h *AccountHandler) handleError(c *gin.Context, err error) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verr)
	case errors.Is(err, account.ErrHandleTaken):
		response.BadRequest(c, "handle already exists")
	case errors.Is(err, account.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid handle or password")
	case errors.Is(err, account.ErrAccountNotFound):
		response.NotFound(c, "account not found")
	default:
		logger.Error("account operation failed", err)
		response.InternalServerError(c, "internal server error")
	}
}
