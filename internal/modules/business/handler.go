package business

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookwise/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts the moderation endpoints; the caller is expected
// to guard the group with the admin role middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/businesses/:id/suspend", h.suspend(true))
	rg.POST("/businesses/:id/unsuspend", h.suspend(false))
}

func (h *Handler) suspend(suspended bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid business id")
			return
		}

		if err := h.service.SetSuspended(c.Request.Context(), id, suspended); err != nil {
			if errors.Is(err, ErrNotFound) {
				response.Error(c, http.StatusNotFound, "NOT_FOUND", "business not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "operation failed")
			return
		}

		response.Success(c, http.StatusOK, gin.H{"business_id": id, "suspended": suspended})
	}
}
