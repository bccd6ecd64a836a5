package availability

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookwise/internal/pkg/response"

	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.DaySlots)
}

func (h *Handler) DaySlots(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Query("businessId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "businessId is required")
		return
	}

	req := DaySlotsRequest{
		BusinessID:   businessID,
		ResourceKind: c.DefaultQuery("resourceKind", "employee"),
		Date:         c.Query("date"),
	}

	if v := c.Query("resourceId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid resourceId")
			return
		}
		req.ResourceID = &id
	}
	if v := c.Query("durationMinutes"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid durationMinutes")
			return
		}
		req.DurationMinutes = d
	}

	resp, err := h.service.DaySlots(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid date, expected YYYY-MM-DD")
		case ErrNotFound, gorm.ErrRecordNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "business or resource not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to compute availability")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}
