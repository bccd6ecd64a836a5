package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookwise/internal/domain"
	"bookwise/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.MyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	// clients always book for themselves; staff may book on behalf
	role := domain.Role(c.GetString("role"))
	if !role.IsStaff() || req.ClientID == 0 {
		req.ClientID = c.GetInt64("user_id")
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	res, err := h.service.CancelBooking(
		c.Request.Context(),
		id,
		c.GetInt64("user_id"),
		domain.Role(c.GetString("role")),
		req.RefundPayment,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	role := domain.Role(c.GetString("role"))
	if !role.IsStaff() && b.ClientID != c.GetInt64("user_id") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) MyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.service.GetMyBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrLeadTime):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "booking must start at least the minimum lead time from now")
	case errors.Is(err, ErrCancelWindow):
		response.Error(c, http.StatusBadRequest, "CANCEL_WINDOW", err.Error())
	case errors.Is(err, ErrAlreadyCancelled):
		response.Error(c, http.StatusBadRequest, "ALREADY_CANCELLED", "booking is already cancelled")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "business, resource or booking not found")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	case errors.Is(err, ErrBlackout):
		response.Error(c, http.StatusConflict, "BLACKOUT", err.Error())
	case errors.Is(err, ErrSuspended):
		response.Error(c, http.StatusForbidden, "SUSPENDED", "business is suspended")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "insufficient rights for this booking")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "operation failed")
	}
}
