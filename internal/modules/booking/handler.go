package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"officecal/internal/domain"
	"officecal/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/upcoming", h.Upcoming)
	rg.GET("/bookings/:id", h.Get)
	rg.PUT("/bookings/:id", h.Update)
	rg.DELETE("/bookings/:id", h.Delete)
	rg.GET("/rooms/:id/bookings", h.RoomDay)
}

func (h *Handler) Create(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req, c.GetInt64("employee_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": resp})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req,
		c.GetInt64("employee_id"), domain.Role(c.GetString("role")))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": resp})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), id,
		c.GetInt64("employee_id"), domain.Role(c.GetString("role")))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": resp})
}

func (h *Handler) Upcoming(c *gin.Context) {
	list, err := h.service.ListUpcomingForEmployee(c.Request.Context(), c.GetInt64("employee_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) RoomDay(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing date query parameter")
		return
	}

	list, err := h.service.ListForRoomDate(c.Request.Context(), id, date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var ce *ConflictError
	switch {
	case errors.As(err, &ce):
		response.ErrorWithDetails(c, http.StatusConflict, "ROOM_NOT_AVAILABLE",
			"Room is not available for the selected time", conflictDetails(ce))
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "ROOM_NOT_AVAILABLE",
			"Room is not available for the selected time")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking time range")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}

func conflictDetails(ce *ConflictError) gin.H {
	if ce.Conflict == nil {
		return nil
	}
	return gin.H{
		"kind":       ce.Conflict.Kind,
		"id":         ce.Conflict.ID,
		"label":      ce.Conflict.Label,
		"date":       ce.Conflict.Interval.Date.Format("2006-01-02"),
		"start_time": ce.Conflict.Interval.Start.String(),
		"end_time":   ce.Conflict.Interval.End.String(),
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
