package setting

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"officecal/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the settings endpoints. Settings are always
// scoped to the authenticated employee, never addressable cross-user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.List)
	rg.PUT("/settings", h.Set)
	rg.GET("/settings/:key", h.Get)
	rg.DELETE("/settings/:key", h.Delete)
}

func (h *Handler) Set(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	entry, err := h.service.Set(c.Request.Context(), c.GetInt64("employee_id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"setting": entry})
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.GetInt64("employee_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settings": list})
}

func (h *Handler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.GetInt64("employee_id"), c.Param("key"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"setting": entry})
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.GetInt64("employee_id"), c.Param("key"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Setting not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process setting")
	}
}
