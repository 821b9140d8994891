package handler

import (
	"net/http"

	"grievancehub/internal/model"
	"grievancehub/internal/service"
	"grievancehub/internal/version"

	"github.com/gin-gonic/gin"
)

// SystemHandler answers setup status, factory reset, health, and version.
type SystemHandler struct {
	system *service.SystemService
}

func NewSystemHandler(system *service.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

// Status reports whether the store has been initialized
// @Router /api/system-status [get]
func (h *SystemHandler) Status(c *gin.Context) {
	initialized := h.system.Initialized(c.Request.Context())

	message := "System needs setup"
	if initialized {
		message = "System is initialized"
	}

	c.JSON(http.StatusOK, gin.H{
		"initialized": initialized,
		"message":     message,
	})
}

// Setup performs a factory reset and returns the sample credentials
// @Router /api/setup [post]
func (h *SystemHandler) Setup(c *gin.Context) {
	accounts, err := h.system.Reset(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to create sample data"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Sample data created successfully!",
		"accounts": accounts,
	})
}

// Health is the liveness probe
// @Router /api/healthz [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Version reports build metadata
// @Router /api/version [get]
func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
