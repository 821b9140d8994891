package handler

import (
	"net/http"

	"grievancehub/internal/model"
	"grievancehub/internal/service"

	"github.com/gin-gonic/gin"
)

// GrievanceHandler handles submission and per-user listing.
type GrievanceHandler struct {
	grievances *service.GrievanceService
}

func NewGrievanceHandler(grievances *service.GrievanceService) *GrievanceHandler {
	return &GrievanceHandler{grievances: grievances}
}

// Create handles grievance submission
// @Router /api/grievances [post]
func (h *GrievanceHandler) Create(c *gin.Context) {
	var req model.CreateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error()))
		return
	}

	if req.Title == "" || req.Description == "" || req.Department == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Title, description and department are required"))
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("User ID is required"))
		return
	}

	grievance, err := h.grievances.Create(c.Request.Context(), req.Title, req.Description, req.Department, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to submit grievance"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Grievance submitted successfully",
		"grievance": grievance,
	})
}

// ListForUser returns the grievances owned by the userId query parameter
// @Router /api/grievances [get]
func (h *GrievanceHandler) ListForUser(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("User ID is required"))
		return
	}

	grievances, err := h.grievances.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fetch grievances"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"grievances": grievances})
}
