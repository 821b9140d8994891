package handler

import (
	"net/http"
	"time"

	"grievancehub/internal/model"
	"grievancehub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

const feedPingInterval = 30 * time.Second

// AdminHandler handles the administrative grievance surface.
type AdminHandler struct {
	grievances *service.GrievanceService
	feed       *service.Hub
	log        *zap.Logger
}

func NewAdminHandler(grievances *service.GrievanceService, feed *service.Hub, log *zap.Logger) *AdminHandler {
	return &AdminHandler{grievances: grievances, feed: feed, log: log}
}

// ListAll returns every grievance with submitter info, newest first
// @Router /api/admin/grievances [get]
func (h *AdminHandler) ListAll(c *gin.Context) {
	grievances, err := h.grievances.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to fetch grievances"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"grievances": grievances})
}

// Respond records an administrative response on a grievance
// @Router /api/admin/grievances/respond [post]
func (h *AdminHandler) Respond(c *gin.Context) {
	var req model.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error()))
		return
	}
	if req.GrievanceID == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Grievance ID is required"))
		return
	}

	grievance, err := h.grievances.Respond(c.Request.Context(), req.GrievanceID, req.Response, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to submit response"))
		return
	}
	if grievance == nil {
		c.JSON(http.StatusNotFound, model.NewErrorResponse("Grievance not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Response submitted successfully",
		"grievance": grievance,
	})
}

// Feed upgrades to a websocket and streams grievance events to the admin
// dashboard until the client disconnects
// @Router /api/admin/grievances/feed [get]
func (h *AdminHandler) Feed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("feed upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events := h.feed.Subscribe()
	defer h.feed.Unsubscribe(events)

	// The reader only watches for the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(feedPingInterval)
	defer ping.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
