package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
	"github.com/pactfit/pactfit-backend/internal/realtime"
	"github.com/pactfit/pactfit-backend/internal/requestdata"
)

type RealtimeHandler struct {
	Log *logger.Logger
	Hub *realtime.SSEHub

	mu      sync.RWMutex
	clients map[uuid.UUID]*realtime.SSEClient // key: SessionID (UserToken.ID)
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{
		Log:     log,
		Hub:     hub,
		clients: make(map[uuid.UUID]*realtime.SSEClient),
	}
}

func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	userID := rd.UserID
	sessionID := rd.SessionID
	if sessionID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session id"})
		return
	}
	h.Log.Info("SSEStream open", "user_id", userID.String(), "session_id", sessionID.String())

	h.mu.Lock()
	// One stream per session: a reconnect replaces the old client.
	if existing, ok := h.clients[sessionID]; ok {
		h.Hub.CloseClient(existing)
		delete(h.clients, sessionID)
	}
	client := h.Hub.NewSSEClient(userID)
	h.clients[sessionID] = client
	h.mu.Unlock()

	// Every session listens on the user's own channel.
	h.Hub.AddChannel(client, realtime.UserChannel(userID.String()))

	h.Hub.ServeHTTP(c.Writer, c.Request, client)

	// A replaced stream must not unregister its replacement.
	h.mu.Lock()
	if h.clients[sessionID] == client {
		delete(h.clients, sessionID)
	}
	h.mu.Unlock()
	h.Hub.CloseClient(client)
}

func (h *RealtimeHandler) SSESubscribe(c *gin.Context) {
	client, req, ok := h.sessionClientAndChannel(c)
	if !ok {
		return
	}
	h.Hub.AddChannel(client, req)
	c.JSON(http.StatusOK, gin.H{"message": "subscribed", "channel": req})
}

func (h *RealtimeHandler) SSEUnsubscribe(c *gin.Context) {
	client, req, ok := h.sessionClientAndChannel(c)
	if !ok {
		return
	}
	h.Hub.RemoveChannel(client, req)
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed", "channel": req})
}

func (h *RealtimeHandler) sessionClientAndChannel(c *gin.Context) (*realtime.SSEClient, string, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, "", false
	}
	if rd.SessionID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session id"})
		return nil, "", false
	}

	var req struct {
		Channel string `json:"channel"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Channel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel"})
		return nil, "", false
	}

	h.mu.RLock()
	client, exists := h.clients[rd.SessionID]
	h.mu.RUnlock()
	if !exists {
		c.JSON(http.StatusConflict, gin.H{"error": "no active SSE connection for this session"})
		return nil, "", false
	}
	return client, req.Channel, true
}
