package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
	"github.com/pactfit/pactfit-backend/internal/realtime"
	"github.com/pactfit/pactfit-backend/internal/requestdata"
)

func realtimeTestRouter(t *testing.T, userID, sessionID uuid.UUID) (*gin.Engine, *RealtimeHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)

	h := NewRealtimeHandler(log, realtime.NewSSEHub(log))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			UserID:    userID,
			SessionID: sessionID,
		})
		c.Request = c.Request.WithContext(ctx)
	})
	router.GET("/stream", h.SSEStream)
	router.POST("/subscribe", h.SSESubscribe)
	return router, h
}

func waitForSessionClient(t *testing.T, h *RealtimeHandler, sessionID uuid.UUID, not *realtime.SSEClient) *realtime.SSEClient {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		client := h.clients[sessionID]
		h.mu.RUnlock()
		if client != nil && client != not {
			return client
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for session client")
	return nil
}

// A reconnect on the same session replaces the old stream. The old stream's
// cleanup must neither panic nor tear down the replacement's registration.
func TestSSEStreamReconnectReplacesOldStream(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	router, h := realtimeTestRouter(t, userID, sessionID)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(firstCtx)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}()
	firstClient := waitForSessionClient(t, h, sessionID, nil)

	secondCtx, cancelSecond := context.WithCancel(context.Background())
	defer cancelSecond()
	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(secondCtx)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}()
	waitForSessionClient(t, h, sessionID, firstClient)

	// The replaced stream exits via its closed done channel.
	select {
	case <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatalf("replaced stream did not exit")
	}

	// The session must still resolve to the replacement stream.
	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(`{"channel":"contract:test"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("subscribe after reconnect: status=%d body=%s", w.Code, w.Body.String())
	}

	cancelSecond()
	select {
	case <-secondDone:
	case <-time.After(2 * time.Second):
		t.Fatalf("second stream did not exit on context cancel")
	}
}
