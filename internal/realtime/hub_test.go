package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestSSEHubOrderingAndReconnect(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	channel := ContractChannel(uuid.New().String())

	clientA := hub.NewSSEClient(uuid.New())
	hub.AddChannel(clientA, channel)

	first := SSEMessage{Channel: channel, Event: SSEEventContractCreated, Data: map[string]any{"seq": 1}}
	second := SSEMessage{Channel: channel, Event: SSEEventContractAccepted, Data: map[string]any{"seq": 2}}
	hub.Broadcast(first)
	hub.Broadcast(second)

	gotFirst := recvMessage(t, clientA.Outbound, time.Second)
	gotSecond := recvMessage(t, clientA.Outbound, time.Second)
	if gotFirst.Event != SSEEventContractCreated {
		t.Fatalf("first event: want=%s got=%s", SSEEventContractCreated, gotFirst.Event)
	}
	if gotSecond.Event != SSEEventContractAccepted {
		t.Fatalf("second event: want=%s got=%s", SSEEventContractAccepted, gotSecond.Event)
	}

	hub.CloseClient(clientA)
	select {
	case _, ok := <-clientA.Outbound:
		if ok {
			t.Fatalf("clientA outbound should be closed after disconnect")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for clientA channel close")
	}

	clientB := hub.NewSSEClient(uuid.New())
	hub.AddChannel(clientB, channel)
	reconnect := SSEMessage{Channel: channel, Event: SSEEventWorkoutToggled, Data: map[string]any{"seq": 3}}
	hub.Broadcast(reconnect)
	gotReconnect := recvMessage(t, clientB.Outbound, time.Second)
	if gotReconnect.Event != SSEEventWorkoutToggled {
		t.Fatalf("reconnect event: want=%s got=%s", SSEEventWorkoutToggled, gotReconnect.Event)
	}
}

func TestSSEHubChannelIsolation(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))

	subscribed := hub.NewSSEClient(uuid.New())
	other := hub.NewSSEClient(uuid.New())
	channel := ContractChannel(uuid.New().String())
	hub.AddChannel(subscribed, channel)
	hub.AddChannel(other, ContractChannel(uuid.New().String()))

	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventContractDeleteRequested})

	got := recvMessage(t, subscribed.Outbound, time.Second)
	if got.Event != SSEEventContractDeleteRequested {
		t.Fatalf("event: want=%s got=%s", SSEEventContractDeleteRequested, got.Event)
	}
	select {
	case msg := <-other.Outbound:
		t.Fatalf("unsubscribed client received %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSSEHubCloseClientIdempotent(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, UserChannel(client.UserID.String()))

	hub.CloseClient(client)
	// A second close must be a no-op, not a panic.
	hub.CloseClient(client)

	select {
	case <-client.done:
	default:
		t.Fatalf("done should be closed")
	}
}

func TestSSEHubUnsubscribe(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	channel := UserChannel(uuid.New().String())
	client := hub.NewSSEClient(uuid.New())

	hub.AddChannel(client, channel)
	hub.RemoveChannel(client, channel)
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventUserNameChanged})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("unsubscribed client received %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
