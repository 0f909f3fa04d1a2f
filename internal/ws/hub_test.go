package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/playmo/smartdns-api/internal/models"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastsToSubscribers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	r := gin.New()
	r.GET("/ws/events", NewWebSocketHandler(hub).HandleConnection)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.SubscriberCount() == 1 })

	if err := conn.WriteJSON(socketMessage{Action: "subscribe", Type: "ip.added"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	var ack subscriptionResponse
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatalf("ReadJSON(ack) error = %v", err)
	}
	if ack.Status != "success" {
		t.Fatalf("ack status = %q, want success", ack.Status)
	}

	hub.Publish(models.Event{Type: "client.created", ClientID: "skipped"})
	hub.Publish(models.Event{Type: "ip.added", ClientID: "c1", IPAddress: "203.0.113.7"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON(event) error = %v", err)
	}
	if got.Type != "ip.added" || got.IPAddress != "203.0.113.7" {
		t.Errorf("event = %+v, want ip.added for 203.0.113.7", got)
	}
}

func TestSubscriber_Wants(t *testing.T) {
	sub := NewSubscriber("s1", nil)
	if !sub.Wants("anything") {
		t.Error("Wants() = false with no subscriptions")
	}
	sub.Subscribe("ip.added")
	if sub.Wants("client.created") {
		t.Error("Wants(client.created) = true after subscribing to ip.added")
	}
	sub.Unsubscribe("ip.added")
	if !sub.Wants("client.created") {
		t.Error("Wants() = false after clearing subscriptions")
	}
}
