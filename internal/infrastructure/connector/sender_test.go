package connector

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cateringworks/lunchbot/internal/core/ports"
)

var testScope = ports.Scope{ConversationID: "conv-1", UserID: "user-1"}

func TestSender_SendText(t *testing.T) {
	var got outboundActivity
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/conversations/conv-1/activities" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode activity: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewSender(srv.URL, "bot-1", "lunchbot", zerolog.Nop())
	if err := s.SendText(context.Background(), testScope, "Welcome!"); err != nil {
		t.Fatalf("send text: %v", err)
	}

	if got.Type != "message" {
		t.Fatalf("type = %q", got.Type)
	}
	if got.Text != "Welcome!" {
		t.Fatalf("text = %q", got.Text)
	}
	if got.ID == "" {
		t.Fatalf("activity id not assigned")
	}
	if got.From.ID != "bot-1" {
		t.Fatalf("from = %q", got.From.ID)
	}
	if got.Conversation.ID != "conv-1" {
		t.Fatalf("conversation = %q", got.Conversation.ID)
	}
}

func TestSender_SendCardAttachesDocument(t *testing.T) {
	var got outboundActivity
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	card := json.RawMessage(`{"type":"AdaptiveCard"}`)
	s := NewSender(srv.URL, "bot-1", "lunchbot", zerolog.Nop())
	if err := s.SendCard(context.Background(), testScope, card); err != nil {
		t.Fatalf("send card: %v", err)
	}

	if len(got.Attachments) != 1 {
		t.Fatalf("attachments = %d", len(got.Attachments))
	}
	if got.Attachments[0].ContentType != "application/vnd.microsoft.card.adaptive" {
		t.Fatalf("contentType = %q", got.Attachments[0].ContentType)
	}
	if string(got.Attachments[0].Content) != `{"type":"AdaptiveCard"}` {
		t.Fatalf("content = %s", got.Attachments[0].Content)
	}
}

func TestSender_ChannelErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewSender(srv.URL, "bot-1", "lunchbot", zerolog.Nop())
	if err := s.SendText(context.Background(), testScope, "hi"); err == nil {
		t.Fatalf("expected error on 502 from channel service")
	}
}
