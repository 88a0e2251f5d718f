package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cateringworks/lunchbot/internal/core/ports"
)

const requestTimeout = 10 * time.Second

// Sender posts outbound activities to the channel service. It covers the
// proactive side of the protocol: welcome texts and card replies to plain
// messages, outside the invoke request/response cycle.
type Sender struct {
	http       *http.Client
	serviceURL string
	botID      string
	botName    string
	log        zerolog.Logger
}

func NewSender(serviceURL, botID, botName string, log zerolog.Logger) *Sender {
	return &Sender{
		http:       &http.Client{Timeout: requestTimeout},
		serviceURL: serviceURL,
		botID:      botID,
		botName:    botName,
		log:        log,
	}
}

type outboundAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type outboundAttachment struct {
	ContentType string          `json:"contentType"`
	Content     json.RawMessage `json:"content"`
}

// outboundActivity is the wire shape of an activity this bot originates.
type outboundActivity struct {
	Type         string               `json:"type"`
	ID           string               `json:"id"`
	From         outboundAccount      `json:"from"`
	Conversation outboundAccount      `json:"conversation"`
	Text         string               `json:"text,omitempty"`
	Attachments  []outboundAttachment `json:"attachments,omitempty"`
}

func (s *Sender) SendText(ctx context.Context, scope ports.Scope, text string) error {
	return s.post(ctx, scope, outboundActivity{Text: text})
}

func (s *Sender) SendCard(ctx context.Context, scope ports.Scope, card json.RawMessage) error {
	return s.post(ctx, scope, outboundActivity{
		Attachments: []outboundAttachment{{
			ContentType: "application/vnd.microsoft.card.adaptive",
			Content:     card,
		}},
	})
}

func (s *Sender) post(ctx context.Context, scope ports.Scope, activity outboundActivity) error {
	activity.Type = "message"
	activity.ID = uuid.NewString()
	activity.From = outboundAccount{ID: s.botID, Name: s.botName}
	activity.Conversation = outboundAccount{ID: scope.ConversationID}

	body, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}

	url := fmt.Sprintf("%s/v3/conversations/%s/activities", s.serviceURL, scope.ConversationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("send activity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("channel service returned %d", resp.StatusCode)
	}

	s.log.Debug().
		Str("conversation_id", scope.ConversationID).
		Str("activity_id", activity.ID).
		Msg("activity sent")
	return nil
}
