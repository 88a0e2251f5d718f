package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cateringworks/lunchbot/internal/core/domain"
	"github.com/cateringworks/lunchbot/internal/core/ports"
)

// ActivityHandler receives inbound activities from the channel service and
// hands them to the turn service.
type ActivityHandler struct {
	turns ports.TurnService
}

func NewActivityHandler(turns ports.TurnService) *ActivityHandler {
	return &ActivityHandler{turns: turns}
}

// Receive handles POST /api/messages. Invoke activities get the invoke
// response envelope as the HTTP body; everything else is acknowledged with an
// empty 200 once the turn has been processed.
func (h *ActivityHandler) Receive(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Conversation.ID == "" || req.From.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "activity missing conversation or sender identity")
	}

	result, err := h.turns.Process(c.Request().Context(), toActivity(req))
	if err != nil {
		return err
	}

	if result.InvokeResponse != nil {
		return c.JSON(http.StatusOK, result.InvokeResponse)
	}
	return c.NoContent(http.StatusOK)
}

// toActivity maps the HTTP request to the core activity.
func toActivity(r activityRequest) *domain.Activity {
	a := &domain.Activity{
		Type:         r.Type,
		ID:           r.ID,
		ChannelID:    r.ChannelID,
		Name:         r.Name,
		Text:         r.Text,
		From:         domain.ChannelAccount{ID: r.From.ID, Name: r.From.Name},
		Recipient:    domain.ChannelAccount{ID: r.Recipient.ID, Name: r.Recipient.Name},
		Conversation: domain.ConversationAccount{ID: r.Conversation.ID},
		Value:        r.Value,
	}
	for _, m := range r.MembersAdded {
		a.MembersAdded = append(a.MembersAdded, domain.ChannelAccount{ID: m.ID, Name: m.Name})
	}
	return a
}
