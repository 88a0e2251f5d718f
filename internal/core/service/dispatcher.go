package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cateringworks/lunchbot/internal/api/metrics"
	"github.com/cateringworks/lunchbot/internal/core/domain"
	"github.com/cateringworks/lunchbot/internal/core/ports"
)

const (
	welcomeText = "Welcome. This bot will introduce you to Action.Execute in Adaptive Cards."
	welcomeHint = "Type anything to see a card here, or type recents to see recent orders."

	recentsKeyword = "recents"

	throttleRetryAfterSeconds = 15
)

// Dispatcher is the per-turn orchestrator: it classifies each inbound
// activity and routes invokes through the validator, the OAuth coordinator,
// and the order flow, composing the final response envelope.
//
// The order flow is an optional capability: with a nil flow the dispatcher
// runs the minimal variant, which answers plain messages with the options
// card and rejects order actions as unimplemented.
type Dispatcher struct {
	validator       *ActionValidator
	oauth           *OAuthCoordinator
	flow            *OrderFlow
	state           ports.StateStore
	cards           ports.CardStore
	sender          ports.ActivitySender
	welcomeChannels map[string]struct{}
	log             zerolog.Logger
}

func NewDispatcher(
	validator *ActionValidator,
	oauth *OAuthCoordinator,
	flow *OrderFlow,
	state ports.StateStore,
	cards ports.CardStore,
	sender ports.ActivitySender,
	welcomeChannels []string,
	log zerolog.Logger,
) *Dispatcher {
	channels := make(map[string]struct{}, len(welcomeChannels))
	for _, ch := range welcomeChannels {
		channels[ch] = struct{}{}
	}
	return &Dispatcher{
		validator:       validator,
		oauth:           oauth,
		flow:            flow,
		state:           state,
		cards:           cards,
		sender:          sender,
		welcomeChannels: channels,
		log:             log,
	}
}

// Process handles one inbound activity. Conversation state is flushed
// exactly once per turn, on every branch, early returns and handler errors
// included; a flush failure after a successful turn fails the turn.
func (d *Dispatcher) Process(ctx context.Context, activity *domain.Activity) (*ports.TurnResult, error) {
	scope := ports.Scope{ConversationID: activity.Conversation.ID, UserID: activity.From.ID}
	metrics.TurnsTotal.WithLabelValues(turnLabel(activity.Type)).Inc()

	result, procErr := d.processTurn(ctx, scope, activity)

	flushErr := d.state.Flush(ctx, scope)
	if procErr != nil {
		return nil, procErr
	}
	if flushErr != nil {
		return nil, fmt.Errorf("flush conversation state: %w", flushErr)
	}
	return result, nil
}

func (d *Dispatcher) processTurn(ctx context.Context, scope ports.Scope, activity *domain.Activity) (*ports.TurnResult, error) {
	switch activity.Type {
	case domain.ActivityConversationUpdate:
		return d.onMembersAdded(ctx, scope, activity)
	case domain.ActivityMessage:
		return d.onMessage(ctx, scope, activity)
	case domain.ActivityInvoke:
		return d.onInvoke(ctx, scope, activity)
	default:
		// Typing indicators, reactions, etc. Nothing to do.
		return &ports.TurnResult{}, nil
	}
}

// onMembersAdded greets new members on the configured front-end channels.
// The bot's own join event is excluded. Side effect only; no state is read.
func (d *Dispatcher) onMembersAdded(ctx context.Context, scope ports.Scope, activity *domain.Activity) (*ports.TurnResult, error) {
	if _, ok := d.welcomeChannels[activity.ChannelID]; !ok {
		return &ports.TurnResult{}, nil
	}
	for _, member := range activity.MembersAdded {
		if member.ID == activity.Recipient.ID {
			continue
		}
		if err := d.sender.SendText(ctx, scope, welcomeText); err != nil {
			return nil, fmt.Errorf("send welcome: %w", err)
		}
		if err := d.sender.SendText(ctx, scope, welcomeHint); err != nil {
			return nil, fmt.Errorf("send welcome: %w", err)
		}
	}
	return &ports.TurnResult{}, nil
}

// onMessage answers free text. With the order flow present, any text starts
// an order and the recents keyword shows past orders; without it the fixed
// options card is the only reply.
func (d *Dispatcher) onMessage(ctx context.Context, scope ports.Scope, activity *domain.Activity) (*ports.TurnResult, error) {
	if d.flow == nil {
		card, err := d.cards.Render(CardFileErrorOptions, nil)
		if err != nil {
			return nil, err
		}
		if err := d.sender.SendCard(ctx, scope, card); err != nil {
			return nil, fmt.Errorf("send options card: %w", err)
		}
		return &ports.TurnResult{}, nil
	}

	var (
		card []byte
		err  error
	)
	if strings.EqualFold(strings.TrimSpace(activity.Text), recentsKeyword) {
		card, err = d.flow.RecentOrdersDocument(ctx)
	} else {
		card, err = d.flow.EntreeCard(ctx)
	}
	if err != nil {
		return nil, err
	}
	if err := d.sender.SendCard(ctx, scope, card); err != nil {
		return nil, fmt.Errorf("send card: %w", err)
	}
	return &ports.TurnResult{}, nil
}

// onInvoke routes the two invoke sub-kinds: OAuth continuations first, card
// actions second. Anything else is answered 501; there is no platform
// default to fall through to.
func (d *Dispatcher) onInvoke(ctx context.Context, scope ports.Scope, activity *domain.Activity) (*ports.TurnResult, error) {
	if activity.IsOAuthContinuation() {
		resp, err := d.oauth.Continue(ctx, scope, activity.Name)
		if err != nil {
			return nil, err
		}
		return &ports.TurnResult{InvokeResponse: resp}, nil
	}

	if activity.IsCardAction() {
		return d.onCardAction(ctx, scope, activity)
	}

	metrics.InvokeErrorsTotal.WithLabelValues("unknown_invoke").Inc()
	return &ports.TurnResult{
		InvokeResponse: domain.ServerErrorResponse(http.StatusNotImplemented, "501",
			fmt.Sprintf("Invoke %s is not implemented", activity.Name)),
	}, nil
}

func (d *Dispatcher) onCardAction(ctx context.Context, scope ports.Scope, activity *domain.Activity) (*ports.TurnResult, error) {
	action, err := d.validator.Validate(activity.Value)
	if err != nil {
		return &ports.TurnResult{InvokeResponse: validationErrorResponse(err)}, nil
	}

	metrics.CardActionsTotal.WithLabelValues(action.Verb).Inc()

	var resp *domain.InvokeResponse
	switch action.Verb {
	case VerbNext:
		resp, err = d.demoCard(CardFileBland)
	case VerbBack:
		resp, err = d.demoCard(CardFileErrorOptions)
	case VerbErr:
		resp, err = d.demoError(action.Options)
	case VerbOrder:
		resp, err = d.advanceOrder(ctx, scope, action.Options)
	case VerbNominalOAuth:
		resp, err = d.oauth.StartNominal(ctx, scope)
	case VerbSSOOAuth:
		resp, err = d.oauth.StartSSO(ctx, scope, action.Authentication)
	case VerbSignout:
		resp, err = d.oauth.SignOut(ctx, scope)
	default:
		// Unreachable while supportedVerbs and this switch agree; answered
		// loudly instead of as an empty 200 in case they ever diverge.
		metrics.InvokeErrorsTotal.WithLabelValues("unknown_invoke").Inc()
		resp = domain.ServerErrorResponse(http.StatusNotImplemented, "501",
			fmt.Sprintf("Verb %s is not implemented", action.Verb))
	}
	if err != nil {
		return nil, err
	}
	return &ports.TurnResult{InvokeResponse: resp}, nil
}

// advanceOrder loads the user's order, runs the state machine, and writes
// the mutated record back to conversation state.
func (d *Dispatcher) advanceOrder(ctx context.Context, scope ports.Scope, opts domain.CardOptions) (*domain.InvokeResponse, error) {
	if d.flow == nil {
		metrics.InvokeErrorsTotal.WithLabelValues("unknown_invoke").Inc()
		return domain.ServerErrorResponse(http.StatusNotImplemented, "501",
			"Order actions are not enabled on this bot"), nil
	}

	user, err := d.state.User(ctx, scope)
	if err != nil {
		return nil, err
	}
	resp, err := d.flow.Advance(ctx, user, opts)
	if err != nil {
		return nil, err
	}
	if err := d.state.SetUser(ctx, scope, user); err != nil {
		return nil, err
	}
	return resp, nil
}

// demoError exercises the error-envelope shapes keyed off the requested
// card. It exists for testing channel behavior and mutates no state.
func (d *Dispatcher) demoError(opts domain.CardOptions) (*domain.InvokeResponse, error) {
	switch opts.NextCard {
	case domain.CardOkWithString:
		return domain.MessageResponse("This is an error message string."), nil
	case domain.CardOkWithCard:
		return d.demoCard(CardFileBland)
	case domain.CardThrottleWarning:
		return domain.ThrottleResponse(throttleRetryAfterSeconds), nil
	case domain.CardTeapot:
		return domain.TeapotResponse(), nil
	case domain.CardError:
		return domain.ServerErrorResponse(http.StatusInternalServerError, "500", "Bot has encountered an error."), nil
	default:
		return nil, fmt.Errorf("%w: err demo nextCardToSend=%d", domain.ErrNotImplemented, opts.NextCard)
	}
}

func (d *Dispatcher) demoCard(name string) (*domain.InvokeResponse, error) {
	card, err := d.cards.Render(name, nil)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return domain.CardResponse(card), nil
}

// validationErrorResponse maps a classified validation failure to its 400
// envelope. Validation never fails the turn.
func validationErrorResponse(err error) *domain.InvokeResponse {
	switch {
	case errors.Is(err, domain.ErrVerbNotSupported):
		metrics.InvokeErrorsTotal.WithLabelValues("verb_not_supported").Inc()
	default:
		metrics.InvokeErrorsTotal.WithLabelValues("invalid_payload").Inc()
	}
	return domain.ClientErrorResponse(http.StatusBadRequest, "400", err.Error())
}

func turnLabel(activityType string) string {
	switch activityType {
	case domain.ActivityMessage, domain.ActivityInvoke, domain.ActivityConversationUpdate:
		return activityType
	default:
		return "other"
	}
}
