package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	// Fallback copy of the tz database so the display zone loads on
	// scratch containers.
	_ "time/tzdata"

	"github.com/rs/zerolog"

	"github.com/cateringworks/lunchbot/internal/api/metrics"
	"github.com/cateringworks/lunchbot/internal/core/domain"
	"github.com/cateringworks/lunchbot/internal/core/ports"
)

// displayZone is the fixed timezone recent-order timestamps are shown in.
const displayZone = "America/Los_Angeles"

// displayTimeFormat renders e.g. "Feb 19, 3:04 PM".
const displayTimeFormat = "Jan 2, 3:04 PM"

// OrderFlow is the lunch-order state machine: given a validated card action
// and the user's current order, it decides what to commit, what to render
// next, and whether to touch durable storage. The confirmation step is the
// only one that writes.
type OrderFlow struct {
	orders     ports.OrderRepository
	recognizer ports.Recognizer
	cards      ports.CardStore
	log        zerolog.Logger
}

func NewOrderFlow(orders ports.OrderRepository, recognizer ports.Recognizer, cards ports.CardStore, log zerolog.Logger) *OrderFlow {
	return &OrderFlow{orders: orders, recognizer: recognizer, cards: cards, log: log}
}

// redoData carries the rejected text back into the redo card so the user can
// correct it in place.
type redoData struct {
	InvalidText string
}

// reviewData fills the review and confirmation cards.
type reviewData struct {
	Entree string
	Drink  string
}

// recentOrderEntry is one row of the recent-orders card.
type recentOrderEntry struct {
	UserID  string
	Entree  string
	Drink   string
	Ordered string
}

type recentOrdersData struct {
	Orders []recentOrderEntry
}

// Advance applies one card action to the user's order and selects the next
// card. The user record is mutated in place; the caller owns persisting it
// back to conversation state.
func (f *OrderFlow) Advance(ctx context.Context, user *domain.User, opts domain.CardOptions) (*domain.InvokeResponse, error) {
	// Commit step: fold the submitted choice into the order. Custom text
	// must clear the recognizer first; a rejection short-circuits to the
	// redo card without mutating anything.
	switch opts.CurrentCard {
	case domain.StepEntree:
		choice := opts.Option
		if opts.Custom != "" {
			if !f.recognizer.ValidateEntree(ctx, opts.Custom) {
				metrics.CustomTextRejectedTotal.WithLabelValues("entree").Inc()
				return f.cardResponse(CardFileRedoEntree, redoData{InvalidText: opts.Custom})
			}
			choice = opts.Custom
		}
		user.Lunch.Entree = choice
	case domain.StepDrink:
		choice := opts.Option
		if opts.Custom != "" {
			if !f.recognizer.ValidateDrink(ctx, opts.Custom) {
				metrics.CustomTextRejectedTotal.WithLabelValues("drink").Inc()
				return f.cardResponse(CardFileRedoDrink, redoData{InvalidText: opts.Custom})
			}
			choice = opts.Custom
		}
		user.Lunch.Drink = choice
	}

	switch opts.NextCard {
	case domain.CardEntree:
		return f.cardResponse(CardFileEntree, nil)
	case domain.CardDrink:
		return f.cardResponse(CardFileDrink, nil)
	case domain.CardReview:
		return f.cardResponse(CardFileReview, reviewData{Entree: user.Lunch.Entree, Drink: user.Lunch.Drink})
	case domain.CardReviewAll:
		return f.recentOrdersCard(ctx)
	case domain.CardConfirmation:
		return f.confirmOrder(ctx, user)
	default:
		return nil, fmt.Errorf("%w: nextCardToSend=%d", domain.ErrNotImplemented, opts.NextCard)
	}
}

// confirmOrder stamps and persists the order. This is the only durable write
// in the whole flow.
func (f *OrderFlow) confirmOrder(ctx context.Context, user *domain.User) (*domain.InvokeResponse, error) {
	user.Lunch.OrderTimestamp = time.Now().UTC()
	if err := f.orders.UpsertOrder(ctx, user); err != nil {
		return nil, fmt.Errorf("confirm order: %w", err)
	}
	metrics.OrdersConfirmedTotal.Inc()
	f.log.Info().
		Str("user_id", user.ID).
		Str("entree", user.Lunch.Entree).
		Str("drink", user.Lunch.Drink).
		Msg("order confirmed")
	return f.cardResponse(CardFileConfirmation, reviewData{Entree: user.Lunch.Entree, Drink: user.Lunch.Drink})
}

// recentOrdersCard renders the read-only list of past orders with their
// timestamps converted to the display zone.
func (f *OrderFlow) recentOrdersCard(ctx context.Context) (*domain.InvokeResponse, error) {
	recent, err := f.orders.RecentOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}

	loc, err := time.LoadLocation(displayZone)
	if err != nil {
		return nil, fmt.Errorf("load display zone: %w", err)
	}

	data := recentOrdersData{Orders: make([]recentOrderEntry, 0, len(recent))}
	for _, u := range recent {
		data.Orders = append(data.Orders, recentOrderEntry{
			UserID:  u.ID,
			Entree:  u.Lunch.Entree,
			Drink:   u.Lunch.Drink,
			Ordered: u.Lunch.OrderTimestamp.In(loc).Format(displayTimeFormat),
		})
	}
	return f.cardResponse(CardFileRecentOrders, data)
}

// EntreeCard renders the card that starts a new order.
func (f *OrderFlow) EntreeCard(ctx context.Context) (json.RawMessage, error) {
	return f.cards.Render(CardFileEntree, nil)
}

// RecentOrdersDocument renders the recent-orders card for delivery outside an
// invoke response (the "recents" message shortcut).
func (f *OrderFlow) RecentOrdersDocument(ctx context.Context) (json.RawMessage, error) {
	resp, err := f.recentOrdersCard(ctx)
	if err != nil {
		return nil, err
	}
	card, ok := resp.Value.(json.RawMessage)
	if !ok {
		return nil, fmt.Errorf("recent orders: unexpected envelope value %T", resp.Value)
	}
	return card, nil
}

func (f *OrderFlow) cardResponse(name string, data any) (*domain.InvokeResponse, error) {
	card, err := f.cards.Render(name, data)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return domain.CardResponse(card), nil
}
