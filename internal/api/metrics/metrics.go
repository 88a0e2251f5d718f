// Package metrics defines and registers all custom Prometheus metrics for
// the lunchbot service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics self-register with the default Prometheus registry via promauto;
// importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lunchbot"

// ── Turn metrics ──────────────────────────────────────────────────────────────

// TurnsTotal counts processed activities by activity type.
// Labels:
//   - type: "message", "invoke", "conversationUpdate", or "other"
var TurnsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "turns_total",
		Help:      "Total number of inbound activities processed, by activity type.",
	},
	[]string{"type"},
)

// CardActionsTotal counts validated card actions by verb.
// Label:
//   - verb: the action verb routed to a handler (e.g. "order", "signout")
var CardActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "card_actions_total",
		Help:      "Total number of card actions dispatched, by verb.",
	},
	[]string{"verb"},
)

// InvokeErrorsTotal counts invoke turns that ended in an error envelope.
// Label:
//   - reason: "invalid_payload", "verb_not_supported", "no_pending_flow", "unknown_invoke"
var InvokeErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoke_errors_total",
		Help:      "Total number of invoke turns answered with an error envelope.",
	},
	[]string{"reason"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersConfirmedTotal counts orders persisted at the confirmation step.
var OrdersConfirmedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_confirmed_total",
		Help:      "Total number of lunch orders confirmed and persisted.",
	},
)

// CustomTextRejectedTotal counts custom entree/drink text the recognizer
// rejected.
// Label:
//   - field: "entree" or "drink"
var CustomTextRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "custom_text_rejected_total",
		Help:      "Total number of custom menu entries rejected by the recognizer.",
	},
	[]string{"field"},
)

// ── OAuth metrics ─────────────────────────────────────────────────────────────

// OAuthExchangesTotal counts token-exchange steps by flow and outcome.
// Labels:
//   - flow: "nominal" or "sso"
//   - result: "token", "continuation", or "error"
var OAuthExchangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_exchanges_total",
		Help:      "Total number of OAuth exchange steps, by flow and outcome.",
	},
	[]string{"flow", "result"},
)
