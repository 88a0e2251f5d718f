package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cateringworks/lunchbot/internal/api/metrics"
	"github.com/cateringworks/lunchbot/internal/core/domain"
	"github.com/cateringworks/lunchbot/internal/core/ports"
)

const (
	flowNominal = "nominal"
	flowSSO     = "sso"
)

// OAuthCoordinator runs the two named sign-in flows. Each flow has its own
// immutable TokenProvider identity; which flow is waiting for a continuation
// is tracked per user as a single tagged state in the conversation store.
type OAuthCoordinator struct {
	nominal ports.TokenProvider
	sso     ports.TokenProvider
	state   ports.StateStore
	log     zerolog.Logger
}

func NewOAuthCoordinator(nominal, sso ports.TokenProvider, state ports.StateStore, log zerolog.Logger) *OAuthCoordinator {
	return &OAuthCoordinator{nominal: nominal, sso: sso, state: state, log: log}
}

// StartNominal begins the platform-redirect sign-in flow. The pending tag is
// written before the provider call so a continuation arriving on the next
// turn finds it.
func (c *OAuthCoordinator) StartNominal(ctx context.Context, scope ports.Scope) (*domain.InvokeResponse, error) {
	if err := c.state.SetAuthState(ctx, scope, domain.AuthPendingNominal); err != nil {
		return nil, err
	}
	return c.begin(ctx, scope, c.nominal, flowNominal)
}

// StartSSO begins the single-sign-on flow. When the invoke already carries an
// exchangeable token the flow completes in the same turn without ever going
// pending.
func (c *OAuthCoordinator) StartSSO(ctx context.Context, scope ports.Scope, auth *domain.InvokeAuthentication) (*domain.InvokeResponse, error) {
	if auth != nil && auth.Token != "" {
		if err := c.state.SetAuthState(ctx, scope, domain.AuthIdle); err != nil {
			return nil, err
		}
		result, err := c.sso.Complete(ctx, scope)
		if err != nil {
			metrics.OAuthExchangesTotal.WithLabelValues(flowSSO, "error").Inc()
			return nil, err
		}
		if result.Response != nil {
			metrics.OAuthExchangesTotal.WithLabelValues(flowSSO, "continuation").Inc()
			return result.Response, nil
		}
		metrics.OAuthExchangesTotal.WithLabelValues(flowSSO, "token").Inc()
		c.log.Info().Str("flow", flowSSO).Msg("sso token exchange completed in-turn")
		return domain.MessageResponse(
			fmt.Sprintf("Completed SSO token exchange and now have a user token: %s", result.Token)), nil
	}

	if err := c.state.SetAuthState(ctx, scope, domain.AuthPendingSSO); err != nil {
		return nil, err
	}
	return c.begin(ctx, scope, c.sso, flowSSO)
}

// begin runs the provider's begin step. An immediate token resolves the flow
// and resets the tag; a continuation envelope leaves the flow pending.
func (c *OAuthCoordinator) begin(ctx context.Context, scope ports.Scope, provider ports.TokenProvider, flow string) (*domain.InvokeResponse, error) {
	result, err := provider.Begin(ctx, scope)
	if err != nil {
		metrics.OAuthExchangesTotal.WithLabelValues(flow, "error").Inc()
		return nil, err
	}
	if result.Response != nil {
		metrics.OAuthExchangesTotal.WithLabelValues(flow, "continuation").Inc()
		return result.Response, nil
	}

	if err := c.state.SetAuthState(ctx, scope, domain.AuthIdle); err != nil {
		return nil, err
	}
	metrics.OAuthExchangesTotal.WithLabelValues(flow, "token").Inc()
	c.log.Info().Str("flow", flow).Msg("token received without continuation")
	return domain.MessageResponse(
		fmt.Sprintf("Received a token right away for %s oauth: %s", flow, result.Token)), nil
}

// Continue consumes an OAuth continuation invoke. The pending tag decides
// which flow the round-trip belongs to; it is cleared before the provider
// call so a failed completion does not leave the flow stuck pending.
func (c *OAuthCoordinator) Continue(ctx context.Context, scope ports.Scope, invokeName string) (*domain.InvokeResponse, error) {
	pending, err := c.state.AuthState(ctx, scope)
	if err != nil {
		return nil, err
	}

	var (
		provider ports.TokenProvider
		flow     string
	)
	switch pending {
	case domain.AuthPendingNominal:
		provider, flow = c.nominal, flowNominal
	case domain.AuthPendingSSO:
		provider, flow = c.sso, flowSSO
	default:
		metrics.InvokeErrorsTotal.WithLabelValues("no_pending_flow").Inc()
		return domain.ClientErrorResponse(http.StatusBadRequest, "400",
			fmt.Sprintf("Received an invoke with name %s but not as a result of a loginRequest", invokeName)), nil
	}

	if err := c.state.SetAuthState(ctx, scope, domain.AuthIdle); err != nil {
		return nil, err
	}

	result, err := provider.Complete(ctx, scope)
	if err != nil {
		metrics.OAuthExchangesTotal.WithLabelValues(flow, "error").Inc()
		return nil, err
	}
	if result.Response != nil {
		metrics.OAuthExchangesTotal.WithLabelValues(flow, "continuation").Inc()
		return result.Response, nil
	}
	metrics.OAuthExchangesTotal.WithLabelValues(flow, "token").Inc()
	c.log.Info().Str("flow", flow).Msg("oauth continuation produced a token")
	return domain.MessageResponse(
		fmt.Sprintf("Received a token for %s oauth: %s", flow, result.Token)), nil
}

// SignOut revokes tokens on both identities unconditionally: the pending tag
// can be stale, so neither identity may be skipped. The nominal identity goes
// first; the SSO identity's response is the one returned.
func (c *OAuthCoordinator) SignOut(ctx context.Context, scope ports.Scope) (*domain.InvokeResponse, error) {
	if _, err := c.nominal.SignOut(ctx, scope); err != nil {
		return nil, err
	}
	resp, err := c.sso.SignOut(ctx, scope)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
