package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cateringworks/lunchbot/internal/core/domain"
	"github.com/cateringworks/lunchbot/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub collaborators shared by the service tests
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubStateStore struct {
	user         *domain.User
	auth         domain.AuthState
	setUserCalls int
	authWrites   []domain.AuthState
	flushCalls   int
	flushErr     error
}

func (s *stubStateStore) User(_ context.Context, scope ports.Scope) (*domain.User, error) {
	if s.user == nil {
		s.user = &domain.User{ID: scope.UserID}
	}
	return s.user, nil
}

func (s *stubStateStore) SetUser(_ context.Context, _ ports.Scope, user *domain.User) error {
	s.user = user
	s.setUserCalls++
	return nil
}

func (s *stubStateStore) AuthState(_ context.Context, _ ports.Scope) (domain.AuthState, error) {
	if s.auth == "" {
		return domain.AuthIdle, nil
	}
	return s.auth, nil
}

func (s *stubStateStore) SetAuthState(_ context.Context, _ ports.Scope, state domain.AuthState) error {
	s.auth = state
	s.authWrites = append(s.authWrites, state)
	return nil
}

func (s *stubStateStore) Flush(_ context.Context, _ ports.Scope) error {
	s.flushCalls++
	return s.flushErr
}

type stubTokenProvider struct {
	beginResult    *ports.ExchangeResult
	beginErr       error
	completeResult *ports.ExchangeResult
	completeErr    error
	signOutResp    *domain.InvokeResponse
	signOutErr     error

	beginCalls    int
	completeCalls int
	signOutCalls  int
}

func (p *stubTokenProvider) Begin(_ context.Context, _ ports.Scope) (*ports.ExchangeResult, error) {
	p.beginCalls++
	return p.beginResult, p.beginErr
}

func (p *stubTokenProvider) Complete(_ context.Context, _ ports.Scope) (*ports.ExchangeResult, error) {
	p.completeCalls++
	return p.completeResult, p.completeErr
}

func (p *stubTokenProvider) SignOut(_ context.Context, _ ports.Scope) (*domain.InvokeResponse, error) {
	p.signOutCalls++
	return p.signOutResp, p.signOutErr
}

type stubOrderRepo struct {
	recent      []domain.User
	recentErr   error
	upserts     []domain.User
	upsertErr   error
	recentCalls int
}

func (r *stubOrderRepo) RecentOrders(_ context.Context) ([]domain.User, error) {
	r.recentCalls++
	if r.recentErr != nil {
		return nil, r.recentErr
	}
	return r.recent, nil
}

func (r *stubOrderRepo) UpsertOrder(_ context.Context, user *domain.User) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts = append(r.upserts, *user)
	return nil
}

type stubRecognizer struct {
	entreeOK       bool
	drinkOK        bool
	lastEntreeText string
	lastDrinkText  string
}

func (r *stubRecognizer) ValidateEntree(_ context.Context, text string) bool {
	r.lastEntreeText = text
	return r.entreeOK
}

func (r *stubRecognizer) ValidateDrink(_ context.Context, text string) bool {
	r.lastDrinkText = text
	return r.drinkOK
}

// stubCardStore renders a predictable document embedding the template name,
// so tests can tell which card was selected.
type stubCardStore struct {
	renderErr error
	rendered  []string
}

func (s *stubCardStore) Load(name string) (json.RawMessage, error) {
	return s.Render(name, nil)
}

func (s *stubCardStore) Render(name string, _ any) (json.RawMessage, error) {
	if s.renderErr != nil {
		return nil, s.renderErr
	}
	s.rendered = append(s.rendered, name)
	return json.RawMessage(fmt.Sprintf(`{"template":%q}`, name)), nil
}

type stubSender struct {
	texts   []string
	cards   []json.RawMessage
	sendErr error
}

func (s *stubSender) SendText(_ context.Context, _ ports.Scope, text string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.texts = append(s.texts, text)
	return nil
}

func (s *stubSender) SendCard(_ context.Context, _ ports.Scope, card json.RawMessage) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.cards = append(s.cards, card)
	return nil
}

// cardTemplate extracts the template name a stubCardStore response carries.
func cardTemplate(resp *domain.InvokeResponse) string {
	raw, ok := resp.Value.(json.RawMessage)
	if !ok {
		return ""
	}
	var doc struct {
		Template string `json:"template"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	return doc.Template
}
