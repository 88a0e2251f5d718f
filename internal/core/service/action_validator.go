package service

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cateringworks/lunchbot/internal/core/domain"
)

// Verbs the card templates are allowed to emit.
const (
	VerbNext         = "next"
	VerbBack         = "back"
	VerbOrder        = "order"
	VerbErr          = "err"
	VerbNominalOAuth = "nominal-oauth"
	VerbSSOOAuth     = "sso-oauth"
	VerbSignout      = "signout"
)

var supportedVerbs = map[string]struct{}{
	VerbNext:         {},
	VerbBack:         {},
	VerbOrder:        {},
	VerbErr:          {},
	VerbNominalOAuth: {},
	VerbSSOOAuth:     {},
	VerbSignout:      {},
}

// ValidatedAction is the typed result of a successful parse: the verb, the
// decoded card options, and any SSO material attached to the invoke.
type ValidatedAction struct {
	Verb           string
	Options        domain.CardOptions
	Authentication *domain.InvokeAuthentication
}

// rawCardOptions mirrors the loose wire shape of the action data. The enum
// fields are pointers so that absent values are distinguishable from zero;
// both map to a sentinel the handlers reject explicitly instead of crashing.
type rawCardOptions struct {
	CurrentCard    *int   `json:"currentCard"`
	NextCardToSend *int   `json:"nextCardToSend"`
	Option         string `json:"option" validate:"omitempty,max=256"`
	Custom         string `json:"custom" validate:"omitempty,max=256"`
}

// ActionValidator parses an inbound invoke value into a ValidatedAction or
// fails with a classified error (domain.ErrInvalidPayload or
// domain.ErrVerbNotSupported). It has no dependencies beyond the payload.
type ActionValidator struct {
	v *validator.Validate
}

func NewActionValidator() *ActionValidator {
	return &ActionValidator{v: validator.New()}
}

// Validate decodes the raw invoke value. The decode fails closed: malformed
// data is an error, never a silently defaulted struct. Unknown numeric enum
// values are the one sanctioned exception: they decode to the Unhandled
// sentinel so that downstream dispatch can reject them as NotImplemented.
func (av *ActionValidator) Validate(raw json.RawMessage) (*ValidatedAction, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing invoke value", domain.ErrInvalidPayload)
	}

	var value domain.InvokeValue
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if value.Action == nil || len(value.Action.Data) == 0 || string(value.Action.Data) == "null" {
		return nil, fmt.Errorf("%w: action data is absent", domain.ErrInvalidPayload)
	}

	verb := value.Action.Verb
	if _, ok := supportedVerbs[verb]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrVerbNotSupported, verb)
	}

	var opts rawCardOptions
	if err := json.Unmarshal(value.Action.Data, &opts); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if err := av.v.Struct(&opts); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	return &ValidatedAction{
		Verb: verb,
		Options: domain.CardOptions{
			CurrentCard: domain.CardStepFromWire(opts.CurrentCard),
			NextCard:    domain.NextCardFromWire(opts.NextCardToSend),
			Option:      opts.Option,
			Custom:      opts.Custom,
		},
		Authentication: value.Authentication,
	}, nil
}
