package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/cateringworks/lunchbot/internal/core/domain"
)

func actionPayload(verb string, data string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"action":{"type":"Action.Execute","verb":%q,"data":%s}}`, verb, data))
}

func TestActionValidator_SupportedVerbsParse(t *testing.T) {
	av := NewActionValidator()

	verbs := []string{"next", "back", "order", "err", "nominal-oauth", "sso-oauth", "signout"}
	for _, verb := range verbs {
		action, err := av.Validate(actionPayload(verb, `{"currentCard":0,"nextCardToSend":1,"option":"Chicken"}`))
		if err != nil {
			t.Fatalf("verb %q: unexpected error: %v", verb, err)
		}
		if action.Verb != verb {
			t.Errorf("verb %q: parsed as %q", verb, action.Verb)
		}
	}
}

func TestActionValidator_UnknownVerb(t *testing.T) {
	av := NewActionValidator()

	_, err := av.Validate(actionPayload("reboot", `{}`))
	if !errors.Is(err, domain.ErrVerbNotSupported) {
		t.Fatalf("expected ErrVerbNotSupported, got %v", err)
	}
	// The failure must carry the offending verb for the error envelope.
	if got := err.Error(); got == domain.ErrVerbNotSupported.Error() {
		t.Errorf("error lacks verb context: %q", got)
	}
}

func TestActionValidator_MissingActionData(t *testing.T) {
	av := NewActionValidator()

	cases := []struct {
		name string
		raw  string
	}{
		{"no value", ""},
		{"no action", `{}`},
		{"null data", `{"action":{"verb":"order","data":null}}`},
		{"absent data", `{"action":{"verb":"order"}}`},
	}
	for _, tc := range cases {
		_, err := av.Validate(json.RawMessage(tc.raw))
		if !errors.Is(err, domain.ErrInvalidPayload) {
			t.Errorf("%s: expected ErrInvalidPayload, got %v", tc.name, err)
		}
	}
}

func TestActionValidator_MalformedDataFailsClosed(t *testing.T) {
	av := NewActionValidator()

	_, err := av.Validate(actionPayload("order", `{"currentCard":"entree"}`))
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for non-numeric enum, got %v", err)
	}
}

func TestActionValidator_MissingEnumsBecomeUnhandled(t *testing.T) {
	av := NewActionValidator()

	action, err := av.Validate(actionPayload("order", `{"option":"Chicken"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.Options.CurrentCard != domain.StepUnhandled {
		t.Errorf("currentCard: expected StepUnhandled, got %d", action.Options.CurrentCard)
	}
	if action.Options.NextCard != domain.CardUnhandled {
		t.Errorf("nextCardToSend: expected CardUnhandled, got %d", action.Options.NextCard)
	}
}

func TestActionValidator_OutOfRangeEnumsBecomeUnhandled(t *testing.T) {
	av := NewActionValidator()

	action, err := av.Validate(actionPayload("order", `{"currentCard":99,"nextCardToSend":-3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.Options.CurrentCard != domain.StepUnhandled {
		t.Errorf("currentCard 99: expected StepUnhandled, got %d", action.Options.CurrentCard)
	}
	if action.Options.NextCard != domain.CardUnhandled {
		t.Errorf("nextCardToSend -3: expected CardUnhandled, got %d", action.Options.NextCard)
	}
}

func TestActionValidator_MapsFields(t *testing.T) {
	av := NewActionValidator()

	action, err := av.Validate(actionPayload("order",
		`{"currentCard":0,"nextCardToSend":1,"option":"Sandwich","custom":"Tofu Bowl"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.Options.CurrentCard != domain.StepEntree {
		t.Errorf("currentCard: expected StepEntree, got %d", action.Options.CurrentCard)
	}
	if action.Options.NextCard != domain.CardDrink {
		t.Errorf("nextCardToSend: expected CardDrink, got %d", action.Options.NextCard)
	}
	if action.Options.Option != "Sandwich" {
		t.Errorf("option: got %q", action.Options.Option)
	}
	if action.Options.Custom != "Tofu Bowl" {
		t.Errorf("custom: got %q", action.Options.Custom)
	}
}

func TestActionValidator_CarriesAuthentication(t *testing.T) {
	av := NewActionValidator()

	raw := json.RawMessage(`{
		"action":{"verb":"sso-oauth","data":{}},
		"authentication":{"connectionName":"BotApp","token":"exchange-token"}
	}`)
	action, err := av.Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.Authentication == nil || action.Authentication.Token != "exchange-token" {
		t.Errorf("authentication not carried through: %+v", action.Authentication)
	}
}

func TestActionValidator_OversizedOptionRejected(t *testing.T) {
	av := NewActionValidator()

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	_, err := av.Validate(actionPayload("order", fmt.Sprintf(`{"option":%q}`, long)))
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for oversized option, got %v", err)
	}
}
