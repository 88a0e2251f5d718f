package domain

// CardStep identifies the card the user was looking at when an action was
// submitted. The numeric values are part of the wire contract with the card
// templates and must stay stable.
type CardStep int

const (
	StepEntree CardStep = iota
	StepDrink
	StepReview
	StepReviewAll
	StepConfirmation
	StepOkWithString
	StepOkWithCard
	StepLoginRequest
	StepThrottleWarning
	StepTeapot
	StepError
	StepErrMenu

	// StepUnhandled is the sentinel for missing or out-of-range values.
	// Handlers reject it explicitly rather than guessing a step.
	StepUnhandled CardStep = -1
)

// NextCard identifies the card a card action asks the server to render next.
// It deliberately mirrors CardStep's member set but is a distinct type: the
// current step and the requested transition are different roles and must not
// be mixed up.
type NextCard int

const (
	CardEntree NextCard = iota
	CardDrink
	CardReview
	CardReviewAll
	CardConfirmation
	CardOkWithString
	CardOkWithCard
	CardLoginRequest
	CardThrottleWarning
	CardTeapot
	CardError
	CardErrMenu

	CardUnhandled NextCard = -1
)

// minCardValue and maxCardValue bound the valid wire values (inclusive).
const (
	minCardValue = 0
	maxCardValue = 11
)

// CardStepFromWire converts a raw numeric wire value into a CardStep,
// mapping anything outside the closed set to StepUnhandled.
func CardStepFromWire(v *int) CardStep {
	if v == nil || *v < minCardValue || *v > maxCardValue {
		return StepUnhandled
	}
	return CardStep(*v)
}

// NextCardFromWire converts a raw numeric wire value into a NextCard,
// mapping anything outside the closed set to CardUnhandled.
func NextCardFromWire(v *int) NextCard {
	if v == nil || *v < minCardValue || *v > maxCardValue {
		return CardUnhandled
	}
	return NextCard(*v)
}

// CardOptions is the validated payload of a card action: where the user was,
// where the card wants to go, and what they picked.
type CardOptions struct {
	CurrentCard CardStep
	NextCard    NextCard
	// Option is the effective selection (a known menu item).
	Option string
	// Custom is free text typed by the user instead of picking an option.
	// Non-empty custom text must pass recognizer validation before it may
	// become the effective option.
	Custom string
}
