package domain

import "errors"

var (
	// ErrInvalidPayload means a card-action invoke arrived without action
	// data, or with data that cannot be decoded.
	ErrInvalidPayload = errors.New("invalid action payload")

	// ErrVerbNotSupported means the action verb matches no handler.
	ErrVerbNotSupported = errors.New("action verb not supported")

	// ErrNotImplemented means a card requested a transition the server does
	// not implement. This is an authoring defect in the card template and is
	// deliberately loud: it fails the turn instead of being mapped to a
	// friendly envelope.
	ErrNotImplemented = errors.New("requested card transition not implemented")
)
