package domain

import "net/http"

// Content type tags carried in the Type field of an InvokeResponse. The set
// is fixed by the channel protocol and must not be extended.
const (
	ContentTypeMessage      = "application/vnd.microsoft.activity.message"
	ContentTypeCard         = "application/vnd.microsoft.card.adaptive"
	ContentTypeLoginRequest = "application/vnd.microsoft.activity.loginRequest"
	ContentTypeRetryAfter   = "application/vnd.microsoft.activity.retryAfter"
	ContentTypeError        = "application/vnd.microsoft.error"
)

// InvokeResponse is the wire envelope returned for every invoke activity.
type InvokeResponse struct {
	StatusCode int    `json:"statusCode"`
	Type       string `json:"type"`
	Value      any    `json:"value,omitempty"`
}

// InvokeError is the value carried by error-typed envelopes.
type InvokeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LoginRequest is the value carried by loginRequest envelopes.
type LoginRequest struct {
	LoginURL string `json:"loginUrl"`
}

// MessageResponse returns a 200 envelope carrying a plain message string.
func MessageResponse(text string) *InvokeResponse {
	return &InvokeResponse{StatusCode: http.StatusOK, Type: ContentTypeMessage, Value: text}
}

// CardResponse returns a 200 envelope carrying a rendered card document.
func CardResponse(card any) *InvokeResponse {
	return &InvokeResponse{StatusCode: http.StatusOK, Type: ContentTypeCard, Value: card}
}

// LoginRequestResponse returns a 401 envelope asking the client to sign in.
func LoginRequestResponse(loginURL string) *InvokeResponse {
	return &InvokeResponse{
		StatusCode: http.StatusUnauthorized,
		Type:       ContentTypeLoginRequest,
		Value:      LoginRequest{LoginURL: loginURL},
	}
}

// ThrottleResponse returns a 429 envelope telling the client to retry after
// the given number of seconds.
func ThrottleResponse(retryAfterSeconds int) *InvokeResponse {
	return &InvokeResponse{
		StatusCode: http.StatusTooManyRequests,
		Type:       ContentTypeRetryAfter,
		Value:      retryAfterSeconds,
	}
}

// ClientErrorResponse returns a 4xx error envelope. status must be in the
// 400 range; code is the protocol-level error code string.
func ClientErrorResponse(status int, code, message string) *InvokeResponse {
	return &InvokeResponse{
		StatusCode: status,
		Type:       ContentTypeError,
		Value:      InvokeError{Code: code, Message: message},
	}
}

// ServerErrorResponse returns a 5xx error envelope.
func ServerErrorResponse(status int, code, message string) *InvokeResponse {
	return &InvokeResponse{
		StatusCode: status,
		Type:       ContentTypeError,
		Value:      InvokeError{Code: code, Message: message},
	}
}

// TeapotResponse returns the canonical 418 envelope used by the err demo verb.
func TeapotResponse() *InvokeResponse {
	return ClientErrorResponse(http.StatusTeapot, "418", "I am a little teapot.")
}
