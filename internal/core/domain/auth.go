package domain

// AuthState tracks which sign-in flow, if any, is waiting for its
// continuation invoke. A single tagged state replaces independent per-flow
// booleans so the two flows cannot both be pending at once.
type AuthState string

const (
	AuthIdle           AuthState = "idle"
	AuthPendingNominal AuthState = "pending_nominal"
	AuthPendingSSO     AuthState = "pending_sso"
)
