package ports

import (
	"context"
	"encoding/json"
)

// ActivitySender delivers outbound activities to the conversation, outside
// the invoke request/response cycle (welcome messages, card replies to plain
// messages).
type ActivitySender interface {
	SendText(ctx context.Context, scope Scope, text string) error
	SendCard(ctx context.Context, scope Scope, card json.RawMessage) error
}
