package domain

import "encoding/json"

// Activity types delivered by the channel service.
const (
	ActivityMessage            = "message"
	ActivityInvoke             = "invoke"
	ActivityConversationUpdate = "conversationUpdate"
)

// Invoke names the dispatcher recognizes. InvokeVerifyState and
// InvokeTokenExchange are the OAuth continuation round-trips; everything the
// card templates emit arrives under InvokeCardAction.
const (
	InvokeCardAction    = "adaptiveCard/action"
	InvokeVerifyState   = "signin/verifyState"
	InvokeTokenExchange = "signin/tokenExchange"
)

// ChannelAccount identifies one participant in a conversation.
type ChannelAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ConversationAccount identifies the conversation an activity belongs to.
type ConversationAccount struct {
	ID string `json:"id"`
}

// Activity is one inbound unit of conversation: a message, an invoke, or a
// membership event. Only the fields the dispatcher reads are modeled.
type Activity struct {
	Type         string              `json:"type"`
	ID           string              `json:"id,omitempty"`
	ChannelID    string              `json:"channelId,omitempty"`
	Name         string              `json:"name,omitempty"`
	Text         string              `json:"text,omitempty"`
	From         ChannelAccount      `json:"from"`
	Recipient    ChannelAccount      `json:"recipient"`
	Conversation ConversationAccount `json:"conversation"`
	MembersAdded []ChannelAccount    `json:"membersAdded,omitempty"`
	Value        json.RawMessage     `json:"value,omitempty"`
}

// IsOAuthContinuation reports whether this invoke is the platform delivering
// an OAuth round-trip rather than a card action. The distinction is by invoke
// name, not by verb.
func (a *Activity) IsOAuthContinuation() bool {
	return a.Type == ActivityInvoke &&
		(a.Name == InvokeVerifyState || a.Name == InvokeTokenExchange)
}

// IsCardAction reports whether this invoke carries an adaptive card action.
func (a *Activity) IsCardAction() bool {
	return a.Type == ActivityInvoke && a.Name == InvokeCardAction
}

// InvokeAction is the action block inside a card-action invoke value.
type InvokeAction struct {
	Type string          `json:"type"`
	Verb string          `json:"verb"`
	Data json.RawMessage `json:"data,omitempty"`
}

// InvokeAuthentication carries the SSO token exchange material attached to a
// card-action invoke when the client already holds an exchangeable token.
type InvokeAuthentication struct {
	ID             string `json:"id,omitempty"`
	ConnectionName string `json:"connectionName,omitempty"`
	Token          string `json:"token,omitempty"`
}

// InvokeValue is the value of an adaptiveCard/action invoke.
type InvokeValue struct {
	Action         *InvokeAction         `json:"action,omitempty"`
	Authentication *InvokeAuthentication `json:"authentication,omitempty"`
}
