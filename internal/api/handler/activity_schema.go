package handler

import "encoding/json"

// accountPayload is one conversation participant on the wire.
type accountPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// conversationPayload identifies the conversation an activity belongs to.
type conversationPayload struct {
	ID string `json:"id"`
}

// activityRequest is the inbound activity envelope posted by the channel
// service. Value stays raw; the core decodes it per activity kind.
type activityRequest struct {
	Type         string              `json:"type" validate:"required,max=64"`
	ID           string              `json:"id"`
	ChannelID    string              `json:"channelId"`
	Name         string              `json:"name"`
	Text         string              `json:"text"`
	From         accountPayload      `json:"from"`
	Recipient    accountPayload      `json:"recipient"`
	Conversation conversationPayload `json:"conversation"`
	MembersAdded []accountPayload    `json:"membersAdded"`
	Value        json.RawMessage     `json:"value"`
}
