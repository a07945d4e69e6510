package models

import "time"

// Conversation is one chat thread as recorded by the backend.
type Conversation struct {
	// ID is the backend-assigned conversation identifier.
	ID string `json:"id"`
	// Title is the conversation display title.
	Title string `json:"title"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ConversationPage is one page of a conversation listing.
type ConversationPage struct {
	// Items holds the conversations on this page.
	Items []Conversation `json:"items"`
	// Page is the 1-based page number.
	Page int `json:"page"`
	// HasNext reports whether another page follows.
	HasNext bool `json:"has_next"`
}

// Message is one chat message within a conversation.
type Message struct {
	// ID is the backend-assigned message identifier.
	ID string `json:"id"`
	// ConversationID identifies the owning conversation.
	ConversationID string `json:"conversation_id"`
	// Role is the author role ("user" or "assistant").
	Role string `json:"role"`
	// Content is the message text, including any tagged artifact blocks.
	Content string `json:"content"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// StreamEnvelope is one line of a streaming send-message response. The
// consumer accumulates Message fields in arrival order into one growing
// text buffer.
type StreamEnvelope struct {
	// Status is the producer-reported phase ("streaming", "done", ...).
	Status string `json:"status"`
	// Message is the text delta carried by this envelope.
	Message string `json:"message"`
	// ConversationID identifies the owning conversation.
	ConversationID string `json:"conversationId"`
	// MessageID identifies the assistant message being streamed.
	MessageID string `json:"messageId"`
}
