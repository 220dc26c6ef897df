package inbound

import "context"

// SuggestCommand carries the inputs of an ingredient-based suggestion
// request.
type SuggestCommand struct {
	Ingredients string
	Category    string
	Count       int
	Strictness  string
}

// Suggestion is one generated recipe idea.
type Suggestion struct {
	RecipeName   string   `json:"recipeName"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// SuggestionService generates recipe suggestions from a free-text
// ingredient list.
type SuggestionService interface {
	Suggest(ctx context.Context, cmd SuggestCommand) ([]Suggestion, error)
}

// ChatMessage is one turn of an assistant conversation as seen by the
// client.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// ChatService manages per-user assistant conversations. Send never fails
// on transport problems; those surface as assistant-authored apology
// turns in the transcript.
type ChatService interface {
	// Send appends the user message and the assistant's reply to the
	// conversation for uid and returns the reply.
	Send(ctx context.Context, uid, message string) (*ChatMessage, error)

	// Transcript returns a copy of the conversation so far.
	Transcript(uid string) []ChatMessage

	// Reset discards the conversation for uid.
	Reset(uid string)
}
