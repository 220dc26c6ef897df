package outbound

import "context"

// Schema describes the JSON shape the model is constrained to emit, in the
// structured-output vocabulary the hosted model understands.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Schema type names used by the structured-output API.
const (
	SchemaTypeArray  = "ARRAY"
	SchemaTypeObject = "OBJECT"
	SchemaTypeString = "STRING"
)

// ChatTurn is one turn of a conversation sent to the model.
type ChatTurn struct {
	Role string // "user" or "model"
	Text string
}

// Chat turn roles.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ModelClient is the transport to the hosted generative model. Both call
// shapes are single attempts: the client classifies transport failures into
// the AI error categories but never retries.
type ModelClient interface {
	// GenerateStructured performs a single-turn generation constrained to
	// the given JSON schema and returns the raw response text.
	GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error)

	// Chat sends one user message on top of an existing transcript, with a
	// fixed persona system instruction, and returns the model's plain-text
	// reply.
	Chat(ctx context.Context, systemInstruction string, history []ChatTurn, message string) (string, error)
}
