package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// GenerationOptions tunes a single completion. A zero MaxTokens and a nil
// Temperature are not sent, leaving the remote side's defaults in place.
// An explicit temperature of 0 is sent.
type GenerationOptions struct {
	MaxTokens   int
	Temperature *float64
}

// Float64 returns a pointer to v, for optional settings such as Temperature.
func Float64(v float64) *float64 { return &v }

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model    string
	Messages []Message
	GenerationOptions
}

// CompletionResponse contains the result of an LLM completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
