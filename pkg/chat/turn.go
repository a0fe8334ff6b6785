package chat

// Role of a conversation participant as stored in an interview transcript.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of an interview chat history. Order matters: generators
// consume the whole ordered slice as conversational context.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func User(content string) Turn { return Turn{Role: RoleUser, Content: content} }

func Assistant(content string) Turn { return Turn{Role: RoleAssistant, Content: content} }
