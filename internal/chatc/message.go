package chatc

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation
type Message struct {
	Role Role   `json:"role"` // "user" or "assistant"
	Text string `json:"text"` // Message text
}

// UserMessage returns a user-role message with the given text.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// AssistantMessage returns an assistant-role message with the given text.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Text: text}
}

// Label returns the display label for the message author.
func (m Message) Label() string {
	if m.Role == RoleAssistant {
		return "Assistant"
	}
	return "You"
}
