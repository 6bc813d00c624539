package domain

import "time"

// MaxHistoryTurns is the number of prior turns forwarded to the completion service.
const MaxHistoryTurns = 6

// Role identifies the speaker of a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid reports whether the role can be forwarded to a completion service
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is one message of a conversation, attributed to the label (a domain
// identifier or CrossLabel) and the domains it was answered from.
type Turn struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Label     string     `json:"label"`
	Domains   []DomainID `json:"domains,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// AttributedTo reports whether the turn belongs to the given label, either
// directly or because its domain list contains it.
func (t Turn) AttributedTo(label string) bool {
	if t.Label == label {
		return true
	}
	for _, d := range t.Domains {
		if string(d) == label {
			return true
		}
	}
	return false
}

// RecentHistory returns the last max turns attributed to label, oldest first.
// Turns with roles other than user and assistant are dropped.
func RecentHistory(turns []Turn, label string, max int) []Turn {
	if max <= 0 {
		return nil
	}
	filtered := make([]Turn, 0, len(turns))
	for _, t := range turns {
		if t.Role.IsValid() && t.AttributedTo(label) {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) > max {
		filtered = filtered[len(filtered)-max:]
	}
	return filtered
}

// Conversation is the stored turn list of one chat session
type Conversation struct {
	ID    string `json:"id"`
	Turns []Turn `json:"turns"`
}

// ChatMessage is a role/content pair sent to the completion service
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
