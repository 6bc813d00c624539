package domain

// AskRequest is a user question, optionally pinned to a domain the user picked
// after an uncertain route.
type AskRequest struct {
	ConversationID string   `json:"conversation_id,omitempty"`
	Question       string   `json:"question"`
	Domain         DomainID `json:"domain,omitempty"`
}

// AskResponse carries either an answer or a request to pick a domain.
type AskResponse struct {
	ConversationID string          `json:"conversation_id"`
	Route          RouteResult     `json:"route"`
	NeedsDomain    bool            `json:"needs_domain"`
	Choices        []DomainSummary `json:"choices,omitempty"`
	Label          string          `json:"label,omitempty"`
	Answer         string          `json:"answer,omitempty"`
	Model          string          `json:"model,omitempty"`
}

// ContextRequest asks for the assembled context without calling a model.
// When Domains is empty the question is routed first.
type ContextRequest struct {
	Question string     `json:"question"`
	Domains  []DomainID `json:"domains,omitempty"`
}

// ContextResponse is the assembled context for a question
type ContextResponse struct {
	Route   RouteResult `json:"route"`
	Label   string      `json:"label,omitempty"`
	Context string      `json:"context"`
}
