package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-insight/internal/runtime"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// chatService answers questions by routing, assembling context and calling
// the completion service. It owns the conversation history.
type chatService struct {
	router   driving.RouterService
	contexts driving.ContextService
	store    driven.ConversationStore
	services *runtime.Services // Dynamic completion service
	logger   *zap.Logger
	now      func() time.Time
}

// NewChatService creates a new ChatService.
// The completion service is read from services on every call so it can be
// swapped at runtime.
func NewChatService(
	router driving.RouterService,
	contexts driving.ContextService,
	store driven.ConversationStore,
	services *runtime.Services,
	logger *zap.Logger,
) driving.ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &chatService{
		router:   router,
		contexts: contexts,
		store:    store,
		services: services,
		logger:   logger,
		now:      time.Now,
	}
}

// Ask answers a question, or asks the caller to pick a domain when routing
// is uncertain.
func (s *chatService) Ask(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}

	route := s.router.Route(question)
	if req.Domain != "" {
		id, err := s.resolveDomain(req.Domain)
		if err != nil {
			return nil, err
		}
		route.Kind = domain.RouteSingle
		route.Domains = []domain.DomainID{id}
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	resp := &domain.AskResponse{
		ConversationID: conversationID,
		Route:          route,
	}

	if route.IsUncertain() {
		resp.NeedsDomain = true
		resp.Choices = s.router.Domains()
		return resp, nil
	}

	completion := s.services.CompletionService()
	if completion == nil {
		return nil, domain.ErrServiceUnavailable
	}

	label := route.Label()
	resp.Label = label

	contextText := s.contexts.Assemble(route.Domains, question)

	stored, err := s.store.List(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	history := domain.RecentHistory(stored, label, domain.MaxHistoryTurns)

	messages := make([]domain.ChatMessage, 0, len(history)+1)
	for _, t := range history {
		messages = append(messages, domain.ChatMessage{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: domain.UserPrompt(contextText, question),
	})

	answer, err := completion.Complete(ctx, driven.CompletionRequest{
		System:    domain.SystemPrompt(label),
		Messages:  messages,
		MaxTokens: domain.CompletionMaxTokens,
	})
	if err != nil {
		s.logger.Error("completion failed",
			zap.String("conversation_id", conversationID),
			zap.String("label", label),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrCompletionFailed, err)
	}

	resp.Answer = answer
	resp.Model = completion.Model()

	now := s.now()
	turns := []domain.Turn{
		{Role: domain.RoleUser, Content: question, Label: label, Domains: route.Domains, CreatedAt: now},
		{Role: domain.RoleAssistant, Content: answer, Label: label, Domains: route.Domains, CreatedAt: now},
	}
	for _, t := range turns {
		if err := s.store.Append(ctx, conversationID, t); err != nil {
			s.logger.Warn("failed to store conversation turn",
				zap.String("conversation_id", conversationID),
				zap.Error(err))
			break
		}
	}

	s.logger.Info("question answered",
		zap.String("conversation_id", conversationID),
		zap.String("label", label),
		zap.Int("history", len(history)),
		zap.Int("context_bytes", len(contextText)))

	return resp, nil
}

// Context returns the assembled context without calling the completion service.
func (s *chatService) Context(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}

	var route domain.RouteResult
	if len(req.Domains) > 0 {
		ids := make([]domain.DomainID, 0, len(req.Domains))
		for _, d := range req.Domains {
			id, err := s.resolveDomain(d)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		route = s.router.Route(question)
		route.Domains = ids
		route.Kind = domain.RouteSingle
		if len(ids) > 1 {
			route.Kind = domain.RouteCross
		}
	} else {
		route = s.router.Route(question)
	}

	resp := &domain.ContextResponse{Route: route}
	if route.IsUncertain() {
		return resp, nil
	}
	resp.Label = route.Label()
	resp.Context = s.contexts.Assemble(route.Domains, question)
	return resp, nil
}

// resolveDomain accepts a caller-chosen domain only when the loaded
// registry declares it.
func (s *chatService) resolveDomain(raw domain.DomainID) (domain.DomainID, error) {
	id, err := domain.ParseDomainID(string(raw))
	if err != nil {
		return "", err
	}
	for _, d := range s.router.Domains() {
		if d.ID == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not registered", domain.ErrUnknownDomain, id)
}

// History returns the stored turns of a conversation
func (s *chatService) History(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	if conversationID == "" {
		return nil, domain.ErrInvalidInput
	}
	turns, err := s.store.List(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if turns == nil {
		turns = []domain.Turn{}
	}
	return &domain.Conversation{ID: conversationID, Turns: turns}, nil
}

// Forget deletes a conversation
func (s *chatService) Forget(ctx context.Context, conversationID string) error {
	if conversationID == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, conversationID)
}
