package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

// Mock services for testing

type mockAuthService struct {
	validateTokenFn  func(ctx context.Context, token string) (*domain.AuthContext, error)
	validateAPIKeyFn func(ctx context.Context, key string) (*domain.AuthContext, error)
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *mockAuthService) ValidateAPIKey(ctx context.Context, key string) (*domain.AuthContext, error) {
	if m.validateAPIKeyFn != nil {
		return m.validateAPIKeyFn(ctx, key)
	}
	return nil, domain.ErrUnauthorized
}

type mockRouterService struct {
	routeFn func(question string) domain.RouteResult
}

func (m *mockRouterService) Route(question string) domain.RouteResult {
	if m.routeFn != nil {
		return m.routeFn(question)
	}
	return domain.RouteResult{Kind: domain.RouteUncertain, Domains: []domain.DomainID{}, Scores: map[domain.DomainID]int{}}
}

func (m *mockRouterService) Domains() []domain.DomainSummary {
	return []domain.DomainSummary{
		{ID: domain.DomainSales, Name: "Sales Agent"},
		{ID: domain.DomainHR, Name: "HR Agent"},
	}
}

type mockChatService struct {
	askFn     func(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error)
	contextFn func(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error)
	historyFn func(ctx context.Context, id string) (*domain.Conversation, error)
	forgetFn  func(ctx context.Context, id string) error
}

func (m *mockChatService) Ask(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error) {
	if m.askFn != nil {
		return m.askFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockChatService) Context(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error) {
	if m.contextFn != nil {
		return m.contextFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockChatService) History(ctx context.Context, id string) (*domain.Conversation, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockChatService) Forget(ctx context.Context, id string) error {
	if m.forgetFn != nil {
		return m.forgetFn(ctx, id)
	}
	return errors.New("not implemented")
}

type mockDatasetService struct {
	browseFn func(name, query string, page, perPage int) (*domain.BrowseResult, error)
}

func (m *mockDatasetService) ListTables() []domain.TableInfo {
	return []domain.TableInfo{{Name: "orders", Records: 3}, {Name: "employees", Records: 2}}
}

func (m *mockDatasetService) Browse(name, query string, page, perPage int) (*domain.BrowseResult, error) {
	if m.browseFn != nil {
		return m.browseFn(name, query, page, perPage)
	}
	return nil, domain.ErrNotFound
}

type testServer struct {
	server   *Server
	router   *mockRouterService
	chat     *mockChatService
	datasets *mockDatasetService
	checks   map[string]Pinger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		router:   &mockRouterService{},
		chat:     &mockChatService{},
		datasets: &mockDatasetService{},
		checks:   map[string]Pinger{},
	}
	cfg := DefaultConfig()
	cfg.Version = "1.2.3"
	cfg.AuthDisabled = true
	ts.server = NewServer(cfg, &mockAuthService{}, ts.router, ts.chat, ts.datasets, ts.checks, nil)
	return ts
}

func (ts *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do("GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[StatusResponse](t, rec).Status)
}

func TestHandleVersion(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do("GET", "/version", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.3", decodeBody[VersionResponse](t, rec).Version)
}

func TestHandleReady(t *testing.T) {
	t.Run("all components ok", func(t *testing.T) {
		ts := newTestServer(t)
		ts.checks["store"] = PingFunc(func(ctx context.Context) error { return nil })

		rec := ts.do("GET", "/ready", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[ReadyResponse](t, rec)
		assert.Equal(t, "ready", resp.Status)
		assert.Equal(t, "ok", resp.Components["store"])
	})

	t.Run("failing component", func(t *testing.T) {
		ts := newTestServer(t)
		ts.checks["store"] = PingFunc(func(ctx context.Context) error { return nil })
		ts.checks["dataset"] = PingFunc(func(ctx context.Context) error { return errors.New("no tables loaded") })

		rec := ts.do("GET", "/ready", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decodeBody[ReadyResponse](t, rec)
		assert.Equal(t, "not ready", resp.Status)
		assert.Equal(t, "no tables loaded", resp.Components["dataset"])
		assert.Equal(t, "ok", resp.Components["store"])
	})
}

func TestHandleSwaggerDoc(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do("GET", "/swagger/doc.json", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/chat")
	assert.Contains(t, paths, "/datasets/{name}")
}

func TestHandleListDomains(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do("GET", "/api/v1/domains", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[DomainsResponse](t, rec)
	require.Len(t, resp.Domains, 2)
	assert.Equal(t, domain.DomainSales, resp.Domains[0].ID)
}

func TestHandleRoute(t *testing.T) {
	ts := newTestServer(t)
	var got string
	ts.router.routeFn = func(question string) domain.RouteResult {
		got = question
		return domain.RouteResult{
			Kind:    domain.RouteSingle,
			Domains: []domain.DomainID{domain.DomainSales},
			Scores:  map[domain.DomainID]int{domain.DomainSales: 5},
		}
	}

	rec := ts.do("POST", "/api/v1/route", RouteRequest{Question: "pending orders"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending orders", got)

	resp := decodeBody[domain.RouteResult](t, rec)
	assert.Equal(t, domain.RouteSingle, resp.Kind)
	assert.Equal(t, 5, resp.Scores[domain.DomainSales])

	rec = ts.do("POST", "/api/v1/route", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleContext(t *testing.T) {
	ts := newTestServer(t)
	ts.chat.contextFn = func(ctx context.Context, req domain.ContextRequest) (*domain.ContextResponse, error) {
		if len(req.Domains) == 1 && req.Domains[0] == "nope" {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, "nope")
		}
		return &domain.ContextResponse{Label: "sales", Context: "=== ORDERS ==="}, nil
	}

	rec := ts.do("POST", "/api/v1/context", domain.ContextRequest{Question: "pending orders"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "=== ORDERS ===", decodeBody[domain.ContextResponse](t, rec).Context)

	rec = ts.do("POST", "/api/v1/context", domain.ContextRequest{Question: "x", Domains: []domain.DomainID{"nope"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[ErrorResponse](t, rec).Error, "unknown domain")
}

func TestHandleChat(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"answered", nil, http.StatusOK},
		{"empty question", domain.ErrInvalidInput, http.StatusBadRequest},
		{"unknown domain", domain.ErrUnknownDomain, http.StatusBadRequest},
		{"no completion service", domain.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"completion failed", fmt.Errorf("%w: upstream 529", domain.ErrCompletionFailed), http.StatusBadGateway},
		{"store failure", errors.New("load conversation: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			var got domain.AskRequest
			ts.chat.askFn = func(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error) {
				got = req
				if tt.err != nil {
					return nil, tt.err
				}
				return &domain.AskResponse{ConversationID: "conv-1", Label: "hr", Answer: "42 people"}, nil
			}

			rec := ts.do("POST", "/api/v1/chat", domain.AskRequest{ConversationID: "conv-1", Question: "headcount", Domain: "hr"})
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, domain.DomainHR, got.Domain)

			if tt.err == nil {
				resp := decodeBody[domain.AskResponse](t, rec)
				assert.Equal(t, "42 people", resp.Answer)
			} else {
				assert.NotEmpty(t, decodeBody[ErrorResponse](t, rec).Error)
			}
		})
	}
}

func TestHandleChat_NeedsDomain(t *testing.T) {
	ts := newTestServer(t)
	ts.chat.askFn = func(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error) {
		return &domain.AskResponse{
			ConversationID: "conv-2",
			Route:          domain.RouteResult{Kind: domain.RouteUncertain},
			NeedsDomain:    true,
			Choices:        []domain.DomainSummary{{ID: domain.DomainSales}},
		}, nil
	}

	rec := ts.do("POST", "/api/v1/chat", domain.AskRequest{Question: "hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[domain.AskResponse](t, rec)
	assert.True(t, resp.NeedsDomain)
	assert.Len(t, resp.Choices, 1)
}

func TestHandleConversations(t *testing.T) {
	ts := newTestServer(t)
	ts.chat.historyFn = func(ctx context.Context, id string) (*domain.Conversation, error) {
		return &domain.Conversation{ID: id, Turns: []domain.Turn{{Role: domain.RoleUser, Content: "hi"}}}, nil
	}
	ts.chat.forgetFn = func(ctx context.Context, id string) error {
		if id == "missing" {
			return domain.ErrNotFound
		}
		return nil
	}

	rec := ts.do("GET", "/api/v1/conversations/conv-9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	conv := decodeBody[domain.Conversation](t, rec)
	assert.Equal(t, "conv-9", conv.ID)
	assert.Len(t, conv.Turns, 1)

	rec = ts.do("DELETE", "/api/v1/conversations/conv-9", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do("DELETE", "/api/v1/conversations/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDatasets(t *testing.T) {
	ts := newTestServer(t)
	type call struct {
		name, query   string
		page, perPage int
	}
	var got call
	ts.datasets.browseFn = func(name, query string, page, perPage int) (*domain.BrowseResult, error) {
		got = call{name, query, page, perPage}
		if name != "orders" {
			return nil, domain.ErrNotFound
		}
		return &domain.BrowseResult{Table: name, Page: page, PerPage: perPage, Total: 3, TotalPages: 1}, nil
	}

	rec := ts.do("GET", "/api/v1/datasets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[TablesResponse](t, rec).Tables, 2)

	rec = ts.do("GET", "/api/v1/datasets/orders?q=acme+pending&page=2&per_page=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, call{"orders", "acme pending", 2, 5}, got)

	rec = ts.do("GET", "/api/v1/datasets/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, call{"orders", "", 0, 0}, got)

	rec = ts.do("GET", "/api/v1/datasets/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do("GET", "/api/v1/datasets/orders?page=two", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid page", decodeBody[ErrorResponse](t, rec).Error)
}

func TestRoutes_RequireAuth(t *testing.T) {
	cfg := DefaultConfig()
	server := NewServer(cfg, &mockAuthService{}, &mockRouterService{}, &mockChatService{}, &mockDatasetService{}, nil, nil)

	paths := []struct{ method, path string }{
		{"GET", "/api/v1/domains"},
		{"POST", "/api/v1/route"},
		{"POST", "/api/v1/context"},
		{"POST", "/api/v1/chat"},
		{"GET", "/api/v1/conversations/abc"},
		{"DELETE", "/api/v1/conversations/abc"},
		{"GET", "/api/v1/datasets"},
		{"GET", "/api/v1/datasets/orders"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req := httptest.NewRequest(p.method, p.path, strings.NewReader("{}"))
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	// Health endpoints stay public
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "bad")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "bad", decodeBody[ErrorResponse](t, rec).Error)
}
