package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/swaggo/swag"
	"go.uber.org/zap"

	"github.com/custodia-labs/sercha-insight/docs"
	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadyResponse reports the state of each dependency
// @Description Readiness status per component
type ReadyResponse struct {
	Status     string            `json:"status" example:"ready"`
	Components map[string]string `json:"components"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// RouteRequest asks for the routing decision of a question
// @Description Question to classify
type RouteRequest struct {
	Question string `json:"question" example:"show me pending orders for Acme Corp"`
}

// DomainsResponse lists the registered domains
// @Description Registered domains in declaration order
type DomainsResponse struct {
	Domains []domain.DomainSummary `json:"domains"`
}

// TablesResponse lists the loaded tables
// @Description Loaded tables with record counts
type TablesResponse struct {
	Tables []domain.TableInfo `json:"tables"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Checks the dataset catalog, the conversation store and the completion service
// @Tags         Health
// @Produce      json
// @Success      200  {object}  ReadyResponse
// @Failure      503  {object}  ReadyResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{Status: "ready", Components: make(map[string]string, len(s.checks))}
	status := http.StatusOK

	for name, check := range s.checks {
		if err := check.Ping(r.Context()); err != nil {
			resp.Components[name] = err.Error()
			resp.Status = "not ready"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Components[name] = "ok"
	}

	writeJSON(w, status, resp)
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// handleSwaggerDoc serves the registered OpenAPI document
func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "swagger document unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Routing endpoints

// handleListDomains godoc
// @Summary      List domains
// @Description  Returns the registered domains, offered to users when routing is uncertain
// @Tags         Routing
// @Produce      json
// @Security     BearerAuth
// @Security     APIKeyAuth
// @Success      200  {object}  DomainsResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /domains [get]
func (s *Server) handleListDomains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DomainsResponse{Domains: s.routerService.Domains()})
}

// handleRoute godoc
// @Summary      Route a question
// @Description  Scores every domain and returns a single, cross or uncertain route
// @Tags         Routing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     APIKeyAuth
// @Param        request  body      RouteRequest  true  "Question"
// @Success      200      {object}  domain.RouteResult
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /route [post]
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.routerService.Route(req.Question))
}

// handleContext godoc
// @Summary      Assemble context
// @Description  Routes the question (unless domains are given) and returns the prompt-ready context without calling a model
// @Tags         Routing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     APIKeyAuth
// @Param        request  body      domain.ContextRequest  true  "Question and optional domains"
// @Success      200      {object}  domain.ContextResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /context [post]
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	var req domain.ContextRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.chatService.Context(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Chat endpoints

// handleChat godoc
// @Summary      Ask a question
// @Description  Answers a question from the domain data. When routing is uncertain the response has needs_domain set and lists the choices; resend with domain to continue.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     APIKeyAuth
// @Param        request  body      domain.AskRequest  true  "Question"
// @Success      200      {object}  domain.AskResponse
// @Failure      400      {object}  ErrorResponse  "Empty question or unknown domain"
// @Failure      401      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse  "Completion service failed"
// @Failure      503      {object}  ErrorResponse  "Completion service not configured"
// @Router       /chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.AskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.chatService.Ask(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetConversation godoc
// @Summary      Get conversation
// @Description  Returns the stored turns of a conversation (empty for unknown IDs)
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Security     APIKeyAuth
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  domain.Conversation
// @Failure      401  {object}  ErrorResponse
// @Router       /conversations/{id} [get]
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := s.chatService.History(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// handleDeleteConversation godoc
// @Summary      Delete conversation
// @Tags         Chat
// @Security     BearerAuth
// @Security     APIKeyAuth
// @Param        id   path  string  true  "Conversation ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /conversations/{id} [delete]
func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := s.chatService.Forget(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Data browser endpoints

// handleListDatasets godoc
// @Summary      List tables
// @Tags         Datasets
// @Produce      json
// @Security     BearerAuth
// @Security     APIKeyAuth
// @Success      200  {object}  TablesResponse
// @Router       /datasets [get]
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TablesResponse{Tables: s.datasetService.ListTables()})
}

// handleBrowseDataset godoc
// @Summary      Browse a table
// @Description  Returns one page of a table, filtered by any word of q
// @Tags         Datasets
// @Produce      json
// @Security     BearerAuth
// @Security     APIKeyAuth
// @Param        name      path      string  true   "Table name"
// @Param        q         query     string  false  "Keyword filter"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        per_page  query     int     false  "Records per page (max 100)"
// @Success      200       {object}  domain.BrowseResult
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /datasets/{name} [get]
func (s *Server) handleBrowseDataset(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, ok := queryInt(w, q.Get("page"), "page")
	if !ok {
		return
	}
	perPage, ok := queryInt(w, q.Get("per_page"), "per_page")
	if !ok {
		return
	}

	result, err := s.datasetService.Browse(r.PathValue("name"), q.Get("q"), page, perPage)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Helper functions

func queryInt(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps domain errors to status codes
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, domain.ErrUnknownDomain):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "completion service not configured")
	case errors.Is(err, domain.ErrCompletionFailed):
		s.logger.Warn("completion failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "completion service failed")
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
