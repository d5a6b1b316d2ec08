package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quotedeck/flowkit/internal/presentation/graph"
	"github.com/quotedeck/flowkit/internal/runtime"
	"github.com/quotedeck/flowkit/pkg/domain"
	"github.com/quotedeck/flowkit/pkg/schema"
)

// nodeIDs returns the flow's node IDs in sorted order for stable output.
func nodeIDs(flow *domain.Flow) []string {
	ids := make([]string, 0, len(flow.Nodes))
	for id := range flow.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// nodeActions flattens a node's own actions and its answers' actions.
func nodeActions(node *domain.Node) []domain.Action {
	actions := append([]domain.Action(nil), node.Actions...)
	if node.Question != nil {
		for _, a := range node.Question.Answers {
			actions = append(actions, a.Actions...)
		}
	}
	return actions
}

func (s *Server) createFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := s.decodeFlow(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if flow.ID == "" {
		flow.ID = uuid.NewString()
	}
	if err := s.flows.Save(r.Context(), flow); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("flow created", "flow_id", flow.ID, "name", flow.Name)
	writeJSON(w, http.StatusCreated, flow)
}

func (s *Server) putFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := s.decodeFlow(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	flow.ID = chi.URLParam(r, "flowID")
	if err := s.flows.Save(r.Context(), flow); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, flow)
}

func (s *Server) listFlows(w http.ResponseWriter, r *http.Request) {
	ids, err := s.flows.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"flows": ids})
}

func (s *Server) getFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := s.flows.Load(r.Context(), chi.URLParam(r, "flowID"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	data, err := schema.Encode(flow)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) deleteFlow(w http.ResponseWriter, r *http.Request) {
	if err := s.flows.Delete(r.Context(), chi.URLParam(r, "flowID")); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type validateResponse struct {
	FlowID   string         `json:"flow_id"`
	Valid    bool           `json:"valid"`
	Issues   []domain.Issue `json:"issues"`
	Blocking int            `json:"blocking"`
}

// IssueUnknownCatalogRef marks a flow reference that does not resolve against
// the configured catalogs. Produced only when catalogs are attached.
const IssueUnknownCatalogRef = domain.IssueKind("unknown_catalog_reference")

func (s *Server) validateFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := s.flows.Load(r.Context(), chi.URLParam(r, "flowID"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	issues := flow.Validate()
	issues = append(issues, s.catalogIssues(r, flow)...)
	if s.metrics != nil {
		s.metrics.FlowsValidated.Inc()
	}
	writeJSON(w, http.StatusOK, validateResponse{
		FlowID:   flow.ID,
		Valid:    len(domain.Blocking(issues)) == 0,
		Issues:   issues,
		Blocking: len(domain.Blocking(issues)),
	})
}

// catalogIssues cross-checks field and product references against the
// catalogs. Mismatches are warnings: catalogs can lag behind flow edits.
func (s *Server) catalogIssues(r *http.Request, flow *domain.Flow) []domain.Issue {
	var issues []domain.Issue
	if s.fields != nil {
		known := map[string]bool{}
		fields, err := s.fields.ListFields(r.Context(), flow.TradeID)
		if err == nil {
			for _, f := range fields {
				known[f.ID] = true
			}
			for _, id := range nodeIDs(flow) {
				node := flow.Nodes[id]
				if node.Question != nil && node.Question.BoundFieldID != "" && !known[node.Question.BoundFieldID] {
					issues = append(issues, domain.Issue{
						Kind:     IssueUnknownCatalogRef,
						Severity: domain.SeverityWarning,
						NodeID:   id,
						Detail:   fmt.Sprintf("bound field %q is not in the %s catalog", node.Question.BoundFieldID, flow.TradeID),
					})
				}
			}
		}
	}
	if s.products != nil {
		known := map[string]bool{}
		products, err := s.products.ListProducts(r.Context())
		if err == nil {
			for _, p := range products {
				known[p.ID] = true
			}
			for _, id := range nodeIDs(flow) {
				for _, a := range nodeActions(flow.Nodes[id]) {
					if a.Kind == domain.ActionAddLineItem && !known[a.ProductID] {
						issues = append(issues, domain.Issue{
							Kind:     IssueUnknownCatalogRef,
							Severity: domain.SeverityWarning,
							NodeID:   id,
							Detail:   fmt.Sprintf("product %q is not in the catalog", a.ProductID),
						})
					}
				}
			}
		}
	}
	return issues
}

func (s *Server) publishFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := s.flows.Load(r.Context(), chi.URLParam(r, "flowID"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	blocking := domain.Blocking(flow.Validate())
	if len(blocking) > 0 {
		writeJSON(w, http.StatusConflict, validateResponse{
			FlowID:   flow.ID,
			Valid:    false,
			Issues:   blocking,
			Blocking: len(blocking),
		})
		return
	}
	flow.Active = true
	if err := s.flows.Save(r.Context(), flow); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("flow published", "flow_id", flow.ID)
	writeJSON(w, http.StatusOK, flow)
}

func (s *Server) mermaidFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := s.flows.Load(r.Context(), chi.URLParam(r, "flowID"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	var overlay *graph.Overlay
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		state, err := s.sessions.Load(r.Context(), sessionID)
		if err != nil {
			s.writeError(w, statusFor(err), err)
			return
		}
		overlay = &graph.Overlay{VisitedNodes: state.History, CurrentNode: state.CurrentNodeID}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, graph.GenerateMermaid(flow, overlay))
}

type sessionResponse struct {
	SessionID string             `json:"session_id"`
	State     *domain.State      `json:"state"`
	Prompt    *runtime.Prompt    `json:"prompt,omitempty"`
	Draft     *domain.QuoteDraft `json:"draft,omitempty"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	flow, err := s.flows.Load(r.Context(), chi.URLParam(r, "flowID"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	if !flow.Active {
		s.writeError(w, http.StatusConflict, fmt.Errorf("flow %s is not published", flow.ID))
		return
	}
	engine := s.engine(flow)
	state, err := engine.Start(r.Context())
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	sessionID := uuid.NewString()
	if err := s.sessions.Save(r.Context(), sessionID, state); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SessionsStarted.WithLabelValues(flow.ID).Inc()
	}
	s.logger.Info("session started", "session_id", sessionID, "flow_id", flow.ID)
	s.writeSession(w, http.StatusCreated, engine, sessionID, state)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	state, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	flow, err := s.flows.Load(r.Context(), state.FlowID)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeSession(w, http.StatusOK, s.engine(flow), sessionID, state)
}

type answerRequest struct {
	AnswerID string `json:"answer_id"`
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	state, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	flow, err := s.flows.Load(r.Context(), state.FlowID)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	engine := s.engine(flow)
	next, err := engine.SubmitAnswer(r.Context(), state, req.AnswerID)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	if err := s.sessions.Save(r.Context(), sessionID, next); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if s.metrics != nil {
		s.metrics.AnswersSubmitted.WithLabelValues(flow.ID).Inc()
	}
	s.writeSession(w, http.StatusOK, engine, sessionID, next)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeSession(w http.ResponseWriter, status int, engine *runtime.Engine, sessionID string, state *domain.State) {
	resp := sessionResponse{SessionID: sessionID, State: state}
	prompt, err := engine.Prompt(state)
	if err == nil {
		resp.Prompt = prompt
	}
	if state.Terminated() {
		draft := state.Draft()
		resp.Draft = &draft
	}
	writeJSON(w, status, resp)
}

func (s *Server) listFields(w http.ResponseWriter, r *http.Request) {
	if s.fields == nil {
		s.writeError(w, http.StatusNotFound, errors.New("no field catalog configured"))
		return
	}
	tradeID := r.URL.Query().Get("trade_id")
	fields, err := s.fields.ListFields(r.Context(), tradeID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trade_id": tradeID, "fields": fields})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	if s.products == nil {
		s.writeError(w, http.StatusNotFound, errors.New("no product catalog configured"))
		return
	}
	products, err := s.products.ListProducts(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		invalid  *domain.InvalidAnswerError
		loop     *domain.LoopLimitError
		notFound *domain.NotFoundError
	)
	switch {
	case errors.Is(err, domain.ErrFlowNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFlowTerminated):
		return http.StatusConflict
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.As(err, &loop):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
