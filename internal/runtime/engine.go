// Package runtime implements the flow execution engine: it walks a validated
// flow graph against a sequence of answer selections and accumulates a quote
// draft.
package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quotedeck/flowkit/internal/logging"
	"github.com/quotedeck/flowkit/pkg/domain"
)

// DefaultLoopLimit bounds per-node visits. Cycles are a legal graph shape, so
// termination is the engine's job, not the model's.
const DefaultLoopLimit = 1000

// Hooks are optional lifecycle callbacks, used for logging and metrics.
type Hooks struct {
	OnNodeEnter     func(nodeID string, kind domain.NodeKind)
	OnActionApplied func(nodeID string, action domain.Action)
	OnTerminate     func(state *domain.State)
}

// Engine executes a single flow. It is stateless over *domain.State: every
// transition takes a state and returns a new one, leaving the input untouched
// so a failed transition never corrupts the session.
type Engine struct {
	flow      *domain.Flow
	loopLimit int
	logger    *slog.Logger
	hooks     Hooks
}

// Option configures the engine.
type Option func(*Engine)

// WithLoopLimit overrides the per-node visit bound.
func WithLoopLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.loopLimit = limit
		}
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine bound to a flow.
func NewEngine(flow *domain.Flow, opts ...Option) *Engine {
	e := &Engine{
		flow:      flow,
		loopLimit: DefaultLoopLimit,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Flow returns the flow the engine executes.
func (e *Engine) Flow() *domain.Flow {
	return e.flow
}

// Start creates the initial session state at the start node and drains any
// entry chain of action and end nodes, so the returned state is either
// terminated or waiting on a question.
func (e *Engine) Start(ctx context.Context) (*domain.State, error) {
	if _, err := e.flow.Node(e.flow.StartNodeID); err != nil {
		return nil, fmt.Errorf("flow %s: %w", e.flow.ID, err)
	}

	state := domain.NewState(e.flow.ID, e.flow.StartNodeID)
	e.emitNodeEnter(e.flow.StartNodeID)

	return e.advance(ctx, state)
}

// SubmitAnswer processes one answer selection on the current question node.
// On any failure the input state is left unchanged and no new state is
// returned; the caller decides whether to abort or retry.
func (e *Engine) SubmitAnswer(ctx context.Context, state *domain.State, answerID string) (*domain.State, error) {
	if state.Terminated() {
		return nil, domain.ErrFlowTerminated
	}

	node, err := e.flow.Node(state.CurrentNodeID)
	if err != nil {
		return nil, err
	}
	if node.Kind != domain.KindQuestion {
		return nil, fmt.Errorf("node %s is a %s node, not awaiting an answer", node.ID, node.Kind)
	}

	answer := node.FindAnswer(answerID)
	if answer == nil {
		return nil, &domain.InvalidAnswerError{NodeID: node.ID, AnswerID: answerID}
	}

	next := state.Clone()

	if node.Question.BoundFieldID != "" {
		next.Fields[node.Question.BoundFieldID] = answer.Value
		e.logger.Debug("field recorded", "node", node.ID, "field", node.Question.BoundFieldID)
	}

	jumped, err := e.applyActions(next, node.ID, answer.Actions)
	if err != nil {
		return nil, err
	}

	switch {
	case next.Terminated():
		// An end_flow action short-circuited the rest.
	case answer.NextNodeID != "":
		// The answer-driven edge wins over any action-level jump.
		if err := e.enterNode(next, answer.NextNodeID); err != nil {
			return nil, err
		}
	case jumped:
		// No answer edge, but a go_to_node action moved us. Stay there.
	default:
		e.terminate(next)
	}

	return e.advance(ctx, next)
}
