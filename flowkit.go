package flowkit

import (
	"context"
	"log/slog"

	"github.com/quotedeck/flowkit/internal/presentation/graph"
	"github.com/quotedeck/flowkit/internal/runtime"
	"github.com/quotedeck/flowkit/pkg/domain"
)

// Hooks are optional lifecycle callbacks fired while a flow executes.
type Hooks struct {
	// OnNodeEnter fires every time execution enters a node.
	OnNodeEnter func(nodeID string, kind domain.NodeKind)
	// OnActionApplied fires after each action mutates the session state.
	OnActionApplied func(nodeID string, action domain.Action)
	// OnTerminate fires once when the session reaches a terminal state.
	OnTerminate func(state *domain.State)
}

// Engine is the high-level entry point for embedding flow execution. It wraps
// the internal runtime behind a stable API.
type Engine struct {
	runtime *runtime.Engine

	logger    *slog.Logger
	loopLimit int
	hooks     Hooks
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLoopLimit overrides the per-node visit bound that guards cyclic flows.
func WithLoopLimit(limit int) Option {
	return func(e *Engine) {
		e.loopLimit = limit
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// New creates an Engine bound to a flow.
func New(flow *domain.Flow, opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	rtOpts := []runtime.Option{
		runtime.WithHooks(runtime.Hooks{
			OnNodeEnter:     e.hooks.OnNodeEnter,
			OnActionApplied: e.hooks.OnActionApplied,
			OnTerminate:     e.hooks.OnTerminate,
		}),
	}
	if e.logger != nil {
		rtOpts = append(rtOpts, runtime.WithLogger(e.logger))
	}
	if e.loopLimit > 0 {
		rtOpts = append(rtOpts, runtime.WithLoopLimit(e.loopLimit))
	}

	e.runtime = runtime.NewEngine(flow, rtOpts...)
	return e
}

// Flow returns the flow the engine executes.
func (e *Engine) Flow() *domain.Flow {
	return e.runtime.Flow()
}

// Validate runs the structural checks on the engine's flow.
func (e *Engine) Validate() []domain.Issue {
	return e.runtime.Flow().Validate()
}

// Start creates a fresh session state positioned on the first question node,
// or already terminated if the flow ends without asking anything.
func (e *Engine) Start(ctx context.Context) (*domain.State, error) {
	return e.runtime.Start(ctx)
}

// SubmitAnswer advances the session by one answer selection. The input state
// is never mutated; a new state is returned on success.
func (e *Engine) SubmitAnswer(ctx context.Context, state *domain.State, answerID string) (*domain.State, error) {
	return e.runtime.SubmitAnswer(ctx, state, answerID)
}

// Prompt describes what to ask next for a given state.
func (e *Engine) Prompt(state *domain.State) (*runtime.Prompt, error) {
	return e.runtime.Prompt(state)
}

// Mermaid renders the flow as a Mermaid flowchart. When state is non-nil the
// visited path and current node are highlighted.
func (e *Engine) Mermaid(state *domain.State) string {
	var overlay *graph.Overlay
	if state != nil {
		overlay = &graph.Overlay{
			VisitedNodes: state.History,
			CurrentNode:  state.CurrentNodeID,
		}
	}
	return graph.GenerateMermaid(e.runtime.Flow(), overlay)
}
