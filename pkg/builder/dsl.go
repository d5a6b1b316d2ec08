package builder

import (
	"fmt"

	"github.com/quotedeck/flowkit/pkg/domain"
)

// FlowBuilder provides a fluent API for constructing flows programmatically.
// Errors are deferred: the first failure is reported by Build, which keeps
// call sites declarative.
type FlowBuilder struct {
	draft *Draft
	err   error
}

// NewFlow creates a fluent builder around a fresh flow with the given ID.
func NewFlow(id, name, tradeID string) *FlowBuilder {
	return &FlowBuilder{draft: FromFlow(domain.NewFlow(id, name, tradeID))}
}

func (b *FlowBuilder) fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

func (b *FlowBuilder) node(id string, kind domain.NodeKind) *NodeBuilder {
	if _, exists := b.draft.flow.Nodes[id]; !exists {
		b.fail(b.draft.AddNodeWithID(id, kind))
	}
	return &NodeBuilder{flow: b, id: id}
}

// Question creates (or returns) a question node.
func (b *FlowBuilder) Question(id string) *NodeBuilder {
	return b.node(id, domain.KindQuestion)
}

// Action creates (or returns) an action node.
func (b *FlowBuilder) Action(id string) *NodeBuilder {
	return b.node(id, domain.KindAction)
}

// End creates (or returns) an end node.
func (b *FlowBuilder) End(id string) *NodeBuilder {
	return b.node(id, domain.KindEnd)
}

// Start sets the start node of the flow.
func (b *FlowBuilder) Start(id string) *FlowBuilder {
	b.fail(b.draft.SetStartNode(id))
	return b
}

// Active marks the flow as published.
func (b *FlowBuilder) Active() *FlowBuilder {
	b.draft.flow.Active = true
	return b
}

// Build returns the constructed flow. It fails on the first deferred builder
// error or on any blocking validation issue; warnings do not block.
func (b *FlowBuilder) Build() (*domain.Flow, error) {
	if b.err != nil {
		return nil, b.err
	}
	flow := b.draft.Flow()
	if blocking := domain.Blocking(flow.Validate()); len(blocking) > 0 {
		return nil, fmt.Errorf("flow %s has %d blocking issues, first: %s", flow.ID, len(blocking), blocking[0].Detail)
	}
	return flow, nil
}

// NodeBuilder configures a single node.
type NodeBuilder struct {
	flow *FlowBuilder
	id   string
}

func (n *NodeBuilder) get() *domain.Node {
	return n.flow.draft.flow.Nodes[n.id]
}

// Text sets the question prompt.
func (n *NodeBuilder) Text(text string) *NodeBuilder {
	n.flow.fail(n.flow.draft.UpdateNode(n.id, NodePatch{QuestionText: &text}))
	return n
}

// BindField links the node's collected answer value to a quote field.
func (n *NodeBuilder) BindField(fieldID string) *NodeBuilder {
	n.flow.fail(n.flow.draft.UpdateNode(n.id, NodePatch{BoundFieldID: &fieldID}))
	return n
}

// Do appends actions to an action node.
func (n *NodeBuilder) Do(actions ...domain.Action) *NodeBuilder {
	node := n.get()
	if node == nil {
		return n
	}
	if node.Kind != domain.KindAction {
		n.flow.fail(kindMismatch(n.id, node.Kind, "action list"))
		return n
	}
	node.Actions = append(node.Actions, actions...)
	return n
}

// Answer appends a selectable answer and returns a builder scoped to it.
func (n *NodeBuilder) Answer(id, text string, value any) *AnswerBuilder {
	_, err := n.flow.draft.AddAnswer(n.id, domain.Answer{ID: id, Text: text, Value: value})
	n.flow.fail(err)
	return &AnswerBuilder{node: n, answerID: id}
}

// Question moves the chain to another question node.
func (n *NodeBuilder) Question(id string) *NodeBuilder { return n.flow.Question(id) }

// Action moves the chain to another action node.
func (n *NodeBuilder) Action(id string) *NodeBuilder { return n.flow.Action(id) }

// End moves the chain to another end node.
func (n *NodeBuilder) End(id string) *NodeBuilder { return n.flow.End(id) }

// Start sets the flow's start node.
func (n *NodeBuilder) Start(id string) *FlowBuilder { return n.flow.Start(id) }

// Build finishes the chain.
func (n *NodeBuilder) Build() (*domain.Flow, error) { return n.flow.Build() }

// AnswerBuilder configures a single answer of a question node.
type AnswerBuilder struct {
	node     *NodeBuilder
	answerID string
}

// Go sets the answer's forward link.
func (a *AnswerBuilder) Go(target string) *AnswerBuilder {
	a.node.flow.fail(a.node.flow.draft.UpdateAnswer(a.node.id, a.answerID, AnswerPatch{NextNodeID: &target}))
	return a
}

// Do appends side-effect actions executed when this answer is chosen.
func (a *AnswerBuilder) Do(actions ...domain.Action) *AnswerBuilder {
	node := a.node.get()
	if node == nil {
		return a
	}
	ans := node.FindAnswer(a.answerID)
	if ans == nil {
		return a
	}
	ans.Actions = append(ans.Actions, actions...)
	return a
}

// Answer appends a sibling answer on the same node.
func (a *AnswerBuilder) Answer(id, text string, value any) *AnswerBuilder {
	return a.node.Answer(id, text, value)
}

// Question moves the chain to another question node.
func (a *AnswerBuilder) Question(id string) *NodeBuilder { return a.node.flow.Question(id) }

// Action moves the chain to another action node.
func (a *AnswerBuilder) Action(id string) *NodeBuilder { return a.node.flow.Action(id) }

// End moves the chain to another end node.
func (a *AnswerBuilder) End(id string) *NodeBuilder { return a.node.flow.End(id) }

// Start sets the flow's start node.
func (a *AnswerBuilder) Start(id string) *FlowBuilder { return a.node.flow.Start(id) }

// Build finishes the chain.
func (a *AnswerBuilder) Build() (*domain.Flow, error) { return a.node.flow.Build() }
