package builder

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quotedeck/flowkit/pkg/domain"
)

// Draft wraps a flow under construction. All operations mutate the wrapped
// flow in place; callers that need the previous version should Clone() first.
// A single editor session is assumed, so no locking is performed here.
type Draft struct {
	flow *domain.Flow
}

// New creates a draft around a fresh, empty flow.
func New(name, tradeID string) *Draft {
	return &Draft{flow: domain.NewFlow(newID("flow"), name, tradeID)}
}

// FromFlow wraps an existing flow. The draft aliases the given flow: edits are
// visible through both references.
func FromFlow(flow *domain.Flow) *Draft {
	if flow.Nodes == nil {
		flow.Nodes = make(map[string]*domain.Node)
	}
	return &Draft{flow: flow}
}

// Flow returns the underlying flow.
func (d *Draft) Flow() *domain.Flow {
	return d.flow
}

// newID generates a fresh identifier. UUIDs never collide with ids already in
// the graph, which keeps AddNode total without a retry loop.
func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// AddNode creates a new node of the given kind with a generated ID and
// returns the ID. The first node added to an empty flow becomes the start
// node.
func (d *Draft) AddNode(kind domain.NodeKind) (string, error) {
	id := newID("node")
	if err := d.AddNodeWithID(id, kind); err != nil {
		return "", err
	}
	return id, nil
}

// AddNodeWithID creates a new node with a caller-chosen ID.
func (d *Draft) AddNodeWithID(id string, kind domain.NodeKind) error {
	if !kind.Valid() {
		return &domain.StructuralError{
			Code:   domain.CodeInvalidKind,
			NodeID: id,
			Detail: fmt.Sprintf("unknown node kind %q", kind),
		}
	}
	if _, exists := d.flow.Nodes[id]; exists {
		return &domain.StructuralError{
			Code:   domain.CodeDuplicateNodeID,
			NodeID: id,
			Detail: "node id already present in the graph",
		}
	}

	n := &domain.Node{ID: id, Kind: kind}
	if kind == domain.KindQuestion {
		n.Question = &domain.Question{}
	}
	d.flow.Nodes[id] = n

	if d.flow.StartNodeID == "" {
		d.flow.StartNodeID = id
	}
	return nil
}

// UpdateNode applies a partial patch to a node. Changing the kind resets
// kind-incompatible payloads: a question turned into an end node loses its
// answers rather than carrying them along silently.
func (d *Draft) UpdateNode(id string, patch NodePatch) error {
	n, err := d.flow.Node(id)
	if err != nil {
		return err
	}

	if patch.Kind != nil && *patch.Kind != n.Kind {
		if !patch.Kind.Valid() {
			return &domain.StructuralError{
				Code:   domain.CodeInvalidKind,
				NodeID: id,
				Detail: fmt.Sprintf("unknown node kind %q", *patch.Kind),
			}
		}
		n.Kind = *patch.Kind
		n.Question = nil
		n.Actions = nil
		if n.Kind == domain.KindQuestion {
			n.Question = &domain.Question{}
		}
	}

	if patch.QuestionText != nil {
		if n.Question == nil {
			return kindMismatch(id, n.Kind, "question text")
		}
		n.Question.Text = *patch.QuestionText
	}
	if patch.BoundFieldID != nil {
		if n.Question == nil {
			return kindMismatch(id, n.Kind, "bound field")
		}
		n.Question.BoundFieldID = *patch.BoundFieldID
	}
	if patch.Actions != nil {
		if n.Kind != domain.KindAction {
			return kindMismatch(id, n.Kind, "action list")
		}
		n.Actions = append([]domain.Action(nil), (*patch.Actions)...)
	}
	return nil
}

func kindMismatch(id string, kind domain.NodeKind, what string) error {
	return &domain.StructuralError{
		Code:   domain.CodeInvalidKind,
		NodeID: id,
		Detail: fmt.Sprintf("cannot set %s on a %s node", what, kind),
	}
}

// DeleteOption configures DeleteNode.
type DeleteOption func(*deleteConfig)

type deleteConfig struct {
	replacementStart string
}

// WithReplacementStart supplies the node that becomes the start node when the
// current start node is deleted. The replacement is applied atomically with
// the delete.
func WithReplacementStart(nodeID string) DeleteOption {
	return func(c *deleteConfig) {
		c.replacementStart = nodeID
	}
}

// DeleteNode removes a node and scrubs every reference to it: answer links are
// nulled and go_to_node actions targeting it are dropped, so no dangling
// reference survives. Deleting the start node fails unless a replacement start
// is supplied.
func (d *Draft) DeleteNode(id string, opts ...DeleteOption) error {
	if _, err := d.flow.Node(id); err != nil {
		return err
	}

	var cfg deleteConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if id == d.flow.StartNodeID {
		if cfg.replacementStart == "" {
			return &domain.StructuralError{
				Code:   domain.CodeCannotDeleteStartNode,
				NodeID: id,
				Detail: "deleting the start node requires a replacement start",
			}
		}
		if cfg.replacementStart == id {
			return &domain.StructuralError{
				Code:   domain.CodeCannotDeleteStartNode,
				NodeID: id,
				Detail: "replacement start cannot be the deleted node",
			}
		}
		if _, err := d.flow.Node(cfg.replacementStart); err != nil {
			return err
		}
		d.flow.StartNodeID = cfg.replacementStart
	}

	delete(d.flow.Nodes, id)

	for _, n := range d.flow.Nodes {
		if n.Question != nil {
			for i := range n.Question.Answers {
				a := &n.Question.Answers[i]
				if a.NextNodeID == id {
					a.NextNodeID = ""
				}
				a.Actions = dropJumpsTo(a.Actions, id)
			}
		}
		n.Actions = dropJumpsTo(n.Actions, id)
	}
	return nil
}

// dropJumpsTo removes go_to_node actions targeting the given node. A jump with
// no target is not a meaningful construct, so the action is dropped rather
// than nulled.
func dropJumpsTo(actions []domain.Action, nodeID string) []domain.Action {
	if len(actions) == 0 {
		return actions
	}
	out := actions[:0]
	for _, act := range actions {
		if act.Kind == domain.ActionGoToNode && act.NextNodeID == nodeID {
			continue
		}
		out = append(out, act)
	}
	return out
}

// SetStartNode repoints the start of the flow to an existing node.
func (d *Draft) SetStartNode(id string) error {
	if _, err := d.flow.Node(id); err != nil {
		return err
	}
	d.flow.StartNodeID = id
	return nil
}

// AddAnswer appends an answer to a question node. An empty answer ID is
// replaced with a generated one; a colliding ID is rejected.
func (d *Draft) AddAnswer(nodeID string, answer domain.Answer) (string, error) {
	n, err := d.flow.Node(nodeID)
	if err != nil {
		return "", err
	}
	if n.Question == nil {
		return "", kindMismatch(nodeID, n.Kind, "answer")
	}

	if answer.ID == "" {
		answer.ID = newID("answer")
	}
	if n.FindAnswer(answer.ID) != nil {
		return "", &domain.StructuralError{
			Code:   domain.CodeDuplicateAnswerID,
			NodeID: nodeID,
			Detail: fmt.Sprintf("answer_id %q already present on node", answer.ID),
		}
	}

	n.Question.Answers = append(n.Question.Answers, answer)
	return answer.ID, nil
}

// UpdateAnswer applies a partial patch to an answer.
func (d *Draft) UpdateAnswer(nodeID, answerID string, patch AnswerPatch) error {
	n, err := d.flow.Node(nodeID)
	if err != nil {
		return err
	}
	a := n.FindAnswer(answerID)
	if a == nil {
		return &domain.NotFoundError{Kind: "answer", ID: answerID}
	}

	if patch.Text != nil {
		a.Text = *patch.Text
	}
	if patch.Value != nil {
		a.Value = *patch.Value
	}
	if patch.NextNodeID != nil {
		a.NextNodeID = *patch.NextNodeID
	}
	if patch.Actions != nil {
		a.Actions = append([]domain.Action(nil), (*patch.Actions)...)
	}
	return nil
}

// DeleteAnswer removes an answer from a question node.
func (d *Draft) DeleteAnswer(nodeID, answerID string) error {
	n, err := d.flow.Node(nodeID)
	if err != nil {
		return err
	}
	if n.Question == nil {
		return kindMismatch(nodeID, n.Kind, "answer")
	}

	answers := n.Question.Answers
	for i := range answers {
		if answers[i].ID == answerID {
			n.Question.Answers = append(answers[:i], answers[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{Kind: "answer", ID: answerID}
}
