package domain

import "encoding/json"

// NodeKind discriminates the node variants.
type NodeKind string

const (
	// KindQuestion displays a question and halts waiting for an answer (hard step).
	KindQuestion NodeKind = "question"
	// KindAction runs its action list unconditionally upon entry (silent step).
	KindAction NodeKind = "action"
	// KindEnd terminates the flow upon entry (sink state).
	KindEnd NodeKind = "end"
)

// Valid reports whether k is one of the known node kinds.
func (k NodeKind) Valid() bool {
	switch k {
	case KindQuestion, KindAction, KindEnd:
		return true
	}
	return false
}

// Node represents a single step in a flow.
//
// It is a tagged variant: Question is set if and only if Kind == KindQuestion,
// and Actions is meaningful if and only if Kind == KindAction. End nodes carry
// no payload.
type Node struct {
	ID   string   `json:"node_id"`
	Kind NodeKind `json:"kind"`

	// Question holds the payload for question nodes.
	Question *Question `json:"question,omitempty"`

	// Actions holds the payload for action nodes, executed in order upon entry.
	Actions []Action `json:"actions,omitempty"`

	// Extra preserves unknown fields from deserialized documents so that
	// round-tripping evolving trade templates is lossless.
	Extra map[string]json.RawMessage `json:"-"`
}

// Question is the payload of a question node.
type Question struct {
	Text string `json:"text"`

	// BoundFieldID references an external quote-field identifier. When set,
	// the stored value of the chosen answer is recorded against that field.
	BoundFieldID string `json:"field_id,omitempty"`

	// Answers are the selectable responses, in display order.
	Answers []Answer `json:"answers"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Answer is one selectable response to a question node.
type Answer struct {
	ID   string `json:"answer_id"`
	Text string `json:"text"`

	// Value is recorded against the parent node's bound field when chosen.
	Value any `json:"value,omitempty"`

	// NextNodeID is the forward link. Empty means the flow ends after this
	// answer is chosen.
	NextNodeID string `json:"next_node_id,omitempty"`

	// Actions run when this answer is chosen, before following NextNodeID.
	Actions []Action `json:"actions,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// FindAnswer returns the answer with the given ID, or nil if the node has no
// such answer (or is not a question node).
func (n *Node) FindAnswer(answerID string) *Answer {
	if n.Question == nil {
		return nil
	}
	for i := range n.Question.Answers {
		if n.Question.Answers[i].ID == answerID {
			return &n.Question.Answers[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Extra = cloneExtra(n.Extra)
	if n.Question != nil {
		q := *n.Question
		q.Extra = cloneExtra(n.Question.Extra)
		q.Answers = make([]Answer, len(n.Question.Answers))
		for i, a := range n.Question.Answers {
			q.Answers[i] = *a.Clone()
		}
		out.Question = &q
	}
	out.Actions = cloneActions(n.Actions)
	return &out
}

// Clone returns a deep copy of the answer.
func (a *Answer) Clone() *Answer {
	if a == nil {
		return nil
	}
	out := *a
	out.Extra = cloneExtra(a.Extra)
	out.Actions = cloneActions(a.Actions)
	return &out
}

func cloneActions(actions []Action) []Action {
	if actions == nil {
		return nil
	}
	out := make([]Action, len(actions))
	for i, act := range actions {
		out[i] = act
		out[i].Extra = cloneExtra(act.Extra)
	}
	return out
}

func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	return out
}
