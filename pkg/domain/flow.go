package domain

import "encoding/json"

// Flow is the aggregate root: a directed graph of conversational steps used to
// collect quote input interactively. Cycles are permitted; the execution engine
// guards against unbounded loops.
type Flow struct {
	ID      string `json:"flow_id"`
	Name    string `json:"name"`
	TradeID string `json:"trade_id"`

	// StartNodeID must reference an existing node in Nodes.
	StartNodeID string `json:"start_node_id"`

	// Nodes maps node ID to its definition.
	Nodes map[string]*Node `json:"nodes"`

	// Active is the publication flag. Inactive flows are drafts.
	Active bool `json:"is_active"`

	Extra map[string]json.RawMessage `json:"-"`
}

// NewFlow creates an empty flow.
func NewFlow(id, name, tradeID string) *Flow {
	return &Flow{
		ID:      id,
		Name:    name,
		TradeID: tradeID,
		Nodes:   make(map[string]*Node),
	}
}

// Node returns the node with the given ID.
// Returns a *NotFoundError if the flow has no such node.
func (f *Flow) Node(id string) (*Node, error) {
	n, ok := f.Nodes[id]
	if !ok {
		return nil, &NotFoundError{Kind: "node", ID: id}
	}
	return n, nil
}

// Clone returns a deep copy of the flow, safe for independent mutation.
func (f *Flow) Clone() *Flow {
	if f == nil {
		return nil
	}
	out := *f
	out.Extra = cloneExtra(f.Extra)
	out.Nodes = make(map[string]*Node, len(f.Nodes))
	for id, n := range f.Nodes {
		out.Nodes[id] = n.Clone()
	}
	return &out
}
