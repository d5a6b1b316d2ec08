package domain

import "encoding/json"

// Custom JSON codecs that preserve unknown fields opaquely. Trade templates
// evolve: a document written by a newer builder must survive a load/save cycle
// through an older one without dropping fields.

func extractExtra(data []byte, known ...string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

func mergeExtra(base []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return base, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(base, &obj); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := obj[k]; !ok {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}

type flowAlias Flow

// UnmarshalJSON decodes the flow, stashing unknown fields in Extra.
func (f *Flow) UnmarshalJSON(data []byte) error {
	var a flowAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, "flow_id", "name", "trade_id", "start_node_id", "nodes", "is_active")
	if err != nil {
		return err
	}
	*f = Flow(a)
	f.Extra = extra
	return nil
}

// MarshalJSON encodes the flow, re-emitting preserved unknown fields.
func (f Flow) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(flowAlias(f))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, f.Extra)
}

type nodeAlias Node

func (n *Node) UnmarshalJSON(data []byte) error {
	var a nodeAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, "node_id", "kind", "question", "actions")
	if err != nil {
		return err
	}
	*n = Node(a)
	n.Extra = extra
	return nil
}

func (n Node) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(nodeAlias(n))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, n.Extra)
}

type questionAlias Question

func (q *Question) UnmarshalJSON(data []byte) error {
	var a questionAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, "text", "field_id", "answers")
	if err != nil {
		return err
	}
	*q = Question(a)
	q.Extra = extra
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(questionAlias(q))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, q.Extra)
}

type answerAlias Answer

func (a *Answer) UnmarshalJSON(data []byte) error {
	var alias answerAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := extractExtra(data, "answer_id", "text", "value", "next_node_id", "actions")
	if err != nil {
		return err
	}
	*a = Answer(alias)
	a.Extra = extra
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(answerAlias(a))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, a.Extra)
}

type actionAlias Action

func (a *Action) UnmarshalJSON(data []byte) error {
	var alias actionAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := extractExtra(data, "kind", "field_id", "value", "product_id", "quantity", "next_node_id")
	if err != nil {
		return err
	}
	*a = Action(alias)
	a.Extra = extra
	return nil
}

func (a Action) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(actionAlias(a))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, a.Extra)
}
