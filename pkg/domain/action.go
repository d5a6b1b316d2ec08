package domain

import "encoding/json"

// ActionKind discriminates the action variants.
type ActionKind string

const (
	// ActionPopulateField writes a value into a quote field.
	ActionPopulateField ActionKind = "populate_field"
	// ActionAddLineItem appends a product line item to the quote draft.
	ActionAddLineItem ActionKind = "add_line_item"
	// ActionGoToNode jumps to another node without user input.
	ActionGoToNode ActionKind = "go_to_node"
	// ActionEndFlow terminates the flow immediately.
	ActionEndFlow ActionKind = "end_flow"
)

// Valid reports whether k is one of the known action kinds.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionPopulateField, ActionAddLineItem, ActionGoToNode, ActionEndFlow:
		return true
	}
	return false
}

// Action is a side effect attached to an answer or an action node.
// The payload fields that apply depend on Kind.
type Action struct {
	Kind ActionKind `json:"kind"`

	// PopulateField payload.
	FieldID string `json:"field_id,omitempty"`
	Value   any    `json:"value,omitempty"`

	// AddLineItem payload.
	ProductID string  `json:"product_id,omitempty"`
	Quantity  float64 `json:"quantity,omitempty"`

	// GoToNode payload.
	NextNodeID string `json:"next_node_id,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// PopulateField builds a populate_field action.
func PopulateField(fieldID string, value any) Action {
	return Action{Kind: ActionPopulateField, FieldID: fieldID, Value: value}
}

// AddLineItem builds an add_line_item action.
func AddLineItem(productID string, quantity float64) Action {
	return Action{Kind: ActionAddLineItem, ProductID: productID, Quantity: quantity}
}

// GoToNode builds a go_to_node action.
func GoToNode(nextNodeID string) Action {
	return Action{Kind: ActionGoToNode, NextNodeID: nextNodeID}
}

// EndFlow builds an end_flow action.
func EndFlow() Action {
	return Action{Kind: ActionEndFlow}
}

// LineItem is one product entry accumulated by add_line_item actions.
// Duplicate product IDs accumulate as separate entries; merging and pricing
// are downstream concerns.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}
