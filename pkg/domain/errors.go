package domain

import (
	"errors"
	"fmt"
)

// ErrFlowNotFound is returned when a flow ID cannot be found in a store.
var ErrFlowNotFound = errors.New("flow not found")

// ErrSessionNotFound is returned when a session ID cannot be found in a store.
var ErrSessionNotFound = errors.New("session not found")

// ErrFlowTerminated is returned when an answer is submitted to a session that
// has already reached a terminal state.
var ErrFlowTerminated = errors.New("flow already terminated")

// NotFoundError reports a lookup miss for a node, answer or flow.
type NotFoundError struct {
	Kind string // "node", "answer" or "flow"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// StructuralCode identifies a structural error that blocks a mutation or a publish.
type StructuralCode string

const (
	// CodeDuplicateAnswerID reports two answers on the same node sharing an ID.
	CodeDuplicateAnswerID StructuralCode = "duplicate_answer_id"
	// CodeCannotDeleteStartNode reports a delete of the start node without a
	// replacement start supplied atomically.
	CodeCannotDeleteStartNode StructuralCode = "cannot_delete_start_node"
	// CodeActionNodeWithoutExit reports an action node that neither jumps nor
	// terminates, which would hang the engine.
	CodeActionNodeWithoutExit StructuralCode = "action_node_without_exit"
	// CodeDuplicateNodeID reports a node added with an ID already in the graph.
	CodeDuplicateNodeID StructuralCode = "duplicate_node_id"
	// CodeInvalidKind reports an unknown node or action kind.
	CodeInvalidKind StructuralCode = "invalid_kind"
)

// StructuralError blocks a specific mutation or publish.
type StructuralError struct {
	Code   StructuralCode
	NodeID string
	Detail string
}

func (e *StructuralError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("%s (node %s): %s", e.Code, e.NodeID, e.Detail)
}

// InvalidAnswerError reports an answer ID not present on the current node.
type InvalidAnswerError struct {
	NodeID   string
	AnswerID string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer %q for node %s", e.AnswerID, e.NodeID)
}

// LoopLimitError reports that a node's visit count exceeded the configured bound.
type LoopLimitError struct {
	NodeID string
	Limit  int
}

func (e *LoopLimitError) Error() string {
	return fmt.Sprintf("loop limit exceeded: node %s visited more than %d times", e.NodeID, e.Limit)
}
