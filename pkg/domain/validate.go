package domain

import (
	"fmt"
	"sort"
)

// IssueKind identifies a class of validation issue.
type IssueKind string

const (
	// IssueDanglingReference reports a start or next-node reference to a node
	// that does not exist in the graph.
	IssueDanglingReference IssueKind = "dangling_reference"
	// IssueDuplicateAnswerID reports two answers on one node sharing an ID.
	IssueDuplicateAnswerID IssueKind = "duplicate_answer_id"
	// IssueDeadEndQuestion reports a reachable question node with no answers,
	// which cannot terminate gracefully. Warning level: the builder tolerates
	// dead ends while a flow is being drafted.
	IssueDeadEndQuestion IssueKind = "dead_end_question"
	// IssueActionNodeWithoutExit reports an action node that neither jumps nor
	// terminates. The engine refuses to enter such a node.
	IssueActionNodeWithoutExit IssueKind = "action_node_without_exit"
	// IssueInvalidKind reports an unknown node or action kind.
	IssueInvalidKind IssueKind = "invalid_kind"
)

// Severity grades a validation issue.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is a single validation finding. Issues are data, not errors: callers
// decide whether they block publishing.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Severity Severity  `json:"severity"`
	NodeID   string    `json:"node_id,omitempty"`
	Detail   string    `json:"detail"`
}

// Blocking reports whether the issue should block publication.
func (i Issue) Blocking() bool {
	return i.Severity == SeverityError
}

// Blocking filters a list of issues down to the ones that block publication.
func Blocking(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Blocking() {
			out = append(out, i)
		}
	}
	return out
}

// Validate checks the structural invariants of the flow and returns zero or
// more issues. It never mutates the flow. Cycles are permitted: the graph is a
// general digraph, and loop termination is enforced at execution time.
func (f *Flow) Validate() []Issue {
	var issues []Issue

	if _, ok := f.Nodes[f.StartNodeID]; !ok {
		issues = append(issues, Issue{
			Kind:     IssueDanglingReference,
			Severity: SeverityError,
			Detail:   fmt.Sprintf("start_node_id %q does not reference an existing node", f.StartNodeID),
		})
	}

	for _, id := range f.sortedNodeIDs() {
		issues = append(issues, f.validateNode(f.Nodes[id])...)
	}

	// Dead-end questions only matter when they can actually be reached.
	reachable := f.reachable()
	for _, id := range f.sortedNodeIDs() {
		n := f.Nodes[id]
		if !reachable[id] || n.Kind != KindQuestion {
			continue
		}
		if n.Question == nil || len(n.Question.Answers) == 0 {
			issues = append(issues, Issue{
				Kind:     IssueDeadEndQuestion,
				Severity: SeverityWarning,
				NodeID:   id,
				Detail:   "question node has no answers and cannot terminate gracefully",
			})
		}
	}

	return issues
}

func (f *Flow) validateNode(n *Node) []Issue {
	var issues []Issue

	if !n.Kind.Valid() {
		issues = append(issues, Issue{
			Kind:     IssueInvalidKind,
			Severity: SeverityError,
			NodeID:   n.ID,
			Detail:   fmt.Sprintf("unknown node kind %q", n.Kind),
		})
		return issues
	}

	switch n.Kind {
	case KindQuestion:
		if n.Question == nil {
			break
		}
		seen := make(map[string]bool, len(n.Question.Answers))
		for _, a := range n.Question.Answers {
			if seen[a.ID] {
				issues = append(issues, Issue{
					Kind:     IssueDuplicateAnswerID,
					Severity: SeverityError,
					NodeID:   n.ID,
					Detail:   fmt.Sprintf("answer_id %q appears more than once", a.ID),
				})
			}
			seen[a.ID] = true

			if a.NextNodeID != "" {
				if _, ok := f.Nodes[a.NextNodeID]; !ok {
					issues = append(issues, Issue{
						Kind:     IssueDanglingReference,
						Severity: SeverityError,
						NodeID:   n.ID,
						Detail:   fmt.Sprintf("answer %q links to missing node %q", a.ID, a.NextNodeID),
					})
				}
			}
			issues = append(issues, f.validateActions(n.ID, a.Actions)...)
		}

	case KindAction:
		issues = append(issues, f.validateActions(n.ID, n.Actions)...)
		if !hasExit(n.Actions) {
			issues = append(issues, Issue{
				Kind:     IssueActionNodeWithoutExit,
				Severity: SeverityError,
				NodeID:   n.ID,
				Detail:   "action node has no go_to_node or end_flow action",
			})
		}
	}

	return issues
}

func (f *Flow) validateActions(nodeID string, actions []Action) []Issue {
	var issues []Issue
	for _, act := range actions {
		if !act.Kind.Valid() {
			issues = append(issues, Issue{
				Kind:     IssueInvalidKind,
				Severity: SeverityError,
				NodeID:   nodeID,
				Detail:   fmt.Sprintf("unknown action kind %q", act.Kind),
			})
			continue
		}
		if act.Kind == ActionGoToNode {
			if _, ok := f.Nodes[act.NextNodeID]; !ok {
				issues = append(issues, Issue{
					Kind:     IssueDanglingReference,
					Severity: SeverityError,
					NodeID:   nodeID,
					Detail:   fmt.Sprintf("go_to_node action targets missing node %q", act.NextNodeID),
				})
			}
		}
	}
	return issues
}

func hasExit(actions []Action) bool {
	for _, act := range actions {
		if act.Kind == ActionGoToNode || act.Kind == ActionEndFlow {
			return true
		}
	}
	return false
}

// reachable returns the set of node IDs reachable from the start node.
func (f *Flow) reachable() map[string]bool {
	visited := make(map[string]bool)
	queue := []string{f.StartNodeID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			continue
		}
		n, ok := f.Nodes[id]
		if !ok {
			continue
		}
		visited[id] = true

		for _, target := range forwardLinks(n) {
			if target != "" && !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	return visited
}

// forwardLinks collects every outgoing edge of a node: answer links, answer
// actions and node-level actions.
func forwardLinks(n *Node) []string {
	var out []string
	if n.Question != nil {
		for _, a := range n.Question.Answers {
			out = append(out, a.NextNodeID)
			for _, act := range a.Actions {
				if act.Kind == ActionGoToNode {
					out = append(out, act.NextNodeID)
				}
			}
		}
	}
	for _, act := range n.Actions {
		if act.Kind == ActionGoToNode {
			out = append(out, act.NextNodeID)
		}
	}
	return out
}

func (f *Flow) sortedNodeIDs() []string {
	ids := make([]string, 0, len(f.Nodes))
	for id := range f.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids
}
