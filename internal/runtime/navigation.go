package runtime

import (
	"context"

	"github.com/quotedeck/flowkit/pkg/domain"
)

// advance drains the chain of nodes that require no user input: action nodes
// run their action lists, end nodes terminate. It returns once the state is
// terminated or positioned on a question node.
func (e *Engine) advance(ctx context.Context, state *domain.State) (*domain.State, error) {
	for !state.Terminated() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node, err := e.flow.Node(state.CurrentNodeID)
		if err != nil {
			return nil, err
		}

		switch node.Kind {
		case domain.KindQuestion:
			return state, nil

		case domain.KindEnd:
			e.terminate(state)

		case domain.KindAction:
			// An action node with no jump and no end would hang the engine.
			// Validation flags this at publish time; the guard here covers
			// unvalidated graphs.
			if !actionsExit(node.Actions) {
				return nil, &domain.StructuralError{
					Code:   domain.CodeActionNodeWithoutExit,
					NodeID: node.ID,
					Detail: "action node has no go_to_node or end_flow action",
				}
			}
			before := state.CurrentNodeID
			jumped, err := e.applyActions(state, node.ID, node.Actions)
			if err != nil {
				return nil, err
			}
			if !state.Terminated() && (!jumped || state.CurrentNodeID == before) {
				return nil, &domain.StructuralError{
					Code:   domain.CodeActionNodeWithoutExit,
					NodeID: node.ID,
					Detail: "action node did not leave the node",
				}
			}

		default:
			return nil, &domain.StructuralError{
				Code:   domain.CodeInvalidKind,
				NodeID: node.ID,
				Detail: "unknown node kind " + string(node.Kind),
			}
		}
	}

	return state, nil
}

// applyActions executes an action list in order. end_flow short-circuits the
// remainder of the list; go_to_node moves the current node immediately and
// reports jumped=true.
func (e *Engine) applyActions(state *domain.State, nodeID string, actions []domain.Action) (jumped bool, err error) {
	for _, act := range actions {
		switch act.Kind {
		case domain.ActionPopulateField:
			// Last write wins, in list order.
			state.Fields[act.FieldID] = act.Value

		case domain.ActionAddLineItem:
			// Duplicate products accumulate as separate entries; merging is a
			// downstream pricing concern.
			state.LineItems = append(state.LineItems, domain.LineItem{
				ProductID: act.ProductID,
				Quantity:  act.Quantity,
			})

		case domain.ActionGoToNode:
			if err := e.enterNode(state, act.NextNodeID); err != nil {
				return jumped, err
			}
			jumped = true

		case domain.ActionEndFlow:
			e.terminate(state)
			e.emitActionApplied(nodeID, act)
			return jumped, nil

		default:
			return jumped, &domain.StructuralError{
				Code:   domain.CodeInvalidKind,
				NodeID: nodeID,
				Detail: "unknown action kind " + string(act.Kind),
			}
		}
		e.emitActionApplied(nodeID, act)
	}
	return jumped, nil
}

// enterNode moves the state onto a node, counting the visit and enforcing the
// loop bound.
func (e *Engine) enterNode(state *domain.State, nodeID string) error {
	node, err := e.flow.Node(nodeID)
	if err != nil {
		return err
	}

	state.Visits[nodeID]++
	if state.Visits[nodeID] > e.loopLimit {
		return &domain.LoopLimitError{NodeID: nodeID, Limit: e.loopLimit}
	}

	state.CurrentNodeID = nodeID
	state.History = append(state.History, nodeID)
	e.logger.Debug("node entered", "node", nodeID, "kind", node.Kind, "visits", state.Visits[nodeID])
	e.emitNodeEnter(nodeID)
	return nil
}

func (e *Engine) terminate(state *domain.State) {
	if state.Terminated() {
		return
	}
	state.Status = domain.StatusTerminated
	e.logger.Debug("flow terminated", "flow", state.FlowID, "node", state.CurrentNodeID)
	if e.hooks.OnTerminate != nil {
		e.hooks.OnTerminate(state)
	}
}

func (e *Engine) emitNodeEnter(nodeID string) {
	if e.hooks.OnNodeEnter == nil {
		return
	}
	if node, err := e.flow.Node(nodeID); err == nil {
		e.hooks.OnNodeEnter(nodeID, node.Kind)
	}
}

func (e *Engine) emitActionApplied(nodeID string, action domain.Action) {
	if e.hooks.OnActionApplied != nil {
		e.hooks.OnActionApplied(nodeID, action)
	}
}

func actionsExit(actions []domain.Action) bool {
	for _, act := range actions {
		if act.Kind == domain.ActionGoToNode || act.Kind == domain.ActionEndFlow {
			return true
		}
	}
	return false
}
