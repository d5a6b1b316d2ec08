package domain

// ExecutionStatus defines the current mode of an intake session.
type ExecutionStatus string

const (
	// StatusActive means the engine is positioned on a node and can advance.
	StatusActive ExecutionStatus = "active"
	// StatusTerminated means the session reached a terminal state.
	StatusTerminated ExecutionStatus = "terminated"
)

// State represents the current snapshot of an intake session.
type State struct {
	// FlowID identifies the flow this session runs against.
	FlowID string `json:"flow_id"`

	// CurrentNodeID is the identifier of the active node.
	CurrentNodeID string `json:"current_node_id"`

	// Status indicates if the session is running or done.
	Status ExecutionStatus `json:"status"`

	// Fields holds the collected quote-field values (last write wins).
	Fields map[string]any `json:"fields"`

	// LineItems holds the accumulated product line items, in execution order.
	LineItems []LineItem `json:"line_items"`

	// Visits counts entries per node, used to bound cycles.
	Visits map[string]int `json:"visits"`

	// History tracks the path taken, for debugging and visual overlays.
	History []string `json:"history"`
}

// NewState creates a clean session state starting at a specific node.
func NewState(flowID, startNodeID string) *State {
	return &State{
		FlowID:        flowID,
		CurrentNodeID: startNodeID,
		Status:        StatusActive,
		Fields:        make(map[string]any),
		Visits:        map[string]int{startNodeID: 1},
		History:       []string{startNodeID},
	}
}

// Terminated reports whether the session reached a terminal state.
func (s *State) Terminated() bool {
	return s.Status == StatusTerminated
}

// Clone returns a copy of the state with deep-copied collections, safe for
// independent mutation.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.Fields = make(map[string]any, len(s.Fields))
	for k, v := range s.Fields {
		out.Fields[k] = v
	}
	out.Visits = make(map[string]int, len(s.Visits))
	for k, v := range s.Visits {
		out.Visits[k] = v
	}
	out.LineItems = append([]LineItem(nil), s.LineItems...)
	out.History = append([]string(nil), s.History...)
	return &out
}

// QuoteDraft is the accumulated result of running a flow to termination.
// Pricing, margins and rebates are applied downstream.
type QuoteDraft struct {
	FlowID    string         `json:"flow_id"`
	Fields    map[string]any `json:"fields"`
	LineItems []LineItem     `json:"line_items"`
}

// Draft extracts the quote draft from the session state.
func (s *State) Draft() QuoteDraft {
	fields := make(map[string]any, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	return QuoteDraft{
		FlowID:    s.FlowID,
		Fields:    fields,
		LineItems: append([]LineItem(nil), s.LineItems...),
	}
}
