package runtime

import (
	"github.com/quotedeck/flowkit/pkg/domain"
)

// AnswerOption is one selectable choice presented to the user.
type AnswerOption struct {
	ID   string `json:"answer_id"`
	Text string `json:"text"`
}

// Prompt describes what the host should ask next, or that the flow is done.
type Prompt struct {
	Terminal bool           `json:"terminal"`
	NodeID   string         `json:"node_id,omitempty"`
	Question string         `json:"question,omitempty"`
	Answers  []AnswerOption `json:"answers,omitempty"`
}

// Prompt calculates the presentation for a state without advancing it.
func (e *Engine) Prompt(state *domain.State) (*Prompt, error) {
	if state.Terminated() {
		return &Prompt{Terminal: true}, nil
	}

	node, err := e.flow.Node(state.CurrentNodeID)
	if err != nil {
		return nil, err
	}
	if node.Kind != domain.KindQuestion || node.Question == nil {
		return nil, &domain.StructuralError{
			Code:   domain.CodeInvalidKind,
			NodeID: node.ID,
			Detail: "state is not positioned on a question node",
		}
	}

	p := &Prompt{
		NodeID:   node.ID,
		Question: node.Question.Text,
		Answers:  make([]AnswerOption, 0, len(node.Question.Answers)),
	}
	for _, a := range node.Question.Answers {
		p.Answers = append(p.Answers, AnswerOption{ID: a.ID, Text: a.Text})
	}
	return p, nil
}
