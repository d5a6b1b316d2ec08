package builder

import "github.com/quotedeck/flowkit/pkg/domain"

// NodePatch is a partial update for a node. Nil fields are left untouched.
type NodePatch struct {
	// Kind switches the node variant. Kind-incompatible payloads are reset.
	Kind *domain.NodeKind

	// QuestionText updates the question prompt (question nodes only).
	QuestionText *string

	// BoundFieldID updates the quote-field binding (question nodes only).
	// Set to a pointer to "" to clear the binding.
	BoundFieldID *string

	// Actions replaces the action list (action nodes only).
	Actions *[]domain.Action
}

// AnswerPatch is a partial update for an answer. Nil fields are left untouched.
type AnswerPatch struct {
	Text  *string
	Value *any

	// NextNodeID replaces the forward link. Set to a pointer to "" to clear it.
	NextNodeID *string

	// Actions replaces the answer's action list.
	Actions *[]domain.Action
}

// Ptr is a convenience for building patches from literals.
func Ptr[T any](v T) *T {
	return &v
}
