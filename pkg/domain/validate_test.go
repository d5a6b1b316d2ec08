package domain_test

import (
	"testing"

	"github.com/quotedeck/flowkit/pkg/domain"
)

// twoQuestionFlow builds a small valid flow by hand:
// q1 -> (yes) q2 -> (done) end
func twoQuestionFlow() *domain.Flow {
	f := domain.NewFlow("f1", "Test flow", "roofing")
	f.StartNodeID = "q1"
	f.Nodes["q1"] = &domain.Node{
		ID:   "q1",
		Kind: domain.KindQuestion,
		Question: &domain.Question{
			Text: "First?",
			Answers: []domain.Answer{
				{ID: "yes", Text: "Yes", NextNodeID: "q2"},
			},
		},
	}
	f.Nodes["q2"] = &domain.Node{
		ID:   "q2",
		Kind: domain.KindQuestion,
		Question: &domain.Question{
			Text: "Second?",
			Answers: []domain.Answer{
				{ID: "done", Text: "Done", NextNodeID: "end"},
			},
		},
	}
	f.Nodes["end"] = &domain.Node{ID: "end", Kind: domain.KindEnd}
	return f
}

func findIssue(issues []domain.Issue, kind domain.IssueKind) *domain.Issue {
	for i := range issues {
		if issues[i].Kind == kind {
			return &issues[i]
		}
	}
	return nil
}

func TestValidate_ValidFlow(t *testing.T) {
	f := twoQuestionFlow()
	issues := f.Validate()
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidate_DanglingStart(t *testing.T) {
	f := twoQuestionFlow()
	f.StartNodeID = "missing"

	issues := f.Validate()
	issue := findIssue(issues, domain.IssueDanglingReference)
	if issue == nil {
		t.Fatalf("expected dangling_reference, got %v", issues)
	}
	if !issue.Blocking() {
		t.Error("dangling start reference should be blocking")
	}
}

func TestValidate_DanglingAnswerLink(t *testing.T) {
	f := twoQuestionFlow()
	f.Nodes["q2"].Question.Answers[0].NextNodeID = "nowhere"

	issues := f.Validate()
	issue := findIssue(issues, domain.IssueDanglingReference)
	if issue == nil {
		t.Fatalf("expected dangling_reference, got %v", issues)
	}
	if issue.NodeID != "q2" {
		t.Errorf("expected issue on q2, got %q", issue.NodeID)
	}
}

func TestValidate_DanglingGoToNode(t *testing.T) {
	f := twoQuestionFlow()
	f.Nodes["a1"] = &domain.Node{
		ID:      "a1",
		Kind:    domain.KindAction,
		Actions: []domain.Action{domain.GoToNode("nowhere")},
	}
	f.Nodes["q1"].Question.Answers[0].NextNodeID = "a1"

	issues := f.Validate()
	if findIssue(issues, domain.IssueDanglingReference) == nil {
		t.Fatalf("expected dangling_reference, got %v", issues)
	}
}

func TestValidate_DuplicateAnswerID(t *testing.T) {
	f := twoQuestionFlow()
	q := f.Nodes["q1"].Question
	q.Answers = append(q.Answers, domain.Answer{ID: "yes", Text: "Again", NextNodeID: "q2"})

	issues := f.Validate()
	issue := findIssue(issues, domain.IssueDuplicateAnswerID)
	if issue == nil {
		t.Fatalf("expected duplicate_answer_id, got %v", issues)
	}
	if !issue.Blocking() {
		t.Error("duplicate answer ids should be blocking")
	}
}

func TestValidate_DeadEndQuestionIsWarning(t *testing.T) {
	f := twoQuestionFlow()
	f.Nodes["q2"].Question.Answers = nil

	issues := f.Validate()
	issue := findIssue(issues, domain.IssueDeadEndQuestion)
	if issue == nil {
		t.Fatalf("expected dead_end_question, got %v", issues)
	}
	if issue.Severity != domain.SeverityWarning {
		t.Errorf("dead end should be a warning, got %s", issue.Severity)
	}
	if len(domain.Blocking(issues)) != 0 {
		t.Error("a dead-end warning must not block publication")
	}
}

func TestValidate_UnreachableDeadEndNotReported(t *testing.T) {
	f := twoQuestionFlow()
	// Orphan question with no answers, not linked from anywhere.
	f.Nodes["orphan"] = &domain.Node{
		ID:       "orphan",
		Kind:     domain.KindQuestion,
		Question: &domain.Question{Text: "Lost?"},
	}

	issues := f.Validate()
	if findIssue(issues, domain.IssueDeadEndQuestion) != nil {
		t.Errorf("unreachable dead end should not be reported, got %v", issues)
	}
}

func TestValidate_ActionNodeWithoutExit(t *testing.T) {
	f := twoQuestionFlow()
	f.Nodes["a1"] = &domain.Node{
		ID:      "a1",
		Kind:    domain.KindAction,
		Actions: []domain.Action{domain.PopulateField("x", 1)},
	}
	f.Nodes["q1"].Question.Answers[0].NextNodeID = "a1"

	issues := f.Validate()
	issue := findIssue(issues, domain.IssueActionNodeWithoutExit)
	if issue == nil {
		t.Fatalf("expected action_node_without_exit, got %v", issues)
	}
	if !issue.Blocking() {
		t.Error("an action node without exit should be blocking")
	}
}

func TestValidate_ActionNodeWithEndFlowExit(t *testing.T) {
	f := twoQuestionFlow()
	f.Nodes["a1"] = &domain.Node{
		ID:      "a1",
		Kind:    domain.KindAction,
		Actions: []domain.Action{domain.PopulateField("x", 1), domain.EndFlow()},
	}
	f.Nodes["q1"].Question.Answers[0].NextNodeID = "a1"

	if findIssue(f.Validate(), domain.IssueActionNodeWithoutExit) != nil {
		t.Error("end_flow counts as an exit")
	}
}

func TestValidate_InvalidKinds(t *testing.T) {
	f := twoQuestionFlow()
	f.Nodes["weird"] = &domain.Node{ID: "weird", Kind: "teleport"}
	f.Nodes["q2"].Question.Answers[0].Actions = []domain.Action{{Kind: "explode"}}

	issues := f.Validate()
	var count int
	for _, i := range issues {
		if i.Kind == domain.IssueInvalidKind {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 invalid_kind issues, got %d: %v", count, issues)
	}
}

func TestValidate_CycleIsLegal(t *testing.T) {
	f := twoQuestionFlow()
	// q2 loops back to q1.
	f.Nodes["q2"].Question.Answers = append(f.Nodes["q2"].Question.Answers,
		domain.Answer{ID: "back", Text: "Back", NextNodeID: "q1"})

	if issues := f.Validate(); len(issues) != 0 {
		t.Fatalf("cycles are a legal shape, got %v", issues)
	}
}
