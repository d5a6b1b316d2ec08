package flowkit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/quotedeck/flowkit/internal/runtime"
	"github.com/quotedeck/flowkit/pkg/domain"
)

// ContentRenderer transforms question text before it is written, so a TUI
// frontend can apply markdown or ANSI styling without coupling this package
// to a terminal library.
type ContentRenderer func(string) (string, error)

// Runner drives an interactive intake session over the provided IO. Answers
// are selected by number or by answer ID; the loop ends when the flow
// terminates or the input reaches EOF.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Renderer ContentRenderer
}

// Run executes one intake session and returns the resulting quote draft.
func (r *Runner) Run(ctx context.Context, engine *Engine) (*domain.QuoteDraft, error) {
	if r.Input == nil {
		return nil, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lines := bufio.NewReader(r.Input)

	state, err := engine.Start(ctx)
	if err != nil {
		return nil, err
	}

	for !state.Terminated() {
		prompt, err := engine.Prompt(state)
		if err != nil {
			return nil, err
		}

		text := prompt.Question
		if r.Renderer != nil {
			if rendered, rerr := r.Renderer(text); rerr == nil {
				text = rendered
			}
		}
		fmt.Fprintln(r.Output, strings.TrimSpace(text))
		for i, opt := range prompt.Answers {
			fmt.Fprintf(r.Output, "  %d) %s\n", i+1, opt.Text)
		}
		fmt.Fprint(r.Output, "> ")

		raw, err := lines.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read input: %w", err)
		}
		input := strings.TrimSpace(raw)
		if input == "" && err == io.EOF {
			return nil, fmt.Errorf("input ended before the flow finished")
		}
		if input == "exit" || input == "quit" {
			return nil, fmt.Errorf("session aborted")
		}

		answerID := resolveAnswer(prompt.Answers, input)
		next, serr := engine.SubmitAnswer(ctx, state, answerID)
		if serr != nil {
			var invalid *domain.InvalidAnswerError
			if errors.As(serr, &invalid) {
				fmt.Fprintf(r.Output, "unknown choice %q, try again\n", input)
				continue
			}
			return nil, serr
		}
		state = next
	}

	draft := state.Draft()
	r.printDraft(&draft)
	return &draft, nil
}

// resolveAnswer maps user input to an answer ID: a 1-based option number
// first, a literal answer ID otherwise.
func resolveAnswer(options []runtime.AnswerOption, input string) string {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1].ID
	}
	return input
}

func (r *Runner) printDraft(draft *domain.QuoteDraft) {
	fmt.Fprintln(r.Output, "--- quote draft ---")
	keys := make([]string, 0, len(draft.Fields))
	for k := range draft.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(r.Output, "%s: %v\n", k, draft.Fields[k])
	}
	for _, item := range draft.LineItems {
		fmt.Fprintf(r.Output, "item: %s x%g\n", item.ProductID, item.Quantity)
	}
}
