// Package flowkit is a library for building and executing conversational
// quote-intake flows: directed graphs of question, action, and end nodes
// that walk a customer through a trade-specific questionnaire and accumulate
// a quote draft (field values plus product line items) along the way.
//
// The package is split into layers:
//
//   - pkg/domain holds the flow graph model, validation, and execution state.
//   - pkg/schema is the JSON/YAML document codec, round-trip safe for
//     unknown fields.
//   - pkg/builder offers graph mutation for editors plus a fluent DSL for
//     authoring flows in code.
//   - pkg/canvas tracks editor-only layout state (positions, selection).
//   - pkg/ports defines the persistence and catalog interfaces, with
//     adapters under pkg/adapters (memory, redis, file).
//   - internal/runtime is the execution engine; this root package wraps it
//     in a small facade for embedding.
//
// A minimal embedding:
//
//	flow, err := builder.NewFlow("f1", "Roof intake", "roofing").
//		Question("q1").Text("Roof type?").
//		Answer("a1", "Shingle", "shingle").Go("done").
//		End("done").
//		Start("q1").
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	engine := flowkit.New(flow)
//	state, err := engine.Start(ctx)
//	state, err = engine.SubmitAnswer(ctx, state, "a1")
//	draft := state.Draft()
package flowkit
