/*
Package builder is the only sanctioned way to change a flow graph.

It provides two layers:

  - Draft: the mutation API the visual builder (and programmatic importers)
    call. Operations mutate the wrapped flow in place and return typed errors
    for expected conditions; they never panic. Reference integrity is kept on
    every destructive operation: deleting a node scrubs every link to it.

  - FlowBuilder: a fluent DSL for constructing flows programmatically, which
    is the natural way to define fixtures in tests and examples.

Example usage:

	fb := builder.NewFlow("roof-intake", "Roofing Intake", "roofing")

	fb.Question("start").
		Text("Residential or commercial?").
		BindField("project_type").
		Answer("residential", "Residential", "residential").Go("materials").
		Answer("commercial", "Commercial", "commercial").Go("materials")

	fb.Action("materials").
		Do(domain.AddLineItem("underlay", 1), domain.GoToNode("done"))

	fb.End("done")

	flow, err := fb.Start("start").Build()
*/
package builder
