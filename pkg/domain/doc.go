/*
Package domain contains the core model for conversational quote-intake flows.

It defines the fundamental entities of the flow graph, such as Nodes, Answers,
Actions and the execution State. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Flow: The aggregate root, a directed graph of nodes keyed by node ID.
  - Node: A step in the conversation; a tagged variant over Question, Action and End.
  - Answer: A selectable response to a Question node, optionally carrying
    side-effect actions and a forward link.
  - Action: A side effect applied during execution (populate a quote field,
    add a line item, jump to a node, end the flow).
  - State: The runtime snapshot of an intake session (current node, collected
    fields, line items, visit counts).
  - QuoteDraft: The accumulated output handed to the quote-calculation subsystem.
*/
package domain
