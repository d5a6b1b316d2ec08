/*
Package ports declares the boundary interfaces of the flow engine.

Persistence (flow documents, intake session state) and catalog lookups (quote
fields, products) are external collaborators. The core never performs I/O of
its own; adapters implement these interfaces over memory, the filesystem, or
Redis.
*/
package ports
