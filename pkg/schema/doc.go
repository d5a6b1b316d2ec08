/*
Package schema owns the portable representation of flow documents.

Flows are persisted and exchanged as single JSON documents. The codec is
lossless: every model field survives a round trip, and unknown fields from
newer template versions are preserved opaquely rather than dropped.

YAML input is accepted at the tooling boundary and normalized to JSON before
decoding, so authored flow files may use either format.
*/
package schema
