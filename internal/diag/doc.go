// Package diag defines the diagnostic model shared by the scanning and
// validation phases.
//
// Diagnostic is the central record: Severity (Info/Warning/Error), a compact
// numeric Code with a stable string form, a human oriented Message, the
// Primary source.Span pointing at the issue, and optional Notes with
// secondary spans.
//
// Producers emit through a diag.Reporter to stay decoupled from storage;
// diag.BagReporter aggregates into a Bag, which supports sorting,
// deduplication and merging. Package diag performs no formatting or IO —
// rendering lives in internal/diagfmt.
//
// There are no fatal conditions in this model. Malformed input degrades to
// fewer or less precise diagnostics, never to an abort: the source being
// analyzed is frequently mid-edit.
package diag
