// Package llmtext provides a documentation-site scraper that aggregates a
// site's pages into a single plain-text artifact suitable for LLM
// consumption. It discovers in-scope pages by breadth-first link discovery,
// caches discovered URLs and extracted text for incremental re-runs,
// optionally rewrites page text through an LLM formatter, and writes the
// aggregated artifact atomically.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package llmtext
