// Package partcat provides a local component-catalog cache with live
// enrichment. It downloads a sharded component dataset into a local SQLite
// store, answers keyword and parametric searches against it, and merges
// results at read time with best-effort per-component lookups against the
// supplier's live product API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, build/).
package partcat
