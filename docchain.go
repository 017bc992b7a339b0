// Package docchain compiles a documentation site into a single document by
// following its sequential chain of "next" pages, extracting clean content
// from every page, and indexing each page by word offset so the compiled
// document can be retrieved page by page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package docchain
