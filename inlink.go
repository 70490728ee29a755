// Package inlink provides a CLI-based internal linking analysis tool.
// It reads a website's sitemap, fetches every listed page, and finds
// occurrences of user-supplied keywords in page headings and paragraphs,
// recording the surrounding words as context.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package inlink
