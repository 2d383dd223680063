// Package sitekb turns a website into a searchable knowledge base and answers
// natural language questions from it. It crawls a site breadth-first within a
// domain and depth/page limits, splits page text into overlapping chunks,
// embeds and indexes them in a vector store, and answers questions from the
// retrieved context.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package sitekb
