// Package pipeline orchestrates document analysis as a sequence of steps.
//
// A single analysis loads the document's pages, runs text extraction,
// visual extraction and scoring in order, and produces one immutable
// AnalysisResult. The pipeline abstraction keeps the stages independently
// testable and records which stages ran in the result.
//
// BatchProcessor runs the same pipeline over many documents concurrently
// with a bounded worker count.
package pipeline
