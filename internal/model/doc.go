// Package model defines the core data structures used throughout docrisk.
//
// This package contains the following main types:
//   - Page: A rendered document page (extracted text plus a pixel grid)
//   - TextFeatures / VisualFeatures: Structured risk evidence per stream
//   - AnalysisResult: The fused, immutable analysis artifact
//   - Finding: A single human-readable risk statement with a severity tag
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extractor, score, pipeline, report) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
