// Package extractor turns raw document pages into structured risk evidence.
//
// Two independent extractors live here. TextExtractor scans the document
// text for weighted risk keywords, high-risk clause phrases and monetary
// amounts. VisualExtractor scans the rendered page images for signature and
// stamp shaped ink regions, layout irregularity and editing-software traces
// in image metadata.
//
// Extractors are pure with respect to their inputs: the same pages and the
// same configuration always produce the same features. They record evidence
// only and never make risk judgements; scoring is the job of
// internal/score.
package extractor
