// Package score turns extracted risk evidence into sub-scores, a fused
// overall score, a triage tier and a deterministic list of findings.
//
// Scoring is a pure function of the feature records and the configuration:
// it performs no I/O, never fails, and produces identical output for
// identical input. All scores live on a fixed [0,100] scale so thresholds
// and reports stay comparable across documents.
package score
