// Package log provides confidentiality-aware logging for docrisk, built on
// top of the standard slog package.
//
// Analyzed documents are frequently contracts and other confidential
// material, and debug logging naturally wants to show what matched. The
// RedactHandler lets both coexist: attribute values that carry document
// content (text excerpts, matched clauses, monetary figures, email
// addresses) are masked before the record reaches the underlying handler,
// even in verbose mode. Structural values such as counts, scores and page
// numbers pass through untouched.
//
// # Usage
//
//	logger := log.NewRedactLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("clause matched",
//	    "clause", "unlimited liability",  // masked
//	    "page", 3,                        // kept
//	)
package log
