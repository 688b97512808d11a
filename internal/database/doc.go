// Package database provides SQLite-based persistence for analysis history.
//
// Every completed analysis can be stored with its full result serialized to
// JSON, keyed by the content fingerprint. The history lets reviewers
// compare a re-analysis against earlier runs of the same document and audit
// when a document was last checked.
package database
