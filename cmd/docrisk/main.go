// Package main provides the entry point for the docrisk CLI.
//
// docrisk analyzes documents (contracts, agreements, invoices) for risk by
// combining textual signals (risk vocabulary, clauses, monetary amounts)
// with visual signals (signatures, stamps, layout) into a single risk score
// and triage tier.
//
// Usage:
//
//	docrisk analyze <document>
//	docrisk history
//
// See --help for all available options.
package main

// main is the entry point for docrisk.
func main() {
	Execute()
}
