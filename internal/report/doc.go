// Package report renders analysis results in multiple output formats.
//
// Three writers are provided: SimpleWriter for human-readable terminal
// output, JSONWriter for tool integration, and MarkdownWriter for
// documentation and sharing. MultiWriter fans a result out to several
// writers, typically terminal plus a file.
//
// Writers render the result exactly as scored; they never reorder or
// filter findings beyond grouping by severity for display.
package report
