package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/docrisk/docrisk/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting and severity indicators.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with impact and recommendation
// details per finding.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result in human-readable format.
func (w *SimpleWriter) Write(result *model.AnalysisResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeRiskSummary(&sb, result)
	w.writeTextEvidence(&sb, result)
	w.writeVisualEvidence(&sb, result)
	w.writeFindings(&sb, result)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with document information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.AnalysisResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      DOCUMENT RISK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Document:    %s\n", result.DocumentName))
	if result.DocumentID != "" {
		sb.WriteString(fmt.Sprintf("Fingerprint: %s\n", shorten(result.DocumentID, 16)))
	}
	sb.WriteString(fmt.Sprintf("Analyzed:    %s\n", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Pages:       %d\n", result.PageCount))
	sb.WriteString("\n")
}

// writeRiskSummary writes the scores and the tier verdict.
func (w *SimpleWriter) writeRiskSummary(sb *strings.Builder, result *model.AnalysisResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RISK SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if result.Tier == model.TierUnanalyzable {
		sb.WriteString("  Verdict:     UNANALYZABLE (no readable pages)\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("  Text risk:   %5.1f / 100\n", result.TextRisk))
	sb.WriteString(fmt.Sprintf("  Visual risk: %5.1f / 100\n", result.VisualRisk))
	sb.WriteString(fmt.Sprintf("  Overall:     %5.1f / 100\n", result.OverallRisk))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Verdict:     %s\n", strings.ToUpper(result.TierText)))
	sb.WriteString("\n")
}

// writeTextEvidence writes the textual analysis section.
func (w *SimpleWriter) writeTextEvidence(sb *strings.Builder, result *model.AnalysisResult) {
	text := result.Text
	empty := len(text.KeywordCounts) == 0 && len(text.Amounts) == 0 && len(text.ClauseMatches) == 0
	if empty && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("TEXT ANALYSIS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Words:            %d\n", text.WordCount))
	sb.WriteString(fmt.Sprintf("  Keyword hits:     %d\n", text.TotalKeywordHits()))
	sb.WriteString(fmt.Sprintf("  Clause matches:   %d\n", len(text.ClauseMatches)))
	sb.WriteString(fmt.Sprintf("  Monetary amounts: %d (total %.2f)\n", len(text.Amounts), text.TotalAmount()))
	sb.WriteString("\n")
}

// writeVisualEvidence writes the visual analysis section.
func (w *SimpleWriter) writeVisualEvidence(sb *strings.Builder, result *model.AnalysisResult) {
	visual := result.Visual
	if visual.PagesAnalyzed == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("VISUAL ANALYSIS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Pages analyzed:   %d\n", visual.PagesAnalyzed))
	sb.WriteString(fmt.Sprintf("  Signatures:       %d\n", visual.SignatureCount))
	sb.WriteString(fmt.Sprintf("  Stamps:           %d\n", visual.StampCount))
	if visual.LayoutConsistency != nil {
		sb.WriteString(fmt.Sprintf("  Layout:           %.2f consistency\n", *visual.LayoutConsistency))
	} else {
		sb.WriteString("  Layout:           no evidence\n")
	}
	sb.WriteString("\n")
}

// writeFindings writes all findings grouped by severity.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, result *model.AnalysisResult) {
	if !result.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	// Write findings in order of severity (high first).
	severities := []model.Severity{
		model.SeverityHigh,
		model.SeverityWarning,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		findings := result.FindingsBySeverity(severity)
		if len(findings) == 0 && !w.showEmpty {
			continue
		}

		w.writeFindingsForSeverity(sb, severity, findings)
	}
}

// writeFindingsForSeverity writes findings of a specific severity level.
func (w *SimpleWriter) writeFindingsForSeverity(sb *strings.Builder, severity model.Severity, findings []model.Finding) {
	indicator := w.getSeverityIndicator(severity)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, severity.String()))

	if len(findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, finding := range findings {
		sb.WriteString(fmt.Sprintf("  * %s\n", finding.Message))
		if w.verbose {
			if finding.Impact != "" {
				sb.WriteString(fmt.Sprintf("    Impact: %s\n", finding.Impact))
			}
			if finding.Recommendation != "" {
				sb.WriteString(fmt.Sprintf("    Recommendation: %s\n", finding.Recommendation))
			}
		}
	}
	sb.WriteString("\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *SimpleWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityHigh:
		return "!!"
	case model.SeverityWarning:
		return "!"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by docrisk\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// shorten truncates a string to maxLen characters with ellipsis.
func shorten(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
