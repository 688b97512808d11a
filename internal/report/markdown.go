package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/docrisk/docrisk/internal/model"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeRiskSummary(md, result)
	w.writeEvidence(md, result)
	w.writeFindings(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with document information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H1("Document Risk Report")
	md.PlainText("")

	fingerprint := result.DocumentID
	if fingerprint == "" {
		fingerprint = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + result.DocumentName + "`"},
			{"Fingerprint", "`" + shorten(fingerprint, 16) + "`"},
			{"Analyzed", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages", strconv.Itoa(result.PageCount)},
		},
	})
	md.PlainText("")
}

// writeRiskSummary writes the scores, the tier verdict and an alert.
func (w *MarkdownWriter) writeRiskSummary(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H2("Risk Summary")
	md.PlainText("")

	if result.Tier == model.TierUnanalyzable {
		md.Cautionf("The document yielded no readable pages; no risk verdict was produced.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Score", "Value"},
		Rows: [][]string{
			{"Text risk", fmt.Sprintf("%.1f / 100", result.TextRisk)},
			{"Visual risk", fmt.Sprintf("%.1f / 100", result.VisualRisk)},
			{"**Overall**", fmt.Sprintf("**%.1f / 100**", result.OverallRisk)},
		},
	})
	md.PlainText("")

	switch result.Tier {
	case model.TierHigh:
		md.Cautionf("HIGH risk: this document needs review before any commitment (overall %.1f).", result.OverallRisk)
	case model.TierMedium:
		md.Warningf("MEDIUM risk: review the findings below (overall %.1f).", result.OverallRisk)
	default:
		md.Tip(fmt.Sprintf("LOW risk: no significant concerns detected (overall %.1f).", result.OverallRisk))
	}
	md.PlainText("")

	if result.HasFindings() {
		w.writeSeverityChart(md, result)
	}
}

// writeSeverityChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writeSeverityChart(md *markdown.Markdown, result *model.AnalysisResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if n := result.CountBySeverity(model.SeverityHigh); n > 0 {
		chart.LabelAndIntValue("High", uint64(n))
	}
	if n := result.CountBySeverity(model.SeverityWarning); n > 0 {
		chart.LabelAndIntValue("Warning", uint64(n))
	}
	if n := result.CountBySeverity(model.SeverityInfo); n > 0 {
		chart.LabelAndIntValue("Info", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeEvidence writes the extracted evidence tables.
func (w *MarkdownWriter) writeEvidence(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H2("Evidence")
	md.PlainText("")

	layout := "no evidence"
	if result.Visual.LayoutConsistency != nil {
		layout = fmt.Sprintf("%.2f consistency", *result.Visual.LayoutConsistency)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Channel", "Signal", "Value"},
		Rows: [][]string{
			{"Text", "Words", strconv.Itoa(result.Text.WordCount)},
			{"Text", "Keyword hits", strconv.Itoa(result.Text.TotalKeywordHits())},
			{"Text", "Clause matches", strconv.Itoa(len(result.Text.ClauseMatches))},
			{"Text", "Monetary total", fmt.Sprintf("%.2f", result.Text.TotalAmount())},
			{"Visual", "Signatures", strconv.Itoa(result.Visual.SignatureCount)},
			{"Visual", "Stamps", strconv.Itoa(result.Visual.StampCount)},
			{"Visual", "Layout", layout},
		},
	})
	md.PlainText("")
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H2("Findings")
	md.PlainText("")

	if !result.HasFindings() {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityHigh, "### 🔴 High"},
		{model.SeverityWarning, "### 🟡 Warning"},
		{model.SeverityInfo, "### ⚪ Info"},
	}

	for _, sev := range severities {
		findings := result.FindingsBySeverity(sev.level)
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	rows := make([][]string, len(findings))
	for i, f := range findings {
		rec := f.Recommendation
		if rec == "" {
			rec = "-"
		}
		rows[i] = []string{
			f.Type,
			shorten(f.Message, 70),
			shorten(rec, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Type", "Message", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")

	// Add impact details for all findings that carry one.
	for _, f := range findings {
		if f.Impact != "" {
			md.Details(strings.ReplaceAll(f.Type, "_", " "), f.Impact)
		}
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by docrisk*")
}
