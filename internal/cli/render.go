package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/recbatch/internal/batch"
)

// summaryBoxWidth is the width of the styled result box.
const summaryBoxWidth = 56

// BatchSummary describes one emitted batch for reporting.
type BatchSummary struct {
	Index       int `json:"index"`
	RecordCount int `json:"record_count"`
	ByteSize    int `json:"byte_size"`
}

// metricRow pairs a display label with a counter value, in stable order.
type metricRow struct {
	Label string
	Value int64
}

// metricsRows returns the four counters in display order.
func metricsRows(metrics batch.Snapshot) []metricRow {
	return []metricRow{
		{"Records processed", metrics[batch.MetricRecordsProcessed]},
		{"Records discarded", metrics[batch.MetricRecordsDiscarded]},
		{"Batches created", metrics[batch.MetricBatchesCreated]},
		{"Total bytes processed", metrics[batch.MetricTotalBytesProcessed]},
	}
}

// renderResultJSON writes batch summaries and metrics as indented JSON.
func renderResultJSON(w io.Writer, summaries []BatchSummary, metrics batch.Snapshot) error {
	response := struct {
		Batches []BatchSummary `json:"batches"`
		Metrics batch.Snapshot `json:"metrics"`
	}{
		Batches: summaries,
		Metrics: metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}

// renderResultTable writes the batch and metrics summary as a table, styled
// when w is an interactive terminal and plain otherwise.
func renderResultTable(w io.Writer, summaries []BatchSummary, metrics batch.Snapshot) error {
	if isWriterTerminal(w) {
		return renderStyledResult(w, summaries, metrics)
	}
	return renderPlainResult(w, summaries, metrics)
}

// renderStyledResult renders a boxed, styled summary using Lip Gloss.
func renderStyledResult(w io.Writer, summaries []BatchSummary, metrics batch.Snapshot) error {
	p := message.NewPrinter(language.English)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("33"))
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(summaryBoxWidth)

	var content strings.Builder

	content.WriteString(titleStyle.Render("BATCH RESULTS"))
	content.WriteString("\n\n")

	content.WriteString(sectionStyle.Render("BATCHES"))
	content.WriteString("\n")
	if len(summaries) == 0 {
		content.WriteString("  (none)\n")
	}
	for _, s := range summaries {
		content.WriteString(p.Sprintf("  Batch %d: %d records, %d bytes\n",
			s.Index, s.RecordCount, s.ByteSize))
	}

	content.WriteString("\n")
	content.WriteString(sectionStyle.Render("METRICS"))
	content.WriteString("\n")
	for _, row := range metricsRows(metrics) {
		content.WriteString(p.Sprintf("  %s: %d\n", row.Label, row.Value))
	}

	box := borderStyle.Render(strings.TrimRight(content.String(), "\n"))
	_, err := fmt.Fprintln(w, box)
	return err
}

// renderPlainResult renders the summary as plain text for pipes and files.
func renderPlainResult(w io.Writer, summaries []BatchSummary, metrics batch.Snapshot) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintln(w, "BATCH RESULTS"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "============="); err != nil {
		return err
	}

	if len(summaries) == 0 {
		if _, err := fmt.Fprintln(w, "No batches created"); err != nil {
			return err
		}
	}
	for _, s := range summaries {
		if _, err := p.Fprintf(w, "Batch %d: %d records, %d bytes\n",
			s.Index, s.RecordCount, s.ByteSize); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, row := range metricsRows(metrics) {
		if _, err := p.Fprintf(w, "%s: %d\n", row.Label, row.Value); err != nil {
			return err
		}
	}

	return nil
}
