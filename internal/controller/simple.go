package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

// SimpleUI implements UI using cobra Command's output, one line per event and
// plain tables for the report.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayRunInfo implements UI.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, files, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Scoring %d file(s) with %d worker(s)\n", files, threads)
}

// DisplayFileResult implements UI.
func (s *SimpleUI) DisplayFileResult(ctx context.Context, done, total int, accuracy m.FileAccuracy) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("[%d/%d] %s: %d/%d (%s)\n",
		done, total, accuracy.FileID, accuracy.Correct, accuracy.Total, accuracy.PercentString())
}

// DisplayLoadError implements UI.
func (s *SimpleUI) DisplayLoadError(ctx context.Context, done, total int, loadErr m.LoadError) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("[%d/%d] %s: load_error (%s side): %s\n",
		done, total, loadErr.FileID, loadErr.Side, loadErr.Reason)
}

// DisplayReport implements UI.
func (s *SimpleUI) DisplayReport(ctx context.Context, report *m.CorpusReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderFilesTable(report))
	s.printf("\n%s", renderFieldsTable(report))

	if flagged := report.FlaggedCount(); flagged > 0 {
		s.printf("\nNote: %d unexpected extraction(s) (missing_in_expected) recorded; excluded from accuracy.\n", flagged)
	}

	if len(report.LoadErrors) > 0 {
		s.printf("\n%d file(s) excluded from accuracy due to load errors:\n", len(report.LoadErrors))

		for _, loadErr := range report.LoadErrors {
			s.printf("  %s (%s side): %s\n", loadErr.FileID, loadErr.Side, loadErr.Reason)
		}
	}

	return nil
}

// DisplayExtractResult implements UI.
func (s *SimpleUI) DisplayExtractResult(ctx context.Context, email m.Path, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	if err != nil {
		s.printf("✗ %s: %v\n", email, err)
		return
	}

	s.printf("✓ %s\n", email)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderFilesTable(report *m.CorpusReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Correct", "Total", "Accuracy"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, accuracy := range report.Files {
		table.Append([]string{
			accuracy.FileID,
			strconv.Itoa(accuracy.Correct),
			strconv.Itoa(accuracy.Total),
			accuracy.PercentString(),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Overall (%d files)", len(report.Files)),
		strconv.Itoa(report.TotalCorrect()),
		strconv.Itoa(report.TotalFields()),
		m.FormatPercent(report.OverallPercent()),
	})

	table.Render()

	return tableBuffer.String()
}

func renderFieldsTable(report *m.CorpusReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Field", "Correct", "Incorrect", "Missing", "Accuracy"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, fieldPath := range report.Fields.SortedPaths() {
		count := report.Fields[fieldPath]
		table.Append([]string{
			string(fieldPath),
			strconv.Itoa(count.Correct),
			strconv.Itoa(count.Incorrect),
			strconv.Itoa(count.Missing),
			m.FormatPercent(count.AccuracyPercent()),
		})
	}

	table.Render()

	return tableBuffer.String()
}
