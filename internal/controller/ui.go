// Package controller provides output controllers for displaying extraction
// and scoring results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	m "github.com/tienduong-21/extract-infor/internal/model"
	"golang.org/x/term"
)

// UI defines the interface for displaying run progress and reports.
// Implementations can use different output methods (simple text, TUI).
type UI interface {
	// DisplayRunInfo announces a corpus run before the first file.
	DisplayRunInfo(ctx context.Context, files, threads int)

	// DisplayFileResult shows one scored file as results stream in.
	DisplayFileResult(ctx context.Context, done, total int, accuracy m.FileAccuracy)

	// DisplayLoadError shows a file pair that could not be loaded.
	DisplayLoadError(ctx context.Context, done, total int, loadErr m.LoadError)

	// DisplayReport renders the final corpus report.
	DisplayReport(ctx context.Context, report *m.CorpusReport) error

	// DisplayExtractResult shows the outcome of extracting one email.
	DisplayExtractResult(ctx context.Context, email m.Path, err error)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI picks the TUI when stdout is a terminal and the simple printer
// otherwise, so piped output stays machine-friendly.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}
