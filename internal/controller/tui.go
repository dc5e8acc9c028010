package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	m "github.com/tienduong-21/extract-infor/internal/model"
	"golang.org/x/term"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// passThreshold separates green from red per-file accuracy in the TUI.
const passThreshold = 90.0

// TUI implements UI with a progress bar while results stream in and a
// scrollable Bubble Tea view for large reports.
type TUI struct {
	cmd *cobra.Command
	bar progress.Model
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30

	return &TUI{cmd: cmd, bar: bar}
}

// DisplayRunInfo implements UI.
func (p *TUI) DisplayRunInfo(ctx context.Context, files, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.printf("%s\n", dimStyle.Render(fmt.Sprintf("Scoring %d file(s) with %d worker(s)", files, threads)))
}

// DisplayFileResult implements UI.
func (p *TUI) DisplayFileResult(ctx context.Context, done, total int, accuracy m.FileAccuracy) {
	if err := ctx.Err(); err != nil {
		return
	}

	style := passStyle
	if accuracy.Percent < passThreshold {
		style = failStyle
	}

	p.printf("%s %s\n",
		p.bar.ViewAs(fraction(done, total)),
		style.Render(fmt.Sprintf("%s: %d/%d (%s)",
			accuracy.FileID, accuracy.Correct, accuracy.Total, accuracy.PercentString())))
}

// DisplayLoadError implements UI.
func (p *TUI) DisplayLoadError(ctx context.Context, done, total int, loadErr m.LoadError) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.printf("%s %s\n",
		p.bar.ViewAs(fraction(done, total)),
		failStyle.Render(fmt.Sprintf("%s: load_error (%s side): %s",
			loadErr.FileID, loadErr.Side, loadErr.Reason)))
}

// DisplayReport implements UI. Short reports print directly; long ones open a
// scrollable alternate-screen view.
func (p *TUI) DisplayReport(ctx context.Context, report *m.CorpusReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newReportModel(report)

	if f, ok := p.cmd.OutOrStdout().(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		p.printf("%s", model.View())
		return nil
	}

	program := tea.NewProgram(model, tea.WithOutput(p.cmd.OutOrStdout()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayExtractResult implements UI.
func (p *TUI) DisplayExtractResult(ctx context.Context, email m.Path, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	if err != nil {
		p.printf("%s\n", failStyle.Render(fmt.Sprintf("✗ %s: %v", email, err)))
		return
	}

	p.printf("%s\n", passStyle.Render(fmt.Sprintf("✓ %s", email)))
}

func (p *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.cmd.OutOrStdout(), format, args...)
}

func fraction(done, total int) float64 {
	if total == 0 {
		return 1
	}

	return float64(done) / float64(total)
}

// reportModel renders the final report as a scrollable list of lines.
type reportModel struct {
	lines    []string
	width    int
	height   int
	offset   int
	quitting bool
}

func newReportModel(report *m.CorpusReport) reportModel {
	var lines []string

	lines = append(lines, "Extraction accuracy")
	lines = append(lines, "")

	for _, accuracy := range report.Files {
		style := passStyle
		if accuracy.Percent < passThreshold {
			style = failStyle
		}

		lines = append(lines, fmt.Sprintf("  %s  %s",
			accuracy.FileID,
			style.Render(fmt.Sprintf("%d/%d (%s)", accuracy.Correct, accuracy.Total, accuracy.PercentString()))))
	}

	for _, loadErr := range report.LoadErrors {
		lines = append(lines, failStyle.Render(
			fmt.Sprintf("  %s  load_error (%s side): %s", loadErr.FileID, loadErr.Side, loadErr.Reason)))
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  Overall: %d/%d (%s) across %d file(s)",
		report.TotalCorrect(), report.TotalFields(),
		m.FormatPercent(report.OverallPercent()), len(report.Files)))
	lines = append(lines, "")
	lines = append(lines, "  Per-field breakdown:")

	for _, fieldPath := range report.Fields.SortedPaths() {
		count := report.Fields[fieldPath]
		lines = append(lines, fmt.Sprintf("    %-42s %4d correct %4d incorrect %4d missing  %s",
			fieldPath, count.Correct, count.Incorrect, count.Missing,
			m.FormatPercent(count.AccuracyPercent())))
	}

	if flagged := report.FlaggedCount(); flagged > 0 {
		lines = append(lines, "")
		lines = append(lines, dimStyle.Render(fmt.Sprintf(
			"  %d unexpected extraction(s) excluded from accuracy", flagged)))
	}

	lines = append(lines, "")

	return reportModel{lines: lines}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

func (rm reportModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		rm.quitting = true
		return rm, tea.Quit

	case "down", "j":
		if rm.offset < rm.maxOffset() {
			rm.offset++
		}

		return rm, nil

	case "up", "k":
		if rm.offset > 0 {
			rm.offset--
		}

		return rm, nil

	case "g", "home":
		rm.offset = 0

		return rm, nil

	case "G", "end":
		rm.offset = rm.maxOffset()

		return rm, nil
	}

	return rm, nil
}

// linesPerPage calculates how many report lines fit on screen, reserving
// space for the navigation footer.
func (rm reportModel) linesPerPage() int {
	if rm.height == 0 {
		return 20
	}

	available := rm.height - 3
	if available < 1 {
		return 1
	}

	return available
}

func (rm reportModel) maxOffset() int {
	maxOff := len(rm.lines) - rm.linesPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

func (rm reportModel) needsPagination() bool {
	return rm.height > 0 && len(rm.lines) > rm.linesPerPage()
}

func (rm reportModel) View() string {
	if rm.quitting {
		return ""
	}

	var b strings.Builder

	start := rm.offset

	end := start + rm.linesPerPage()
	if end > len(rm.lines) {
		end = len(rm.lines)
	}

	for _, line := range rm.lines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if rm.needsPagination() {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit"))
		b.WriteString("\n")
	}

	return b.String()
}
