package adapter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	m "github.com/tienduong-21/extract-infor/internal/model"
	"github.com/tienduong-21/extract-infor/pkg"
)

// Report artifact names inside the reports directory.
const (
	ReportJSONName = "evaluation_report.json"
	ReportCSVName  = "file_accuracy.csv"
	AuditCSVName   = "field_outcomes.csv"
)

// ReportStore persists and reloads corpus reports.
type ReportStore interface {
	// Save writes the CSV accuracy log and the JSON report into dir.
	Save(dir m.Path, report *m.CorpusReport) error

	// SaveAudit streams per-field outcome records into a CSV inside dir.
	SaveAudit(dir m.Path, records *pkg.Spill[m.AuditRecord]) error

	// Load reads a previously saved JSON report from dir.
	Load(dir m.Path) (*m.CorpusReport, error)
}

// FileReportStore writes report artifacts to the local filesystem.
type FileReportStore struct{}

// NewFileReportStore creates a new FileReportStore.
func NewFileReportStore() *FileReportStore {
	return &FileReportStore{}
}

// Save implements ReportStore.
func (s *FileReportStore) Save(dir m.Path, report *m.CorpusReport) error {
	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	if err := s.saveCSV(filepath.Join(string(dir), ReportCSVName), report); err != nil {
		return err
	}

	return s.saveJSON(filepath.Join(string(dir), ReportJSONName), report)
}

func (s *FileReportStore) saveCSV(path string, report *m.CorpusReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create accuracy log: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)

	rows := [][]string{{"file_id", "correct_count", "total_count", "accuracy_percent"}}
	for _, accuracy := range report.Files {
		rows = append(rows, []string{
			accuracy.FileID,
			strconv.Itoa(accuracy.Correct),
			strconv.Itoa(accuracy.Total),
			accuracy.PercentString(),
		})
	}

	for _, loadErr := range report.LoadErrors {
		rows = append(rows, []string{loadErr.FileID, "load_error", string(loadErr.Side), loadErr.Reason})
	}

	// Trailing summary block: the per-field breakdown.
	rows = append(rows,
		[]string{},
		[]string{"field_path", "correct", "incorrect", "missing", "field_accuracy_percent"},
	)

	for _, fieldPath := range report.Fields.SortedPaths() {
		count := report.Fields[fieldPath]
		rows = append(rows, []string{
			string(fieldPath),
			strconv.Itoa(count.Correct),
			strconv.Itoa(count.Incorrect),
			strconv.Itoa(count.Missing),
			m.FormatPercent(count.AccuracyPercent()),
		})
	}

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write accuracy log: %w", err)
	}

	return nil
}

func (s *FileReportStore) saveJSON(path string, report *m.CorpusReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// SaveAudit implements ReportStore.
func (s *FileReportStore) SaveAudit(dir m.Path, records *pkg.Spill[m.AuditRecord]) error {
	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	file, err := os.Create(filepath.Join(string(dir), AuditCSVName))
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"file_id", "field_path", "outcome"}); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}

	err = records.Range(func(record m.AuditRecord) error {
		return writer.Write([]string{record.FileID, string(record.Path), string(record.Outcome)})
	})
	if err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}

	writer.Flush()

	return writer.Error()
}

// Load implements ReportStore.
func (s *FileReportStore) Load(dir m.Path) (*m.CorpusReport, error) {
	data, err := os.ReadFile(filepath.Join(string(dir), ReportJSONName))
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report m.CorpusReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	return &report, nil
}
