package adapter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	m "github.com/tienduong-21/extract-infor/internal/model"
	"github.com/tienduong-21/extract-infor/pkg"
)

func reportFixture() *m.CorpusReport {
	fields := make(m.FieldStats)
	fields.Record("order_id", m.OutcomeMatch)
	fields.Record("order_id", m.OutcomeMismatch)
	fields.Record("line_items.product_price", m.OutcomeMatch)

	return &m.CorpusReport{
		GeneratedAt: time.Now().UTC(),
		Files: []m.FileAccuracy{
			{FileID: "order-1", Correct: 2, Total: 2, Percent: 100},
			{FileID: "order-2", Correct: 1, Total: 2, Percent: 50},
		},
		LoadErrors: []m.LoadError{
			{FileID: "order-3", Side: m.SideActual, Reason: "invalid JSON"},
		},
		Fields: fields,
	}
}

func TestFileReportStore_SaveAndLoad(t *testing.T) {
	store := NewFileReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	require.NoError(t, store.Save(dir, reportFixture()))

	loaded, err := store.Load(dir)
	require.NoError(t, err)

	require.Len(t, loaded.Files, 2)
	require.Equal(t, "order-1", loaded.Files[0].FileID)
	require.Len(t, loaded.LoadErrors, 1)
	require.Equal(t, 1, loaded.Fields.Count("order_id").Correct)
	require.InDelta(t, 75.0, loaded.OverallPercent(), 1e-9)
}

func TestFileReportStore_CSVLayout(t *testing.T) {
	store := NewFileReportStore()
	dir := m.Path(t.TempDir())

	require.NoError(t, store.Save(dir, reportFixture()))

	data, err := os.ReadFile(filepath.Join(string(dir), ReportCSVName))
	require.NoError(t, err)

	content := string(data)
	require.Contains(t, content, "file_id,correct_count,total_count,accuracy_percent")
	require.Contains(t, content, "order-1,2,2,100.00%")
	require.Contains(t, content, "order-2,1,2,50.00%")
	require.Contains(t, content, "order-3,load_error,actual,invalid JSON")

	// Field summary block follows the per-file rows.
	require.Contains(t, content, "field_path,correct,incorrect,missing,field_accuracy_percent")
	require.Contains(t, content, "order_id,1,1,0,50.00%")
	require.Contains(t, content, "line_items.product_price,1,0,0,100.00%")
}

func TestFileReportStore_SaveAudit(t *testing.T) {
	store := NewFileReportStore()
	dir := m.Path(t.TempDir())

	spill, err := pkg.NewSpill[m.AuditRecord]("report-audit-*.gob")
	require.NoError(t, err)
	defer func() { require.NoError(t, spill.Close()) }()

	require.NoError(t, spill.Append(m.AuditRecord{FileID: "order-1", Path: "order_id", Outcome: m.OutcomeMatch}))
	require.NoError(t, spill.Append(m.AuditRecord{FileID: "order-1", Path: m.ItemFieldPath(0, "quantity"), Outcome: m.OutcomeMismatch}))

	require.NoError(t, store.SaveAudit(dir, spill))

	file, err := os.Open(filepath.Join(string(dir), AuditCSVName))
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Equal(t, []string{"file_id", "field_path", "outcome"}, rows[0])
	require.Equal(t, []string{"order-1", "order_id", "match"}, rows[1])
	require.Equal(t, []string{"order-1", "line_items[0].quantity", "mismatch"}, rows[2])
}

func TestFileReportStore_LoadMissingReport(t *testing.T) {
	_, err := NewFileReportStore().Load(m.Path(t.TempDir()))

	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "read report"))
}
