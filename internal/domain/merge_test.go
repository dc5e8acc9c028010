package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

func shardReport(files []m.FileAccuracy, fields m.FieldStats) *m.CorpusReport {
	return &m.CorpusReport{Files: files, Fields: fields}
}

func TestMergeReports_SortsFilesAndSumsFields(t *testing.T) {
	first := make(m.FieldStats)
	first.Count("order_id").Correct = 2
	first.Count("order_id").Incorrect = 1

	second := make(m.FieldStats)
	second.Count("order_id").Correct = 1
	second.Count("tracking_number").Missing = 1

	merged := MergeReports([]*m.CorpusReport{
		shardReport([]m.FileAccuracy{{FileID: "order-3", Correct: 3, Total: 3}}, first),
		shardReport([]m.FileAccuracy{
			{FileID: "order-1", Correct: 1, Total: 2},
			{FileID: "order-2", Correct: 0, Total: 1},
		}, second),
	})

	require.Equal(t, []string{"order-1", "order-2", "order-3"}, fileIDs(merged))
	require.Equal(t, 3, merged.Fields.Count("order_id").Correct)
	require.Equal(t, 1, merged.Fields.Count("order_id").Incorrect)
	require.Equal(t, 1, merged.Fields.Count("tracking_number").Missing)
}

func TestMergeReports_WeightedOverallMatchesUnshardedRun(t *testing.T) {
	merged := MergeReports([]*m.CorpusReport{
		shardReport([]m.FileAccuracy{{FileID: "a", Correct: 10, Total: 100}}, make(m.FieldStats)),
		shardReport([]m.FileAccuracy{{FileID: "b", Correct: 90, Total: 100}}, make(m.FieldStats)),
	})

	// 100/200, not the 55% mean of the two file percentages.
	require.InDelta(t, 50.0, merged.OverallPercent(), 1e-9)
}

func TestMergeReports_CarriesLoadErrors(t *testing.T) {
	merged := MergeReports([]*m.CorpusReport{
		{LoadErrors: []m.LoadError{{FileID: "order-9", Side: m.SideActual, Reason: "bad json"}}, Fields: make(m.FieldStats)},
		{LoadErrors: []m.LoadError{{FileID: "order-2", Side: m.SideExpected, Reason: "unreadable"}}, Fields: make(m.FieldStats)},
	})

	require.Len(t, merged.LoadErrors, 2)
	require.Equal(t, "order-2", merged.LoadErrors[0].FileID)
	require.Equal(t, "order-9", merged.LoadErrors[1].FileID)
}

func fileIDs(report *m.CorpusReport) []string {
	ids := make([]string, 0, len(report.Files))
	for _, file := range report.Files {
		ids = append(ids, file.FileID)
	}

	return ids
}
