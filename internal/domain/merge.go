package domain

import (
	"sort"
	"time"

	m "github.com/tienduong-21/extract-infor/internal/model"
)

// MergeReports combines sharded corpus reports into one. File rows and load
// errors are concatenated and re-sorted by file id; field tallies are summed.
// The weighted overall accuracy of the merge equals the accuracy of a single
// unsharded run because counter addition is associative.
func MergeReports(reports []*m.CorpusReport) *m.CorpusReport {
	merged := &m.CorpusReport{
		GeneratedAt: time.Now(),
		Fields:      make(m.FieldStats),
	}

	for _, report := range reports {
		merged.Files = append(merged.Files, report.Files...)
		merged.LoadErrors = append(merged.LoadErrors, report.LoadErrors...)
		merged.Fields.Merge(report.Fields)
	}

	sort.Slice(merged.Files, func(i, j int) bool {
		return merged.Files[i].FileID < merged.Files[j].FileID
	})
	sort.Slice(merged.LoadErrors, func(i, j int) bool {
		return merged.LoadErrors[i].FileID < merged.LoadErrors[j].FileID
	})

	return merged
}
