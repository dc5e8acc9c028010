package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tienduong-21/extract-infor/internal/adapter"
	"github.com/tienduong-21/extract-infor/internal/controller"
	m "github.com/tienduong-21/extract-infor/internal/model"
	"github.com/tienduong-21/extract-infor/pkg"
	"golang.org/x/sync/errgroup"
)

// RunArgs contains the arguments for a corpus scoring run.
type RunArgs struct {
	ExpectedDir m.Path
	ActualDir   m.Path
	Threads     int

	// ShardIndex/TotalShards split the corpus across runs; reports from the
	// shards are combined afterwards with MergeReports.
	ShardIndex  int
	TotalShards int

	// Audit, when non-nil, receives every per-leaf outcome for later export.
	Audit *pkg.Spill[m.AuditRecord]
}

// Runner scores a whole corpus of expected/actual document pairs.
type Runner interface {
	Run(ctx context.Context, args RunArgs) (*m.CorpusReport, error)
}

type runner struct {
	corpus adapter.CorpusFS
	store  adapter.DocumentStore
	ui     controller.UI
	schema m.Schema
}

// NewRunner constructs a Runner backed by the provided corpus and document
// adapters.
func NewRunner(corpus adapter.CorpusFS, store adapter.DocumentStore, ui controller.UI, schema m.Schema) Runner {
	return &runner{
		corpus: corpus,
		store:  store,
		ui:     ui,
		schema: schema,
	}
}

// pairResult is the isolated outcome of scoring one file pair. Exactly one of
// accuracy or loadErr is set.
type pairResult struct {
	accuracy *m.FileAccuracy
	loadErr  *m.LoadError
	delta    m.FieldStats
}

// Run implements Runner. Only a missing expected directory is fatal; every
// per-file failure becomes a report row and the run continues.
//
// Files are diffed independently, so the work fans out over an errgroup; the
// per-file stat deltas are merged into the aggregate afterwards, in file
// order, as a single combining reduction.
func (r *runner) Run(ctx context.Context, args RunArgs) (*m.CorpusReport, error) {
	pairs, err := r.corpus.Pairs(args.ExpectedDir, args.ActualDir)
	if err != nil {
		return nil, fmt.Errorf("discover corpus: %w", err)
	}

	pairs = shardPairs(pairs, args.ShardIndex, args.TotalShards)

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	r.ui.DisplayRunInfo(ctx, len(pairs), threads)

	results := make([]pairResult, len(pairs))

	var (
		group      errgroup.Group
		resultsMux sync.Mutex
		done       int
	)

	group.SetLimit(threads)

	for i, pair := range pairs {
		index := i
		currentPair := pair

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result := r.scorePair(currentPair, args.Audit)

			resultsMux.Lock()
			defer resultsMux.Unlock()

			results[index] = result
			done++

			if result.loadErr != nil {
				r.ui.DisplayLoadError(ctx, done, len(pairs), *result.loadErr)
			} else {
				r.ui.DisplayFileResult(ctx, done, len(pairs), *result.accuracy)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	report := &m.CorpusReport{
		GeneratedAt: time.Now(),
		Fields:      make(m.FieldStats),
	}

	for _, result := range results {
		if result.loadErr != nil {
			report.LoadErrors = append(report.LoadErrors, *result.loadErr)
			continue
		}

		report.Files = append(report.Files, *result.accuracy)
		report.Fields.Merge(result.delta)
	}

	return report, nil
}

func (r *runner) scorePair(pair adapter.Pair, audit *pkg.Spill[m.AuditRecord]) pairResult {
	expected, err := r.store.Load(pair.Expected, m.SideExpected)
	if err != nil {
		return loadErrorResult(pair.FileID, m.SideExpected, err)
	}

	var diff m.FileDiff

	if !pair.HasActual {
		// The extraction never produced this file: full miss, every field
		// of the expected document counted against the denominator.
		slog.Debug("actual output missing", "file", pair.FileID)
		diff = MissingFileDiff(expected, r.schema)
	} else {
		actual, err := r.store.Load(pair.Actual, m.SideActual)
		if err != nil {
			return loadErrorResult(pair.FileID, m.SideActual, err)
		}

		diff = Diff(expected, actual, r.schema)
	}

	if audit != nil {
		for _, outcome := range diff.Outcomes {
			if err := audit.Append(m.AuditRecord{
				FileID:  pair.FileID,
				Path:    outcome.Path,
				Outcome: outcome.Outcome,
			}); err != nil {
				slog.Warn("audit record dropped", "file", pair.FileID, "error", err)
			}
		}
	}

	accuracy := Score(pair.FileID, diff.Stats)

	return pairResult{accuracy: &accuracy, delta: diff.Stats}
}

func shardPairs(pairs []adapter.Pair, shardIndex, totalShards int) []adapter.Pair {
	if totalShards <= 1 {
		return pairs
	}

	var shard []adapter.Pair

	for i, pair := range pairs {
		if i%totalShards == shardIndex {
			shard = append(shard, pair)
		}
	}

	return shard
}

func loadErrorResult(fileID string, side m.Side, err error) pairResult {
	slog.Warn("document load failed", "file", fileID, "side", side, "error", err)

	return pairResult{loadErr: &m.LoadError{
		FileID: fileID,
		Side:   side,
		Reason: err.Error(),
	}}
}
