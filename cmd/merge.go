package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tienduong-21/extract-infor/internal/domain"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge sharded reports into a single report",
		Long: `Merge accuracy reports from shard_* subdirectories of the reports
directory into a single combined report. The merged weighted accuracy equals
the accuracy of an unsharded run over the same corpus.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))

			shardDirs, err := findShardDirs(reportsPath)
			if err != nil {
				return err
			}

			if len(shardDirs) == 0 {
				return fmt.Errorf("no shard_* directories under %s", reportsPath)
			}

			reports := make([]*m.CorpusReport, 0, len(shardDirs))

			for _, dir := range shardDirs {
				report, err := reportStore.Load(dir)
				if err != nil {
					return fmt.Errorf("load shard report %s: %w", dir, err)
				}

				reports = append(reports, report)
			}

			merged := domain.MergeReports(reports)

			if err := reportStore.Save(reportsPath, merged); err != nil {
				return err
			}

			return ui.DisplayReport(cmd.Context(), merged)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func findShardDirs(reportsPath m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(string(reportsPath))
	if err != nil {
		return nil, fmt.Errorf("reports directory %s: %w", reportsPath, err)
	}

	var dirs []m.Path

	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "shard_") {
			dirs = append(dirs, m.Path(filepath.Join(string(reportsPath), entry.Name())))
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })

	return dirs, nil
}
