package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tienduong-21/extract-infor/internal/domain"
	m "github.com/tienduong-21/extract-infor/internal/model"
	"github.com/tienduong-21/extract-infor/pkg"
)

var compareExpectedFlag string
var compareActualFlag string
var compareParallelFlag int
var compareShardFlag string
var compareAuditFlag bool

// compareCmd represents the compare command.
var compareCmd = newCompareCmd()

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Score extracted documents against expected outputs",
		Long: `Compare extracted JSON documents against hand-labeled expected documents
and report per-file and per-field accuracy.

The expected directory defines the universe of files to score. Missing or
malformed files become report rows; they never abort the run. The command
exits nonzero when any file pair failed to load.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shardIndex, totalShards := parseShardFlag(compareShardFlag)
			reportsPath := m.Path(viper.GetString(outputFlagName))

			args := domain.RunArgs{
				ExpectedDir: m.Path(viper.GetString(compareExpectedKey)),
				ActualDir:   m.Path(viper.GetString(compareActualKey)),
				Threads:     viper.GetInt(compareParallelKey),
				ShardIndex:  shardIndex,
				TotalShards: totalShards,
			}

			if viper.GetBool(compareAuditKey) {
				audit, err := pkg.NewSpill[m.AuditRecord]("extract-infor-audit-*.gob")
				if err != nil {
					return fmt.Errorf("create audit buffer: %w", err)
				}

				defer func() {
					_ = audit.Close()
				}()

				args.Audit = audit
			}

			report, err := runner.Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			// Sharded runs write into shard_N so merge can combine them later.
			targetDir := reportsPath
			if totalShards > 1 {
				targetDir = m.Path(filepath.Join(string(reportsPath), fmt.Sprintf("shard_%d", shardIndex)))
			}

			if err := reportStore.Save(targetDir, report); err != nil {
				return err
			}

			if args.Audit != nil {
				if err := reportStore.SaveAudit(targetDir, args.Audit); err != nil {
					return err
				}
			}

			if err := ui.DisplayReport(cmd.Context(), report); err != nil {
				return err
			}

			if len(report.LoadErrors) > 0 {
				return fmt.Errorf("%w: %d file(s)", m.ErrLoadErrors, len(report.LoadErrors))
			}

			return nil
		},
	}

	configureCompareFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func configureCompareFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&compareExpectedFlag, expectedFlagName, "e",
		viper.GetString(compareExpectedKey), "directory holding hand-labeled expected documents")
	bindFlagToConfig(cmd.Flags().Lookup(expectedFlagName), compareExpectedKey)

	cmd.Flags().StringVarP(&compareActualFlag, actualFlagName, "a",
		viper.GetString(compareActualKey), "directory holding extracted documents to score")
	bindFlagToConfig(cmd.Flags().Lookup(actualFlagName), compareActualKey)

	cmd.Flags().IntVarP(&compareParallelFlag, parallelFlagName, "p",
		viper.GetInt(compareParallelKey), "number of parallel workers for scoring")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), compareParallelKey)

	cmd.Flags().BoolVar(&compareAuditFlag, auditFlagName,
		viper.GetBool(compareAuditKey), "write a per-field outcome audit CSV")
	bindFlagToConfig(cmd.Flags().Lookup(auditFlagName), compareAuditKey)

	cmd.Flags().StringVarP(&compareShardFlag, "shard", "s", "",
		"shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
