package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View a previously generated accuracy report",
		Long:  "Re-render a previously generated accuracy report from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := reportStore.Load(m.Path(viper.GetString(outputFlagName)))
			if err != nil {
				return err
			}

			return ui.DisplayReport(cmd.Context(), report)
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
