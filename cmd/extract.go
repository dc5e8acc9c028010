package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tienduong-21/extract-infor/internal/adapter"
	"github.com/tienduong-21/extract-infor/internal/domain"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

var extractMailboxFlag string
var extractModelFlag string

// extractCmd represents the extract command.
var extractCmd = newExtractCmd()

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [mailbox-dir]",
		Short: "Extract order documents from HTML emails",
		Long: `Extract structured order documents from a directory of HTML emails using
Gemini. Each email produces one JSON file in the actual-output directory,
validated against the order schema. A failed email is reported and skipped.

The API key is read from EXTRACT_INFOR_API_KEY or GOOGLE_API_KEY.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mailboxDir := m.Path(viper.GetString(extractMailboxKey))
			if len(args) == 1 {
				mailboxDir = m.Path(args[0])
			}

			invoker, err := adapter.NewGeminiInvoker(
				cmd.Context(),
				viper.GetString(apiKeyConfigKey),
				viper.GetString(extractModelKey),
				slog.Default(),
			)
			if err != nil {
				return err
			}

			extractor := domain.NewExtractor(mailbox, invoker, documentStore, prompts, ui)

			return extractor.Extract(cmd.Context(), domain.ExtractArgs{
				MailboxDir: mailboxDir,
				OutputDir:  m.Path(viper.GetString(compareActualKey)),
			})
		},
	}

	configureExtractFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func configureExtractFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&extractMailboxFlag, mailboxFlagName, "m",
		viper.GetString(extractMailboxKey), "directory holding HTML emails")
	bindFlagToConfig(cmd.Flags().Lookup(mailboxFlagName), extractMailboxKey)

	cmd.Flags().StringVar(&extractModelFlag, modelFlagName,
		viper.GetString(extractModelKey), "Gemini model used for extraction")
	bindFlagToConfig(cmd.Flags().Lookup(modelFlagName), extractModelKey)
}
