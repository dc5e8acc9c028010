// Package cmd provides the root command and CLI setup for extract-infor.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tienduong-21/extract-infor/internal/adapter"
	"github.com/tienduong-21/extract-infor/internal/controller"
	"github.com/tienduong-21/extract-infor/internal/domain"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

var orderSchema m.Schema
var corpusFS adapter.CorpusFS
var documentStore adapter.DocumentStore
var reportStore adapter.ReportStore
var mailbox adapter.Mailbox
var prompts *domain.PromptProvider
var runner domain.Runner
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write
// report artifacts.
var reportsOutputDirFlag string

// verboseFlag raises the log level to debug when set.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	schema, err := m.LoadOrderSchema()
	cobra.CheckErr(err)
	orderSchema = schema

	store, err := adapter.NewJSONDocumentStore(orderSchema)
	cobra.CheckErr(err)
	documentStore = store

	prompts, err = domain.NewPromptProvider(orderSchema)
	cobra.CheckErr(err)

	corpusFS = adapter.NewLocalCorpusFS()
	reportStore = adapter.NewFileReportStore()
	mailbox = adapter.NewLocalMailbox()
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	runner = domain.NewRunner(corpusFS, documentStore, ui, orderSchema)
}

const rootLongDescription = `extract-infor pulls structured order, refund and return data out of HTML
email bodies with Gemini, validates every extraction against the order
schema, and scores a corpus of extractions against hand-labeled expected
documents.

Typical flow:
  extract-infor extract ./HTML          extract documents from a mailbox
  extract-infor compare -e expected -a output    score them`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract-infor",
		Short: "Order extraction and accuracy scoring for HTML emails",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for accuracy reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
