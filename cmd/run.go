package cmd

import (
	"encoding/json"
	"os"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "wrap, deposit, borrow and repay once with the configured wallet",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		profile, err := cfg.Profile()
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		client := provideChain(ctx, profile)
		wallet := provideWallet()

		w, err := provideWorkflow(client, profile)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		report := w.Run(ctx, wallet)
		if err := provideReportSink().Handle(ctx, report); err != nil {
			log.WithError(err).Warnln("deliver report")
		}

		if output, _ := cmd.Flags().GetBool("json"); output {
			data, _ := json.MarshalIndent(report, "", "  ")
			cmd.Println(string(data))
		}

		if !report.Completed() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("json", false, "print the report as json")
}
