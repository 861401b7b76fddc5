package cmd

import (
	"lendflow/handler/views"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "list journaled runs newest first, or show the report of one run",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		database := provideDatabase()
		defer database.Close()

		runs := provideRunStore(database)

		if len(args) == 1 {
			run, err := runs.FindByRunID(ctx, args[0])
			if err != nil {
				cmd.PrintErrln("find run:", err)
				return
			}

			if run.ID == 0 {
				cmd.PrintErrln("run not found:", args[0])
				return
			}

			cmd.Println(string(run.Report))
			return
		}

		account, _ := cmd.Flags().GetString("account")
		limit, _ := cmd.Flags().GetInt("limit")

		// journal rows carry checksummed addresses
		if account != "" {
			if !common.IsHexAddress(account) {
				cmd.PrintErrln("invalid account", account)
				return
			}
			account = common.HexToAddress(account).Hex()
		}

		list, err := runs.List(ctx, account, limit)
		if err != nil {
			cmd.PrintErrln("list runs:", err)
			return
		}

		for _, run := range views.RunsView(list) {
			cmd.Printf("%s %s %s %-9s %s %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"), run.RunID, run.Network, run.Status, run.FailedStep, run.ErrorCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().String("account", "", "only runs of account")
	runsCmd.Flags().Int("limit", 20, "max rows")
}
