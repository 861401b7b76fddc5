package cmd

import (
	"lendflow/core"
	"lendflow/pkg/number"

	"github.com/spf13/cobra"
)

var wrapCmd = &cobra.Command{
	Use:   "wrap [amount]",
	Short: "wrap native token into the base asset",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		profile := provideProfile()
		client := provideChain(ctx, profile)
		wallet := provideWallet()

		amount := cfg.Workflow.WrapAmount
		if len(args) > 0 {
			amount = number.Decimal(args[0])
		}

		if !amount.IsPositive() {
			cmd.PrintErrln("amount must be positive")
			return
		}

		base, err := profile.Asset(core.AssetRoleBase)
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		tokens := provideTokenService(client, provideStepExecutor(client, profile))
		tx, err := tokens.Wrap(ctx, wallet, base.Address, number.ToUnits(amount, base.Decimals))
		if err != nil {
			cmd.PrintErrln("wrap failed:", err)
			return
		}

		balance, err := tokens.BalanceOf(ctx, base.Address, wallet.Address)
		if err != nil {
			cmd.PrintErrln("read balance:", err)
			return
		}

		cmd.Println("tx", tx.Hash.Hex())
		cmd.Printf("wrapped %s, balance %s %s\n", amount.String(), number.Format(balance, base.Decimals, 8), base.Symbol)
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "balances of the configured wallet",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		profile := provideProfile()
		client := provideChain(ctx, profile)
		wallet := provideWallet()
		tokens := provideTokenService(client, provideStepExecutor(client, profile))

		for _, asset := range []core.Asset{profile.BaseAsset, profile.BorrowAsset} {
			balance, err := tokens.BalanceOf(ctx, asset.Address, wallet.Address)
			if err != nil {
				cmd.PrintErrln(asset.Symbol, err)
				continue
			}

			cmd.Println(asset.Symbol, number.FromUnits(balance, asset.Decimals).StringFixed(8))
		}
	},
}

func init() {
	rootCmd.AddCommand(wrapCmd)
	rootCmd.AddCommand(balanceCmd)
}
