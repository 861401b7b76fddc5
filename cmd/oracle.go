package cmd

import (
	"lendflow/core"
	"lendflow/pkg/number"

	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "latest price of the borrow asset in the reference unit",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		profile := provideProfile()
		client := provideChain(ctx, profile)

		borrow, err := profile.Asset(core.AssetRoleBorrow)
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		price, err := provideOracleService(client).GetLatestPrice(ctx, borrow.PriceFeed)
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		cmd.Printf("%s round %s price %s updated at %s\n",
			borrow.Symbol, price.RoundID, number.FromUnits(price.Answer, price.Decimals), price.UpdatedAt.Format("2006-01-02 15:04:05"))
	},
}

func init() {
	rootCmd.AddCommand(priceCmd)
}
