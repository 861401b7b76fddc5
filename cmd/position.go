package cmd

import (
	"fmt"

	"lendflow/core"
	"lendflow/handler/views"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var positionCmd = &cobra.Command{
	Use:     "position [address...]",
	Aliases: []string{"pos"},
	Short:   "read positions of the configured wallet or the given addresses",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		profile := provideProfile()
		client := provideChain(ctx, profile)

		var addresses []common.Address
		for _, arg := range args {
			if !common.IsHexAddress(arg) {
				cmd.PrintErrln("invalid address", arg)
				return
			}
			addresses = append(addresses, common.HexToAddress(arg))
		}

		if len(addresses) == 0 {
			addresses = append(addresses, provideWallet().Address)
		}

		steps := provideStepExecutor(client, profile)
		pools := providePoolService(client, provideTokenService(client, steps), steps)
		accounts := provideAccountService(client, profile)

		pool, err := pools.PoolAddress(ctx, profile.LendingPoolAddressesProvider)
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		positions := make([]*core.AccountPosition, len(addresses))
		g, gctx := errgroup.WithContext(ctx)
		for idx, address := range addresses {
			idx, address := idx, address
			g.Go(func() error {
				position, err := accounts.GetPosition(gctx, pool, address)
				if err != nil {
					return fmt.Errorf("%s: %w", address.Hex(), err)
				}

				positions[idx] = position
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			cmd.PrintErrln(err)
			return
		}

		for _, position := range positions {
			v := views.PositionView(position)
			cmd.Printf("%s collateral %s debt %s available %s health %s\n",
				v.Account, v.TotalCollateral, v.TotalDebt, v.AvailableBorrows, v.HealthFactor)
		}
	},
}

func init() {
	rootCmd.AddCommand(positionCmd)
}
