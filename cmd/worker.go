package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lendflow/core"
	"lendflow/handler"
	"lendflow/worker/monitor"

	"github.com/drone/signal"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "watch position health and serve the status api",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx).WithField("cmd", "monitor")
		ctx = logger.WithContext(ctx, log)

		profile := provideProfile()
		client := provideChain(ctx, profile)

		list, _ := cmd.Flags().GetStringSlice("account")
		var accounts []common.Address
		for _, account := range list {
			if !common.IsHexAddress(account) {
				cmd.PrintErrln("invalid account", account)
				return
			}
			accounts = append(accounts, common.HexToAddress(account))
		}

		if len(accounts) == 0 {
			accounts = append(accounts, provideWallet().Address)
		}

		steps := provideStepExecutor(client, profile)
		pools := providePoolService(client, provideTokenService(client, steps), steps)
		accountService := provideAccountService(client, profile)

		job, err := monitor.New(ctx, monitor.Config{
			Spec:      cfg.Monitor.Spec,
			Location:  cfg.Monitor.Location,
			Registry:  profile.LendingPoolAddressesProvider,
			Accounts:  accounts,
			Threshold: cfg.Monitor.HealthFactorThreshold,
		}, pools, accountService)
		if err != nil {
			cmd.PrintErrln("monitor:", err)
			return
		}

		_ = job.Start()
		defer job.Stop()

		port, _ := cmd.Flags().GetInt("port")
		if port <= 0 {
			<-ctx.Done()
			return
		}

		var runs core.IRunStore
		if cfg.Workflow.Journal {
			database := provideDatabase()
			defer database.Close()
			runs = provideRunStore(database)
		}

		svr := handler.Server{
			Version:  rootCmd.Version,
			Profile:  profile,
			Pools:    pools,
			Accounts: accountService,
			Runs:     runs,
		}

		addr := fmt.Sprintf(":%d", port)
		server := &http.Server{
			Addr:    addr,
			Handler: svr.Handler(),
		}

		done := make(chan struct{}, 1)
		go func() {
			<-ctx.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		}()

		log.Infoln("serve at", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().IntP("port", "p", 0, "status api port, 0 disables the api")
	monitorCmd.Flags().StringSlice("account", nil, "accounts to watch, default is the configured wallet")
}
