package cmd

import (
	"lendflow/core"
	"lendflow/pkg/number"
	"lendflow/service/account"
	"lendflow/service/chain"
	"lendflow/service/notify"
	"lendflow/service/oracle"
	"lendflow/service/pool"
	"lendflow/service/step"
	"lendflow/service/token"
	"lendflow/service/workflow"

	"github.com/asaskevich/govalidator"
	"github.com/sirupsen/logrus"
)

func provideStepExecutor(client *chain.Client, profile *core.NetworkProfile) core.IStepExecutor {
	return step.New(client, step.Config{
		Depth:        profile.BlockConfirmations,
		Timeout:      profile.Timeout(cfg.Workflow.Timeout()),
		PollInterval: cfg.Workflow.Poll(),
	})
}

func provideTokenService(client *chain.Client, steps core.IStepExecutor) core.ITokenService {
	return token.New(client, client, steps)
}

func provideApprovalGuard(tokens core.ITokenService) core.IApprovalGuard {
	return token.NewApprovalGuard(tokens)
}

func providePoolService(client *chain.Client, tokens core.ITokenService, steps core.IStepExecutor) core.ILendingPoolService {
	return pool.New(client, client, tokens, steps, pool.Config{
		ReferralCode: cfg.Workflow.ReferralCode,
	})
}

func provideAccountService(client *chain.Client, profile *core.NetworkProfile) core.IAccountService {
	return account.New(client, profile.ReferenceDecimals)
}

func provideOracleService(client *chain.Client) core.IPriceOracleService {
	return oracle.New(client, oracle.Config{
		MaxAge: cfg.Workflow.MaxPriceAge(),
	})
}

func provideWorkflow(client *chain.Client, profile *core.NetworkProfile) (*workflow.Workflow, error) {
	steps := provideStepExecutor(client, profile)
	tokens := provideTokenService(client, steps)

	return workflow.New(
		profile,
		workflow.Config{
			WrapAmount:   number.ToUnits(cfg.Workflow.WrapAmount, profile.BaseAsset.Decimals),
			SafetyMargin: cfg.Workflow.SafetyMargin,
			RateMode:     cfg.Workflow.RateMode(),
		},
		tokens,
		provideApprovalGuard(tokens),
		providePoolService(client, tokens, steps),
		provideAccountService(client, profile),
		provideOracleService(client),
	)
}

// provideReportSink log sink, plus webhook and journal when configured
func provideReportSink() core.IReportSink {
	sinks := []core.IReportSink{notify.NewLog()}

	if url := cfg.Notify.Webhook; url != "" {
		if govalidator.IsURL(url) {
			sinks = append(sinks, notify.NewWebhook(url))
		} else {
			logrus.Warnln("notify.webhook is not a valid url, ignored:", url)
		}
	}

	if cfg.Workflow.Journal {
		sinks = append(sinks, notify.NewJournal(provideRunStore(provideDatabase())))
	}

	return notify.Multi(sinks...)
}
