package config

import (
	"lendflow/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	wethMainnet              = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	daiMainnet               = "0x6b175474e89094c44da98b954eedeac495271d0f"
	daiEthFeedMainnet        = "0x773616E4d11A78F511299002da57A0a94577F1f4"
	addressesProviderMainnet = "0xB53C1a33016B2DC2fF3653530bfF1848a515c8c5"
)

// mainnetFork profile of a local node forking mainnet
func mainnetFork() *core.NetworkProfile {
	return &core.NetworkProfile{
		BlockConfirmations: 1,
		BaseAsset: core.Asset{
			Symbol:   "WETH",
			Address:  common.HexToAddress(wethMainnet),
			Decimals: 18,
		},
		BorrowAsset: core.Asset{
			Symbol:    "DAI",
			Address:   common.HexToAddress(daiMainnet),
			Decimals:  18,
			PriceFeed: common.HexToAddress(daiEthFeedMainnet),
		},
		LendingPoolAddressesProvider: common.HexToAddress(addressesProviderMainnet),
	}
}

func kovan() *core.NetworkProfile {
	return &core.NetworkProfile{
		ChainID:            42,
		BlockConfirmations: 6,
		BaseAsset: core.Asset{
			Symbol:   "WETH",
			Address:  common.HexToAddress("0xd0a1e359811322d97991e03f863a0c30c2cf029c"),
			Decimals: 18,
		},
		BorrowAsset: core.Asset{
			Symbol:    "DAI",
			Address:   common.HexToAddress("0xFf795577d9AC8bD7D90Ee22b6C1703490b6512FD"),
			Decimals:  18,
			PriceFeed: common.HexToAddress("0x22B58f1EbEDfCA50feF632bD73368b2FdA96D541"),
		},
		LendingPoolAddressesProvider: common.HexToAddress("0x88757f2f99175387aB4C6a4b3067c77A695b0349"),
	}
}

// DefaultNetworks profiles known without a config file
func DefaultNetworks() map[string]*core.NetworkProfile {
	return map[string]*core.NetworkProfile{
		"localhost": mainnetFork(),
		"hardhat":   mainnetFork(),
		"kovan":     kovan(),
	}
}

func defaults(cfg *core.Config) {
	if cfg.Network == "" {
		cfg.Network = "localhost"
	}

	if cfg.Networks == nil {
		cfg.Networks = map[string]*core.NetworkProfile{}
	}

	for name, profile := range DefaultNetworks() {
		if _, ok := cfg.Networks[name]; !ok {
			cfg.Networks[name] = profile
		}
	}

	if cfg.Node.Endpoint == "" {
		cfg.Node.Endpoint = "http://127.0.0.1:8545"
	}

	w := &cfg.Workflow
	if w.WrapAmount.IsZero() {
		w.WrapAmount = decimal.NewFromFloat(0.02)
	}

	if w.SafetyMargin.IsZero() {
		w.SafetyMargin = decimal.NewFromFloat(0.95)
	}

	if w.InterestRateMode == 0 {
		w.InterestRateMode = 1
	}

	if w.ConfirmTimeout == 0 {
		w.ConfirmTimeout = 300
	}

	if w.PollInterval == 0 {
		w.PollInterval = 1000
	}

	if cfg.Monitor.Spec == "" {
		cfg.Monitor.Spec = "@every 1m"
	}

	if cfg.Monitor.HealthFactorThreshold.IsZero() {
		cfg.Monitor.HealthFactorThreshold = decimal.NewFromFloat(1.5)
	}
}
