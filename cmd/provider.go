package cmd

import (
	"context"
	"fmt"

	"lendflow/core"
	"lendflow/service/chain"
	walletservice "lendflow/service/wallet"

	"github.com/fox-one/pkg/store/db"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideProfile() *core.NetworkProfile {
	profile, err := cfg.Profile()
	if err != nil {
		panic(err)
	}

	return profile
}

// provideChain dials the node and checks it serves the chain of profile
func provideChain(ctx context.Context, profile *core.NetworkProfile) *chain.Client {
	backend, err := chain.Dial(ctx, cfg.Node.Endpoint)
	if err != nil {
		panic(err)
	}

	client, err := chain.New(ctx, backend)
	if err != nil {
		panic(err)
	}

	if profile.ChainID != 0 && client.ChainID().Int64() != profile.ChainID {
		panic(core.NewError(core.ErrConfiguration, "config", fmt.Errorf("network %q expects chain %d, node serves %s",
			profile.Name, profile.ChainID, client.ChainID())))
	}

	return client
}

func provideWallet() *core.Wallet {
	w, err := walletservice.LoadKeystore(cfg.Wallet.Keystore, cfg.Wallet.Passphrase)
	if err != nil {
		panic(err)
	}

	return w
}
