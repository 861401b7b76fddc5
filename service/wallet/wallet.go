package wallet

import (
	"errors"
	"fmt"
	"os"

	"lendflow/core"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/mitchellh/go-homedir"
)

// LoadKeystore decrypts a v3 keystore file into the acting wallet
func LoadKeystore(path, passphrase string) (*core.Wallet, error) {
	if path == "" {
		return nil, errors.New("wallet: empty keystore path")
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	keyJSON, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("wallet: read keystore: %w", err)
	}

	key, err := keystore.DecryptKey(keyJSON, passphrase)
	if err != nil {
		return nil, fmt.Errorf("wallet: decrypt keystore: %w", err)
	}

	return &core.Wallet{
		Address:    key.Address,
		PrivateKey: key.PrivateKey,
	}, nil
}
