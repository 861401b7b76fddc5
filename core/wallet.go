package core

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Wallet acting account
type Wallet struct {
	Address    common.Address    `json:"address"`
	PrivateKey *ecdsa.PrivateKey `json:"-"`
}
