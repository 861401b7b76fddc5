package core

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// AssetRole role of an asset in the workflow
type AssetRole string

const (
	// AssetRoleBase wrapped native token supplied as collateral
	AssetRoleBase AssetRole = "base"
	// AssetRoleBorrow token borrowed and repaid
	AssetRoleBorrow AssetRole = "borrow"
)

const (
	// DefaultReferenceDecimals account data is denominated in native wei
	DefaultReferenceDecimals uint8 = 18
	// DefaultAssetDecimals used when an asset omits decimals
	DefaultAssetDecimals uint8 = 18
)

// NetworkProfile addresses and confirmation policy of one deployment environment
type NetworkProfile struct {
	Name                         string          `json:"name,omitempty"`
	ChainID                      int64           `json:"chain_id,omitempty"`
	BlockConfirmations           uint64          `json:"block_confirmations"`
	BaseAsset                    Asset           `json:"base_asset"`
	BorrowAsset                  Asset           `json:"borrow_asset"`
	LendingPoolAddressesProvider common.Address  `json:"lending_pool_addresses_provider"`
	SafetyMargin                 decimal.Decimal `json:"safety_margin,omitempty"`
	// ConfirmTimeout seconds, overrides workflow.confirm_timeout
	ConfirmTimeout    int64 `json:"confirm_timeout,omitempty"`
	ReferenceDecimals uint8 `json:"reference_decimals,omitempty"`
}

// Validate checks every required field, filling defaults for optional ones
func (p *NetworkProfile) Validate() error {
	missing := func(field string) error {
		return NewError(ErrConfiguration, "config", fmt.Errorf("network %q: missing %s", p.Name, field))
	}

	if p.BlockConfirmations == 0 {
		return missing("block_confirmations")
	}

	if p.BaseAsset.Address == (common.Address{}) {
		return missing("base_asset.address")
	}

	if p.BorrowAsset.Address == (common.Address{}) {
		return missing("borrow_asset.address")
	}

	if !p.BorrowAsset.HasPriceFeed() {
		return missing("borrow_asset.price_feed")
	}

	if p.LendingPoolAddressesProvider == (common.Address{}) {
		return missing("lending_pool_addresses_provider")
	}

	if p.SafetyMargin.IsNegative() || p.SafetyMargin.GreaterThan(decimal.NewFromInt(1)) {
		return NewError(ErrConfiguration, "config", fmt.Errorf("network %q: safety_margin %s outside (0, 1]", p.Name, p.SafetyMargin))
	}

	if p.BaseAsset.Decimals == 0 {
		p.BaseAsset.Decimals = DefaultAssetDecimals
	}

	if p.BorrowAsset.Decimals == 0 {
		p.BorrowAsset.Decimals = DefaultAssetDecimals
	}

	if p.ReferenceDecimals == 0 {
		p.ReferenceDecimals = DefaultReferenceDecimals
	}

	return nil
}

// Asset resolves the asset bound to role
func (p *NetworkProfile) Asset(role AssetRole) (Asset, error) {
	var asset Asset
	switch role {
	case AssetRoleBase:
		asset = p.BaseAsset
	case AssetRoleBorrow:
		asset = p.BorrowAsset
	default:
		return Asset{}, NewError(ErrConfiguration, "config", fmt.Errorf("network %q: unknown asset role %q", p.Name, role))
	}

	if asset.Address == (common.Address{}) {
		return Asset{}, NewError(ErrConfiguration, "config", fmt.Errorf("network %q: %s asset not configured", p.Name, role))
	}

	return asset, nil
}

// Timeout per step confirmation timeout, fallback when the profile sets none
func (p *NetworkProfile) Timeout(fallback time.Duration) time.Duration {
	if p.ConfirmTimeout > 0 {
		return time.Duration(p.ConfirmTimeout) * time.Second
	}

	return fallback
}

// Margin safety margin, fallback when the profile sets none
func (p *NetworkProfile) Margin(fallback decimal.Decimal) decimal.Decimal {
	if p.SafetyMargin.IsPositive() {
		return p.SafetyMargin
	}

	return fallback
}
