package core

import (
	"fmt"
	"math/big"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config lendflow config
type Config struct {
	Network  string                     `json:"network"`
	Networks map[string]*NetworkProfile `json:"networks"`
	Node     Node                       `json:"node"`
	Wallet   WalletConfig               `json:"wallet"`
	Workflow Workflow                   `json:"workflow"`
	Notify   Notify                     `json:"notify"`
	Monitor  Monitor                    `json:"monitor"`
	DB       db.Config                  `json:"db"`
}

// Profile active network profile, validated
func (c *Config) Profile() (*NetworkProfile, error) {
	if c.Network == "" {
		return nil, NewError(ErrConfiguration, "config", fmt.Errorf("no active network"))
	}

	profile, ok := c.Networks[c.Network]
	if !ok || profile == nil {
		return nil, NewError(ErrConfiguration, "config", fmt.Errorf("network %q not configured", c.Network))
	}

	profile.Name = c.Network
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Node rpc endpoint
type Node struct {
	Endpoint string `json:"endpoint"`
}

// WalletConfig v3 keystore of the acting account
type WalletConfig struct {
	Keystore   string `json:"keystore"`
	Passphrase string `json:"passphrase"`
}

// Workflow workflow parameters shared by every network
type Workflow struct {
	// WrapAmount native amount wrapped and supplied, in whole units
	WrapAmount       decimal.Decimal `json:"wrap_amount"`
	SafetyMargin     decimal.Decimal `json:"safety_margin"`
	InterestRateMode int64           `json:"interest_rate_mode"`
	ReferralCode     uint16          `json:"referral_code"`
	// ConfirmTimeout seconds
	ConfirmTimeout int64 `json:"confirm_timeout"`
	// PollInterval milliseconds
	PollInterval int64 `json:"poll_interval"`
	// PriceMaxAge seconds, 0 disables the staleness check
	PriceMaxAge int64 `json:"price_max_age"`
	Journal     bool  `json:"journal"`
}

// RateMode interest rate mode as passed to the pool
func (w Workflow) RateMode() *big.Int {
	return big.NewInt(w.InterestRateMode)
}

// Timeout confirmation timeout
func (w Workflow) Timeout() time.Duration {
	return time.Duration(w.ConfirmTimeout) * time.Second
}

// Poll receipt polling interval
func (w Workflow) Poll() time.Duration {
	return time.Duration(w.PollInterval) * time.Millisecond
}

// MaxPriceAge max age of a price round
func (w Workflow) MaxPriceAge() time.Duration {
	return time.Duration(w.PriceMaxAge) * time.Second
}

// Notify report sinks
type Notify struct {
	Webhook string `json:"webhook"`
}

// Monitor position monitor job
type Monitor struct {
	Spec                  string          `json:"spec"`
	Location              string          `json:"location"`
	HealthFactorThreshold decimal.Decimal `json:"health_factor_threshold"`
}
