package models

import "math/big"

// Account is a snapshot of the governance token position of one address.
type Account struct {
	Address     string   `json:"address" yaml:"address"`
	Balance     *big.Int `json:"balance" yaml:"balance"`
	VotingPower *big.Int `json:"votingPower" yaml:"votingPower"`
	Delegatee   string   `json:"delegatee" yaml:"delegatee"`
	Symbol      string   `json:"symbol" yaml:"symbol"`
	Decimals    uint8    `json:"decimals" yaml:"decimals"`
}

// NeedsDelegation reports a nonzero balance that carries no voting power.
// Voting power only activates after delegating, including to oneself.
func (a *Account) NeedsDelegation() bool {
	if a.Balance == nil || a.Balance.Sign() == 0 {
		return false
	}
	return a.VotingPower == nil || a.VotingPower.Sign() == 0
}

// HasDelegated reports whether the account has set any delegatee
func (a *Account) HasDelegated() bool {
	return a.Delegatee != "" && a.Delegatee != ZeroAddress
}
