package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// ShowAccountParams contains parameters for showing an account
type ShowAccountParams struct {
	// Address to inspect; empty means the connected wallet.
	Address string
}

// ShowAccount reads token balance, voting power and delegation
type ShowAccount struct {
	token  TokenGateway
	wallet Wallet
}

// NewShowAccount creates a new ShowAccount use case
func NewShowAccount(token TokenGateway, wallet Wallet) *ShowAccount {
	return &ShowAccount{
		token:  token,
		wallet: wallet,
	}
}

// Run executes the show account use case
func (uc *ShowAccount) Run(ctx context.Context, params ShowAccountParams) (*models.Account, error) {
	var (
		addr common.Address
		err  error
	)
	if params.Address != "" {
		addr, err = domain.ParseAddress(params.Address)
	} else {
		addr, err = uc.wallet.Account(ctx)
	}
	if err != nil {
		return nil, err
	}
	return readAccount(ctx, uc.token, addr)
}

func readAccount(ctx context.Context, token TokenGateway, addr common.Address) (*models.Account, error) {
	balance, err := token.BalanceOf(ctx, addr)
	if err != nil {
		return nil, &domain.ReadError{Op: "balance", Index: -1, Err: err}
	}
	votes, err := token.GetVotes(ctx, addr)
	if err != nil {
		return nil, &domain.ReadError{Op: "voting power", Index: -1, Err: err}
	}
	delegatee, err := token.Delegates(ctx, addr)
	if err != nil {
		return nil, &domain.ReadError{Op: "delegate", Index: -1, Err: err}
	}
	symbol, decimals, err := token.TokenInfo(ctx)
	if err != nil {
		return nil, &domain.ReadError{Op: "token info", Index: -1, Err: err}
	}

	account := &models.Account{
		Address:     addr.Hex(),
		Balance:     balance,
		VotingPower: votes,
		Symbol:      symbol,
		Decimals:    decimals,
	}
	if delegatee != (common.Address{}) {
		account.Delegatee = delegatee.Hex()
	}
	return account, nil
}
