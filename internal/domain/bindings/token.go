package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
)

// GovernanceTokenMetaData contains all meta data concerning the GovernanceToken contract.
var GovernanceTokenMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"balanceOf\",\"inputs\":[{\"name\":\"account\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"decimals\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"uint8\",\"internalType\":\"uint8\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"delegate\",\"inputs\":[{\"name\":\"delegatee\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"delegates\",\"inputs\":[{\"name\":\"account\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[{\"name\":\"\",\"type\":\"address\",\"internalType\":\"address\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"getVotes\",\"inputs\":[{\"name\":\"account\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"symbol\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"string\",\"internalType\":\"string\"}],\"stateMutability\":\"view\"},{\"type\":\"event\",\"name\":\"DelegateChanged\",\"inputs\":[{\"name\":\"delegator\",\"type\":\"address\",\"indexed\":true,\"internalType\":\"address\"},{\"name\":\"fromDelegate\",\"type\":\"address\",\"indexed\":true,\"internalType\":\"address\"},{\"name\":\"toDelegate\",\"type\":\"address\",\"indexed\":true,\"internalType\":\"address\"}],\"anonymous\":false}]",
	ID:  "GovernanceToken",
}

// GovernanceToken is a Go binding around an ERC20Votes token.
type GovernanceToken struct {
	abi abi.ABI
}

// NewGovernanceToken creates a new instance of GovernanceToken.
func NewGovernanceToken() *GovernanceToken {
	parsed, err := GovernanceTokenMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &GovernanceToken{abi: *parsed}
}

// PackBalanceOf packs the parameters for balanceOf.
//
// Solidity: function balanceOf(address account) view returns(uint256)
func (t *GovernanceToken) PackBalanceOf(account common.Address) []byte {
	enc, err := t.abi.Pack("balanceOf", account)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackBalanceOf unpacks the return data of balanceOf.
//
// Solidity: function balanceOf(address account) view returns(uint256)
func (t *GovernanceToken) UnpackBalanceOf(data []byte) (*big.Int, error) {
	return t.unpackUint256("balanceOf", data)
}

// PackGetVotes packs the parameters for getVotes.
//
// Solidity: function getVotes(address account) view returns(uint256)
func (t *GovernanceToken) PackGetVotes(account common.Address) []byte {
	enc, err := t.abi.Pack("getVotes", account)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackGetVotes unpacks the return data of getVotes.
//
// Solidity: function getVotes(address account) view returns(uint256)
func (t *GovernanceToken) UnpackGetVotes(data []byte) (*big.Int, error) {
	return t.unpackUint256("getVotes", data)
}

// PackDelegates packs the parameters for delegates.
//
// Solidity: function delegates(address account) view returns(address)
func (t *GovernanceToken) PackDelegates(account common.Address) []byte {
	enc, err := t.abi.Pack("delegates", account)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackDelegates unpacks the return data of delegates.
//
// Solidity: function delegates(address account) view returns(address)
func (t *GovernanceToken) UnpackDelegates(data []byte) (common.Address, error) {
	out, err := t.abi.Unpack("delegates", data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// PackSymbol packs the parameters for symbol.
//
// Solidity: function symbol() view returns(string)
func (t *GovernanceToken) PackSymbol() []byte {
	enc, err := t.abi.Pack("symbol")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackSymbol unpacks the return data of symbol.
//
// Solidity: function symbol() view returns(string)
func (t *GovernanceToken) UnpackSymbol(data []byte) (string, error) {
	out, err := t.abi.Unpack("symbol", data)
	if err != nil {
		return *new(string), err
	}
	out0 := *abi.ConvertType(out[0], new(string)).(*string)
	return out0, nil
}

// PackDecimals packs the parameters for decimals.
//
// Solidity: function decimals() view returns(uint8)
func (t *GovernanceToken) PackDecimals() []byte {
	enc, err := t.abi.Pack("decimals")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackDecimals unpacks the return data of decimals.
//
// Solidity: function decimals() view returns(uint8)
func (t *GovernanceToken) UnpackDecimals(data []byte) (uint8, error) {
	out, err := t.abi.Unpack("decimals", data)
	if err != nil {
		return *new(uint8), err
	}
	out0 := *abi.ConvertType(out[0], new(uint8)).(*uint8)
	return out0, nil
}

// TryPackDelegate packs the parameters for delegate.
// This method will return an error if any inputs are invalid/nil.
//
// Solidity: function delegate(address delegatee) returns()
func (t *GovernanceToken) TryPackDelegate(delegatee common.Address) ([]byte, error) {
	return t.abi.Pack("delegate", delegatee)
}

func (t *GovernanceToken) unpackUint256(method string, data []byte) (*big.Int, error) {
	out, err := t.abi.Unpack(method, data)
	if err != nil {
		return new(big.Int), err
	}
	out0 := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	return out0, nil
}
