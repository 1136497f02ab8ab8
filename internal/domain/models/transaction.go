package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TransactionStatus represents the outcome of a mined transaction
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusExecuted TransactionStatus = "EXECUTED"
	TransactionStatusFailed   TransactionStatus = "FAILED"
)

// TxReceipt is the confirmation of a governance write
type TxReceipt struct {
	Hash        common.Hash       `json:"hash" yaml:"hash"`
	BlockNumber uint64            `json:"blockNumber" yaml:"blockNumber"`
	GasUsed     uint64            `json:"gasUsed" yaml:"gasUsed"`
	Status      TransactionStatus `json:"status" yaml:"status"`

	Events []ReceiptEvent `json:"events,omitempty" yaml:"events,omitempty"`
	Logs   []*types.Log   `json:"-" yaml:"-"`
}

// ReceiptEvent is a decoded governance event emitted by a confirmed transaction
type ReceiptEvent struct {
	Name    string            `json:"name" yaml:"name"`
	Address string            `json:"address" yaml:"address"`
	Args    map[string]string `json:"args" yaml:"args"`
}
