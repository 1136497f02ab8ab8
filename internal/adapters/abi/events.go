package abi

import (
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/devote-org/devote-cli/internal/domain/bindings"
	"github.com/devote-org/devote-cli/internal/domain/models"
)

// EventParser decodes the governance events found in transaction receipts.
// Logs from unknown contracts or with unknown signatures are skipped.
type EventParser struct {
	governor *bindings.VotingGovernor
	token    *bindings.GovernanceToken

	delegateChanged common.Hash
	log             *slog.Logger
}

// NewEventParser creates a new event parser
func NewEventParser(log *slog.Logger) *EventParser {
	token := bindings.NewGovernanceToken()
	delegateChanged, err := token.GetEventID("DelegateChanged")
	if err != nil {
		panic(err)
	}
	return &EventParser{
		governor:        bindings.NewVotingGovernor(),
		token:           token,
		delegateChanged: delegateChanged,
		log:             log.With("component", "EventParser"),
	}
}

// DecodeLogs decodes every recognised log in order
func (p *EventParser) DecodeLogs(logs []*types.Log) []models.ReceiptEvent {
	var events []models.ReceiptEvent
	for _, l := range logs {
		if l == nil || len(l.Topics) == 0 {
			continue
		}
		event, err := p.ParseEvent(l)
		if err != nil {
			p.log.Debug("skipping log", "address", l.Address.Hex(), "topic", l.Topics[0].Hex(), "error", err)
			continue
		}
		events = append(events, *event)
	}
	return events
}

// ParseEvent decodes a single log
func (p *EventParser) ParseEvent(l *types.Log) (*models.ReceiptEvent, error) {
	if created, err := p.governor.UnpackProposalCreatedEvent(l); err == nil {
		return &models.ReceiptEvent{
			Name:    created.ContractEventName(),
			Address: l.Address.Hex(),
			Args: map[string]string{
				"proposalId": created.ProposalId.String(),
				"proposer":   created.Proposer.Hex(),
			},
		}, nil
	}

	if cast, err := p.governor.UnpackVoteCastEvent(l); err == nil {
		return &models.ReceiptEvent{
			Name:    cast.ContractEventName(),
			Address: l.Address.Hex(),
			Args: map[string]string{
				"voter":      cast.Voter.Hex(),
				"proposalId": cast.ProposalId.String(),
				"support":    models.VoteType(cast.Support).String(),
				"weight":     cast.Weight.String(),
			},
		}, nil
	}

	if l.Topics[0] == p.delegateChanged {
		// all three arguments are indexed
		if len(l.Topics) != 4 {
			return nil, fmt.Errorf("DelegateChanged event missing topics")
		}
		return &models.ReceiptEvent{
			Name:    "DelegateChanged",
			Address: l.Address.Hex(),
			Args: map[string]string{
				"delegator":    common.BytesToAddress(l.Topics[1].Bytes()).Hex(),
				"fromDelegate": common.BytesToAddress(l.Topics[2].Bytes()).Hex(),
				"toDelegate":   common.BytesToAddress(l.Topics[3].Bytes()).Hex(),
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown event signature %s", l.Topics[0].Hex())
}
