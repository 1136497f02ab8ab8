package bindings

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"
)

// GetEventID returns the event signature hash for a given event name
// This is a helper method that works alongside the ABI bindings
func (g *VotingGovernor) GetEventID(eventName string) (common.Hash, error) {
	event, exists := g.abi.Events[eventName]
	if !exists {
		return common.Hash{}, fmt.Errorf("event %s not found", eventName)
	}
	return event.ID, nil
}

// GetEventID returns the event signature hash for a given event name
func (t *GovernanceToken) GetEventID(eventName string) (common.Hash, error) {
	event, exists := t.abi.Events[eventName]
	if !exists {
		return common.Hash{}, fmt.Errorf("event %s not found", eventName)
	}
	return event.ID, nil
}

// FindProposalCreated returns the first ProposalCreated event emitted by governor in logs
func (g *VotingGovernor) FindProposalCreated(governor common.Address, logs []*types.Log) (*VotingGovernorProposalCreated, bool) {
	events := lo.FilterMap(logs, func(log *types.Log, _ int) (*VotingGovernorProposalCreated, bool) {
		if log == nil || log.Address != governor {
			return nil, false
		}
		event, err := g.UnpackProposalCreatedEvent(log)
		return event, err == nil
	})
	if len(events) == 0 {
		return nil, false
	}
	return events[0], true
}

func (e *VotingGovernorProposalCreated) String() string {
	return fmt.Sprintf(
		"%s: proposalId=%s proposer=%s",
		e.ContractEventName(),
		e.ProposalId,
		e.Proposer.Hex(),
	)
}

func (e *VotingGovernorVoteCast) String() string {
	return fmt.Sprintf(
		"%s: voter=%s proposalId=%s support=%d weight=%s",
		e.ContractEventName(),
		e.Voter.Hex(),
		e.ProposalId,
		e.Support,
		e.Weight,
	)
}
