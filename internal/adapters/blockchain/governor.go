package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/bindings"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

// GovernorAdapter implements usecase.GovernorGateway against the voting governor contract
type GovernorAdapter struct {
	address string
	client  *Client
	tx      *Transactor
	binding *bindings.VotingGovernor
	log     *slog.Logger
}

// NewGovernorAdapter creates a new governor adapter
func NewGovernorAdapter(cfg *config.RuntimeConfig, client *Client, tx *Transactor, log *slog.Logger) *GovernorAdapter {
	return &GovernorAdapter{
		address: cfg.Contracts.Governor,
		client:  client,
		tx:      tx,
		binding: bindings.NewVotingGovernor(),
		log:     log.With("component", "GovernorAdapter"),
	}
}

func (g *GovernorAdapter) contract() (common.Address, error) {
	if g.address == "" {
		return common.Address{}, fmt.Errorf("governor address not configured (set [contracts] governor in devote.toml or use --governor)")
	}
	addr, err := domain.ParseAddress(g.address)
	if err != nil {
		return common.Address{}, fmt.Errorf("governor address: %w", err)
	}
	return addr, nil
}

func (g *GovernorAdapter) call(ctx context.Context, data []byte) ([]byte, error) {
	addr, err := g.contract()
	if err != nil {
		return nil, err
	}
	return g.client.Call(ctx, addr, data)
}

// ProposalCount returns the number of proposals ever created
func (g *GovernorAdapter) ProposalCount(ctx context.Context) (uint64, error) {
	out, err := g.call(ctx, g.binding.PackGetProposalCount())
	if err != nil {
		return 0, err
	}
	count, err := g.binding.UnpackGetProposalCount(out)
	if err != nil {
		return 0, err
	}
	if !count.IsUint64() {
		return 0, fmt.Errorf("proposal count %s out of range", count)
	}
	return count.Uint64(), nil
}

// Proposal reads proposal id
func (g *GovernorAdapter) Proposal(ctx context.Context, id uint64) (*models.Proposal, error) {
	out, err := g.call(ctx, g.binding.PackGetProposal(new(big.Int).SetUint64(id)))
	if err != nil {
		return nil, err
	}
	p, err := g.binding.UnpackGetProposal(out)
	if err != nil {
		return nil, err
	}

	return &models.Proposal{
		ID:           id,
		Title:        p.Title,
		Description:  p.Description,
		VotesFor:     p.VotesFor,
		VotesAgainst: p.VotesAgainst,
		VotesAbstain: p.VotesAbstain,
		StartTime:    unixTime(p.StartTime),
		EndTime:      unixTime(p.EndTime),
		Executed:     p.Executed,
	}, nil
}

// HasVoted reports whether voter has a receipt for proposal id
func (g *GovernorAdapter) HasVoted(ctx context.Context, id uint64, voter common.Address) (bool, error) {
	out, err := g.call(ctx, g.binding.PackHasVoted(new(big.Int).SetUint64(id), voter))
	if err != nil {
		return false, err
	}
	return g.binding.UnpackHasVoted(out)
}

// VoteReceipt reads voter's receipt for proposal id
func (g *GovernorAdapter) VoteReceipt(ctx context.Context, id uint64, voter common.Address) (*models.VoteReceipt, error) {
	out, err := g.call(ctx, g.binding.PackGetVoteReceipt(new(big.Int).SetUint64(id), voter))
	if err != nil {
		return nil, err
	}
	r, err := g.binding.UnpackGetVoteReceipt(out)
	if err != nil {
		return nil, err
	}

	support := models.VoteType(r.Support)
	if r.HasVoted && !support.Valid() {
		return nil, fmt.Errorf("receipt for proposal %d has unknown vote type %d", id, r.Support)
	}
	return &models.VoteReceipt{
		HasVoted: r.HasVoted,
		Support:  support,
		Weight:   r.Weight,
	}, nil
}

// CastVote broadcasts a castVote transaction
func (g *GovernorAdapter) CastVote(ctx context.Context, id uint64, support models.VoteType) (common.Hash, error) {
	data, err := g.binding.TryPackCastVote(new(big.Int).SetUint64(id), uint8(support))
	if err != nil {
		return common.Hash{}, &domain.TransactionError{Stage: domain.TxStageBuild, Err: err}
	}
	return g.send(ctx, data)
}

// Propose broadcasts a propose transaction
func (g *GovernorAdapter) Propose(ctx context.Context, actions []models.ProposalAction, description string) (common.Hash, error) {
	targets, values, calldatas, err := splitActions(actions)
	if err != nil {
		return common.Hash{}, err
	}
	data, err := g.binding.TryPackPropose(targets, values, calldatas, description)
	if err != nil {
		return common.Hash{}, &domain.TransactionError{Stage: domain.TxStageBuild, Err: err}
	}
	return g.send(ctx, data)
}

// Queue broadcasts a queue transaction
func (g *GovernorAdapter) Queue(ctx context.Context, actions []models.ProposalAction, descriptionHash common.Hash) (common.Hash, error) {
	targets, values, calldatas, err := splitActions(actions)
	if err != nil {
		return common.Hash{}, err
	}
	data, err := g.binding.TryPackQueue(targets, values, calldatas, descriptionHash)
	if err != nil {
		return common.Hash{}, &domain.TransactionError{Stage: domain.TxStageBuild, Err: err}
	}
	return g.send(ctx, data)
}

// Execute broadcasts an execute transaction
func (g *GovernorAdapter) Execute(ctx context.Context, actions []models.ProposalAction, descriptionHash common.Hash) (common.Hash, error) {
	targets, values, calldatas, err := splitActions(actions)
	if err != nil {
		return common.Hash{}, err
	}
	data, err := g.binding.TryPackExecute(targets, values, calldatas, descriptionHash)
	if err != nil {
		return common.Hash{}, &domain.TransactionError{Stage: domain.TxStageBuild, Err: err}
	}
	return g.send(ctx, data)
}

// ProposalIDFromReceipt decodes the ProposalCreated event emitted by the governor
func (g *GovernorAdapter) ProposalIDFromReceipt(receipt *models.TxReceipt) (uint64, bool) {
	addr, err := g.contract()
	if err != nil || receipt == nil {
		return 0, false
	}
	event, ok := g.binding.FindProposalCreated(addr, receipt.Logs)
	if !ok || !event.ProposalId.IsUint64() {
		return 0, false
	}
	g.log.Debug("decoded proposal", "event", event.String())
	return event.ProposalId.Uint64(), true
}

func (g *GovernorAdapter) send(ctx context.Context, data []byte) (common.Hash, error) {
	addr, err := g.contract()
	if err != nil {
		return common.Hash{}, err
	}
	return g.tx.Send(ctx, addr, nil, data)
}

// splitActions converts actions into the parallel arrays the governor takes
func splitActions(actions []models.ProposalAction) ([]common.Address, []*big.Int, [][]byte, error) {
	targets := make([]common.Address, 0, len(actions))
	for _, a := range actions {
		addr, err := domain.ParseAddress(a.Target)
		if err != nil {
			return nil, nil, nil, &domain.TransactionError{Stage: domain.TxStageBuild, Err: err}
		}
		targets = append(targets, addr)
	}
	values := lo.Map(actions, func(a models.ProposalAction, _ int) *big.Int {
		if a.Value == nil {
			return new(big.Int)
		}
		return a.Value
	})
	calldatas := lo.Map(actions, func(a models.ProposalAction, _ int) []byte {
		if a.Calldata == nil {
			return []byte{}
		}
		return a.Calldata
	})
	return targets, values, calldatas, nil
}

func unixTime(v *big.Int) time.Time {
	if v == nil || !v.IsInt64() {
		return time.Time{}
	}
	return time.Unix(v.Int64(), 0).UTC()
}

var _ usecase.GovernorGateway = (*GovernorAdapter)(nil)
