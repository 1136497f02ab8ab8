package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// VotingGovernorMetaData contains all meta data concerning the VotingGovernor contract.
var VotingGovernorMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"castVote\",\"inputs\":[{\"name\":\"proposalId\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"support\",\"type\":\"uint8\",\"internalType\":\"uint8\"}],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"execute\",\"inputs\":[{\"name\":\"targets\",\"type\":\"address[]\",\"internalType\":\"address[]\"},{\"name\":\"values\",\"type\":\"uint256[]\",\"internalType\":\"uint256[]\"},{\"name\":\"calldatas\",\"type\":\"bytes[]\",\"internalType\":\"bytes[]\"},{\"name\":\"descriptionHash\",\"type\":\"bytes32\",\"internalType\":\"bytes32\"}],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"payable\"},{\"type\":\"function\",\"name\":\"getProposal\",\"inputs\":[{\"name\":\"proposalId\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"outputs\":[{\"name\":\"title\",\"type\":\"string\",\"internalType\":\"string\"},{\"name\":\"description\",\"type\":\"string\",\"internalType\":\"string\"},{\"name\":\"votesFor\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"votesAgainst\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"votesAbstain\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"startTime\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"endTime\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"executed\",\"type\":\"bool\",\"internalType\":\"bool\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"getProposalCount\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"getVoteReceipt\",\"inputs\":[{\"name\":\"proposalId\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"voter\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[{\"name\":\"hasVoted\",\"type\":\"bool\",\"internalType\":\"bool\"},{\"name\":\"support\",\"type\":\"uint8\",\"internalType\":\"uint8\"},{\"name\":\"weight\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"hasVoted\",\"inputs\":[{\"name\":\"proposalId\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"account\",\"type\":\"address\",\"internalType\":\"address\"}],\"outputs\":[{\"name\":\"\",\"type\":\"bool\",\"internalType\":\"bool\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"propose\",\"inputs\":[{\"name\":\"targets\",\"type\":\"address[]\",\"internalType\":\"address[]\"},{\"name\":\"values\",\"type\":\"uint256[]\",\"internalType\":\"uint256[]\"},{\"name\":\"calldatas\",\"type\":\"bytes[]\",\"internalType\":\"bytes[]\"},{\"name\":\"description\",\"type\":\"string\",\"internalType\":\"string\"}],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"queue\",\"inputs\":[{\"name\":\"targets\",\"type\":\"address[]\",\"internalType\":\"address[]\"},{\"name\":\"values\",\"type\":\"uint256[]\",\"internalType\":\"uint256[]\"},{\"name\":\"calldatas\",\"type\":\"bytes[]\",\"internalType\":\"bytes[]\"},{\"name\":\"descriptionHash\",\"type\":\"bytes32\",\"internalType\":\"bytes32\"}],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"nonpayable\"},{\"type\":\"event\",\"name\":\"ProposalCreated\",\"inputs\":[{\"name\":\"proposalId\",\"type\":\"uint256\",\"indexed\":true,\"internalType\":\"uint256\"},{\"name\":\"proposer\",\"type\":\"address\",\"indexed\":true,\"internalType\":\"address\"},{\"name\":\"description\",\"type\":\"string\",\"indexed\":false,\"internalType\":\"string\"}],\"anonymous\":false},{\"type\":\"event\",\"name\":\"VoteCast\",\"inputs\":[{\"name\":\"voter\",\"type\":\"address\",\"indexed\":true,\"internalType\":\"address\"},{\"name\":\"proposalId\",\"type\":\"uint256\",\"indexed\":true,\"internalType\":\"uint256\"},{\"name\":\"support\",\"type\":\"uint8\",\"indexed\":false,\"internalType\":\"uint8\"},{\"name\":\"weight\",\"type\":\"uint256\",\"indexed\":false,\"internalType\":\"uint256\"}],\"anonymous\":false}]",
	ID:  "VotingGovernor",
}

// VotingGovernor is a Go binding around the governor/voting contract.
type VotingGovernor struct {
	abi abi.ABI
}

// NewVotingGovernor creates a new instance of VotingGovernor.
func NewVotingGovernor() *VotingGovernor {
	parsed, err := VotingGovernorMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &VotingGovernor{abi: *parsed}
}

// PackGetProposalCount packs the parameters for getProposalCount.
// This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function getProposalCount() view returns(uint256)
func (g *VotingGovernor) PackGetProposalCount() []byte {
	enc, err := g.abi.Pack("getProposalCount")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackGetProposalCount unpacks the return data of getProposalCount.
//
// Solidity: function getProposalCount() view returns(uint256)
func (g *VotingGovernor) UnpackGetProposalCount(data []byte) (*big.Int, error) {
	out, err := g.abi.Unpack("getProposalCount", data)
	if err != nil {
		return new(big.Int), err
	}
	out0 := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	return out0, nil
}

// GetProposalOutput is the return tuple of getProposal.
type GetProposalOutput struct {
	Title        string
	Description  string
	VotesFor     *big.Int
	VotesAgainst *big.Int
	VotesAbstain *big.Int
	StartTime    *big.Int
	EndTime      *big.Int
	Executed     bool
}

// PackGetProposal packs the parameters for getProposal.
// This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function getProposal(uint256 proposalId) view returns(string title, string description, uint256 votesFor, uint256 votesAgainst, uint256 votesAbstain, uint256 startTime, uint256 endTime, bool executed)
func (g *VotingGovernor) PackGetProposal(proposalId *big.Int) []byte {
	enc, err := g.abi.Pack("getProposal", proposalId)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackGetProposal unpacks the return data of getProposal.
//
// Solidity: function getProposal(uint256 proposalId) view returns(string title, string description, uint256 votesFor, uint256 votesAgainst, uint256 votesAbstain, uint256 startTime, uint256 endTime, bool executed)
func (g *VotingGovernor) UnpackGetProposal(data []byte) (GetProposalOutput, error) {
	out, err := g.abi.Unpack("getProposal", data)
	outstruct := new(GetProposalOutput)
	if err != nil {
		return *outstruct, err
	}
	outstruct.Title = *abi.ConvertType(out[0], new(string)).(*string)
	outstruct.Description = *abi.ConvertType(out[1], new(string)).(*string)
	outstruct.VotesFor = abi.ConvertType(out[2], new(big.Int)).(*big.Int)
	outstruct.VotesAgainst = abi.ConvertType(out[3], new(big.Int)).(*big.Int)
	outstruct.VotesAbstain = abi.ConvertType(out[4], new(big.Int)).(*big.Int)
	outstruct.StartTime = abi.ConvertType(out[5], new(big.Int)).(*big.Int)
	outstruct.EndTime = abi.ConvertType(out[6], new(big.Int)).(*big.Int)
	outstruct.Executed = *abi.ConvertType(out[7], new(bool)).(*bool)
	return *outstruct, nil
}

// PackHasVoted packs the parameters for hasVoted.
// This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function hasVoted(uint256 proposalId, address account) view returns(bool)
func (g *VotingGovernor) PackHasVoted(proposalId *big.Int, account common.Address) []byte {
	enc, err := g.abi.Pack("hasVoted", proposalId, account)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackHasVoted unpacks the return data of hasVoted.
//
// Solidity: function hasVoted(uint256 proposalId, address account) view returns(bool)
func (g *VotingGovernor) UnpackHasVoted(data []byte) (bool, error) {
	out, err := g.abi.Unpack("hasVoted", data)
	if err != nil {
		return *new(bool), err
	}
	out0 := *abi.ConvertType(out[0], new(bool)).(*bool)
	return out0, nil
}

// GetVoteReceiptOutput is the return tuple of getVoteReceipt.
type GetVoteReceiptOutput struct {
	HasVoted bool
	Support  uint8
	Weight   *big.Int
}

// PackGetVoteReceipt packs the parameters for getVoteReceipt.
// This method will panic if any invalid/nil inputs are passed.
//
// Solidity: function getVoteReceipt(uint256 proposalId, address voter) view returns(bool hasVoted, uint8 support, uint256 weight)
func (g *VotingGovernor) PackGetVoteReceipt(proposalId *big.Int, voter common.Address) []byte {
	enc, err := g.abi.Pack("getVoteReceipt", proposalId, voter)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackGetVoteReceipt unpacks the return data of getVoteReceipt.
//
// Solidity: function getVoteReceipt(uint256 proposalId, address voter) view returns(bool hasVoted, uint8 support, uint256 weight)
func (g *VotingGovernor) UnpackGetVoteReceipt(data []byte) (GetVoteReceiptOutput, error) {
	out, err := g.abi.Unpack("getVoteReceipt", data)
	outstruct := new(GetVoteReceiptOutput)
	if err != nil {
		return *outstruct, err
	}
	outstruct.HasVoted = *abi.ConvertType(out[0], new(bool)).(*bool)
	outstruct.Support = *abi.ConvertType(out[1], new(uint8)).(*uint8)
	outstruct.Weight = abi.ConvertType(out[2], new(big.Int)).(*big.Int)
	return *outstruct, nil
}

// TryPackCastVote packs the parameters for castVote.
// This method will return an error if any inputs are invalid/nil.
//
// Solidity: function castVote(uint256 proposalId, uint8 support) returns(uint256)
func (g *VotingGovernor) TryPackCastVote(proposalId *big.Int, support uint8) ([]byte, error) {
	return g.abi.Pack("castVote", proposalId, support)
}

// TryPackPropose packs the parameters for propose.
// This method will return an error if any inputs are invalid/nil.
//
// Solidity: function propose(address[] targets, uint256[] values, bytes[] calldatas, string description) returns(uint256)
func (g *VotingGovernor) TryPackPropose(targets []common.Address, values []*big.Int, calldatas [][]byte, description string) ([]byte, error) {
	return g.abi.Pack("propose", targets, values, calldatas, description)
}

// TryPackQueue packs the parameters for queue.
// This method will return an error if any inputs are invalid/nil.
//
// Solidity: function queue(address[] targets, uint256[] values, bytes[] calldatas, bytes32 descriptionHash) returns(uint256)
func (g *VotingGovernor) TryPackQueue(targets []common.Address, values []*big.Int, calldatas [][]byte, descriptionHash [32]byte) ([]byte, error) {
	return g.abi.Pack("queue", targets, values, calldatas, descriptionHash)
}

// TryPackExecute packs the parameters for execute.
// This method will return an error if any inputs are invalid/nil.
//
// Solidity: function execute(address[] targets, uint256[] values, bytes[] calldatas, bytes32 descriptionHash) payable returns(uint256)
func (g *VotingGovernor) TryPackExecute(targets []common.Address, values []*big.Int, calldatas [][]byte, descriptionHash [32]byte) ([]byte, error) {
	return g.abi.Pack("execute", targets, values, calldatas, descriptionHash)
}

// VotingGovernorProposalCreated represents a ProposalCreated event raised by the VotingGovernor contract.
type VotingGovernorProposalCreated struct {
	ProposalId  *big.Int
	Proposer    common.Address
	Description string
	Raw         *types.Log // Blockchain specific contextual infos
}

const VotingGovernorProposalCreatedEventName = "ProposalCreated"

// ContractEventName returns the user-defined event name.
func (VotingGovernorProposalCreated) ContractEventName() string {
	return VotingGovernorProposalCreatedEventName
}

// UnpackProposalCreatedEvent is the Go binding that unpacks the event data emitted
// by contract.
//
// Solidity: event ProposalCreated(uint256 indexed proposalId, address indexed proposer, string description)
func (g *VotingGovernor) UnpackProposalCreatedEvent(log *types.Log) (*VotingGovernorProposalCreated, error) {
	event := VotingGovernorProposalCreatedEventName
	if len(log.Topics) == 0 || log.Topics[0] != g.abi.Events[event].ID {
		return nil, errors.New("event signature mismatch")
	}
	out := new(VotingGovernorProposalCreated)
	if len(log.Data) > 0 {
		if err := g.abi.UnpackIntoInterface(out, event, log.Data); err != nil {
			return nil, err
		}
	}
	var indexed abi.Arguments
	for _, arg := range g.abi.Events[event].Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopics(out, indexed, log.Topics[1:]); err != nil {
		return nil, err
	}
	out.Raw = log
	return out, nil
}

// VotingGovernorVoteCast represents a VoteCast event raised by the VotingGovernor contract.
type VotingGovernorVoteCast struct {
	Voter      common.Address
	ProposalId *big.Int
	Support    uint8
	Weight     *big.Int
	Raw        *types.Log // Blockchain specific contextual infos
}

const VotingGovernorVoteCastEventName = "VoteCast"

// ContractEventName returns the user-defined event name.
func (VotingGovernorVoteCast) ContractEventName() string {
	return VotingGovernorVoteCastEventName
}

// UnpackVoteCastEvent is the Go binding that unpacks the event data emitted
// by contract.
//
// Solidity: event VoteCast(address indexed voter, uint256 indexed proposalId, uint8 support, uint256 weight)
func (g *VotingGovernor) UnpackVoteCastEvent(log *types.Log) (*VotingGovernorVoteCast, error) {
	event := VotingGovernorVoteCastEventName
	if len(log.Topics) == 0 || log.Topics[0] != g.abi.Events[event].ID {
		return nil, errors.New("event signature mismatch")
	}
	out := new(VotingGovernorVoteCast)
	if len(log.Data) > 0 {
		if err := g.abi.UnpackIntoInterface(out, event, log.Data); err != nil {
			return nil, err
		}
	}
	var indexed abi.Arguments
	for _, arg := range g.abi.Events[event].Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopics(out, indexed, log.Topics[1:]); err != nil {
		return nil, err
	}
	out.Raw = log
	return out, nil
}
