package render

import (
	"bytes"
	"errors"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/domain/config"
	"github.com/devote-org/devote-cli/internal/domain/models"
	"github.com/devote-org/devote-cli/internal/usecase"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func testView(id uint64, title string, forVotes, against int64, receipt *models.VoteReceipt) *models.ProposalView {
	p := &models.Proposal{
		ID:           id,
		Description:  models.FormatDescription(title, "Body of "+title),
		VotesFor:     tokens(forVotes),
		VotesAgainst: tokens(against),
		VotesAbstain: new(big.Int),
		StartTime:    testNow.Add(-time.Hour),
		EndTime:      testNow.Add(50 * time.Hour),
	}
	return domain.NewProposalView(p, receipt, testNow)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", Bar(0, 10))
	assert.Equal(t, "█████░░░░░", Bar(50, 10))
	assert.Equal(t, "███████░░░", Bar(67, 10))
	assert.Equal(t, "██████████", Bar(140, 10))
	assert.Equal(t, "░░░░░░░░░░", Bar(-3, 10))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "Active", FormatStatus(models.ProposalStatusActive))
	assert.Equal(t, "Succeeded", FormatStatus(models.ProposalStatusSucceeded))
	assert.Equal(t, "Defeated", FormatStatus(models.ProposalStatusDefeated))
	assert.Equal(t, "Executed", FormatStatus(models.ProposalStatusExecuted))
	assert.Equal(t, "Pending", FormatStatus(models.ProposalStatusPending))
	assert.Equal(t, "Against", FormatVoteType(models.VoteAgainst))
	assert.Equal(t, "1.5", FormatVotes(big.NewInt(1500000000000000000)))
	assert.Equal(t, "0", FormatVotes(nil))
	assert.Equal(t, "❌ Voting is closed", FormatError("voting is closed"))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "abc", truncate("abc", 5))
}

func TestProposalTitleFallback(t *testing.T) {
	assert.Equal(t, "Stored", proposalTitle(&models.Proposal{Title: "Stored", Description: "# Other\n\nx"}))
	assert.Equal(t, "Parsed", proposalTitle(&models.Proposal{Description: "# Parsed\n\nbody"}))
	assert.Equal(t, "first line", proposalTitle(&models.Proposal{Description: "first line\nsecond"}))
}

func TestProposalTable(t *testing.T) {
	views := []*models.ProposalView{
		testView(0, "Fund the treasury", 20, 10, nil),
		testView(1, "Lower quorum", 1, 0, &models.VoteReceipt{HasVoted: true, Support: models.VoteFor, Weight: tokens(1)}),
	}
	views[1].Optimistic = true

	out := ProposalTable(views, testNow, true)
	assert.Contains(t, out, "Your vote")
	assert.Contains(t, out, "#0")
	assert.Contains(t, out, "Fund the treasury")
	assert.Contains(t, out, "67%")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "2d 2h remaining")
	assert.Contains(t, out, "For (pending)")

	out = ProposalTable(views, testNow, false)
	assert.NotContains(t, out, "Your vote")
}

func TestRenderListEmptyAndStale(t *testing.T) {
	var buf bytes.Buffer
	r := NewProposalsRenderer(&buf)

	require.NoError(t, r.RenderList(&usecase.ProposalSnapshot{}, testNow))
	assert.Equal(t, "No proposals found\n", buf.String())

	buf.Reset()
	require.NoError(t, r.RenderList(&usecase.ProposalSnapshot{
		Proposals: []*models.ProposalView{testView(0, "One", 1, 1, nil)},
		Stale:     true,
	}, testNow))
	assert.Contains(t, buf.String(), "showing cached results")
}

func TestRenderDetail(t *testing.T) {
	var buf bytes.Buffer
	view := testView(3, "Fund the treasury", 20, 10, nil)

	err := NewProposalsRenderer(&buf).RenderDetail(&usecase.ShowProposalResult{
		View:          view,
		TimeRemaining: "2d 2h remaining",
		CanVote:       true,
		Title:         "Fund the treasury",
		Body:          "Body of Fund the treasury",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Proposal #3: Fund the treasury")
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, " 67% 20")
	assert.Contains(t, out, "Total:       30")
	assert.Contains(t, out, "devote vote 3")
	assert.Contains(t, out, "Body of Fund the treasury")
}

func TestRenderStats(t *testing.T) {
	stats := models.NewAggregatedStats()
	stats.Add(testView(0, "a", 2, 1, nil).Proposal)
	stats.ActiveProposals = 1
	stats.ActiveVoters = 1

	var buf bytes.Buffer
	require.NoError(t, NewProposalsRenderer(&buf).RenderStats(stats))
	out := buf.String()
	assert.Contains(t, out, "1 (1 active)")
	assert.Contains(t, out, "Total votes: 3")
	assert.Contains(t, out, "Voters seen: 1")
}

func TestRenderNetworksList(t *testing.T) {
	var buf bytes.Buffer
	err := NewNetworksRenderer(&buf).RenderNetworksList(&usecase.ListNetworksResult{
		Current: "local",
		Networks: []usecase.NetworkStatus{
			{Name: "local", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
			{Name: "remote", RPCURL: "https://rpc.example"},
			{Name: "broken", Error: errors.New("dial failed")},
		},
	})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"🌐 Available Networks:",
		"",
		"* ✅ local - Chain ID: 31337",
		"  ✅ remote - https://rpc.example",
		"  ❌ broken - Error: dial failed",
		"",
	}, "\n")
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("networks output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderReceipt(t *testing.T) {
	var buf bytes.Buffer
	r := NewTransactionRenderer(&buf, "https://sepolia.etherscan.io")
	hash := common.HexToHash("0xabc")

	err := r.RenderVote(&usecase.CastVoteResult{
		ProposalID: 4,
		Support:    models.VoteAbstain,
		Weight:     tokens(12),
		Receipt: &models.TxReceipt{
			Hash:        hash,
			BlockNumber: 77,
			GasUsed:     51000,
			Events: []models.ReceiptEvent{{
				Name: "VoteCast",
				Args: map[string]string{"support": "2", "proposalId": "4", "voter": "0x01"},
			}},
		},
		RefreshErr: errors.New("rpc down"),
	})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"✅ Voted Abstain on proposal #4 with 12 votes",
		"   Tx: " + hash.Hex() + " (block 77, gas 51000)",
		"   https://sepolia.etherscan.io/tx/" + hash.Hex(),
		"   ↳ VoteCast(proposalId=4, support=2, voter=0x01)",
		"⚠️  could not refresh proposals: rpc down",
		"",
	}, "\n")
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("receipt output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAccount(t *testing.T) {
	account := &models.Account{
		Address:     "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Balance:     tokens(5),
		VotingPower: new(big.Int),
		Symbol:      "VOTE",
		Decimals:    18,
	}

	var buf bytes.Buffer
	require.NoError(t, NewAccountRenderer(&buf).Render(account))
	out := buf.String()
	assert.Contains(t, out, "5 VOTE")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "devote delegate --self")

	account.VotingPower = tokens(5)
	account.Delegatee = account.Address
	buf.Reset()
	require.NoError(t, NewAccountRenderer(&buf).Render(account))
	assert.Contains(t, buf.String(), "self")
	assert.NotContains(t, buf.String(), "devote delegate --self")
}

func TestWriteStructured(t *testing.T) {
	account := &models.Account{
		Address:     "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Balance:     big.NewInt(1500),
		VotingPower: big.NewInt(0),
		Symbol:      "VOTE",
		Decimals:    18,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStructured(&buf, config.OutputJSON, account))
	assert.Contains(t, buf.String(), `"balance": 1500`)
	assert.Contains(t, buf.String(), `"symbol": "VOTE"`)

	buf.Reset()
	require.NoError(t, WriteStructured(&buf, config.OutputYAML, account))
	assert.Contains(t, buf.String(), "symbol: VOTE")
	assert.Contains(t, buf.String(), "1500")

	assert.Error(t, WriteStructured(&buf, config.OutputTable, account))
}

func TestChecksRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewChecksRenderer(&buf).Render(&usecase.CheckSetupResult{
		Checks: []usecase.SetupCheck{
			{Name: "Network", Status: usecase.CheckOK, Detail: "local (chain 31337)"},
			{Name: "Token", Status: usecase.CheckFail, Detail: "no code"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "local (chain 31337)")
	assert.Contains(t, buf.String(), "Some checks failed")
}
