package abi

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devote-org/devote-cli/internal/domain"
)

const recipient = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func TestEncodeCallTransfer(t *testing.T) {
	enc := NewCalldataEncoder()

	data, err := enc.EncodeCall("transfer(address, uint256)", `"`+recipient+`", "1000000000000000000"`)
	require.NoError(t, err)

	// transfer(address,uint256) selector
	assert.Equal(t, "0xa9059cbb", hexutil.Encode(data[:4]))

	parsed, err := abi.JSON(stringsReader(`[{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]}]`))
	require.NoError(t, err)
	values, err := parsed.Methods["transfer"].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(recipient), values[0])
	assert.Equal(t, "1000000000000000000", values[1].(*big.Int).String())
}

func TestEncodeCallTypes(t *testing.T) {
	enc := NewCalldataEncoder()

	tests := []struct {
		name      string
		signature string
		args      string
	}{
		{"no args", "pause()", ""},
		{"uint alias", "setQuorum(uint)", "4"},
		{"small ints", "configure(uint8,int16,bool)", `7, -300, true`},
		{"string and bytes", "setURI(string,bytes)", `"ipfs://x", "0xdeadbeef"`},
		{"fixed bytes", "setRoot(bytes32)", `"0x` + repeatHex("ab", 32) + `"`},
		{"address array", "grant(address[])", `["` + recipient + `", "0x0000000000000000000000000000000000000001"]`},
		{"fixed uint array", "setWeights(uint256[2])", `[1, "0x02"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := enc.EncodeCall(tt.signature, tt.args)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(data), 4)
			assert.Equal(t, 0, (len(data)-4)%32)
		})
	}
}

func TestEncodeCallSelectorUsesCanonicalTypes(t *testing.T) {
	enc := NewCalldataEncoder()

	a, err := enc.EncodeCall("setQuorum(uint)", "4")
	require.NoError(t, err)
	b, err := enc.EncodeCall("setQuorum(uint256)", "4")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeCallErrors(t *testing.T) {
	enc := NewCalldataEncoder()

	tests := []struct {
		name      string
		signature string
		args      string
		contains  string
	}{
		{"bad signature", "transfer", "", "invalid function signature"},
		{"count mismatch", "transfer(address,uint256)", `"` + recipient + `"`, "parameter count mismatch: expected 2, got 1"},
		{"bad json", "transfer(address,uint256)", `0xabc, 1`, "comma-separated JSON"},
		{"bad address", "transfer(address,uint256)", `"0x123", 1`, "valid Ethereum address"},
		{"negative uint", "setQuorum(uint256)", "-1", "negative value"},
		{"overflow", "configure(uint8)", "256", "overflows"},
		{"signed overflow", "configure(int8)", "128", "overflows"},
		{"wrong bytes length", "setRoot(bytes32)", `"0xabcd"`, "expected 32 bytes"},
		{"unknown type", "foo(float)", "1", "unsupported parameter type"},
		{"tuple", "foo((uint256,address))", "1", "tuple parameters"},
		{"not a bool", "toggle(bool)", `"yes"`, "expected true or false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.EncodeCall(tt.signature, tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestSignedBounds(t *testing.T) {
	enc := NewCalldataEncoder()

	_, err := enc.EncodeCall("configure(int8)", "-128")
	assert.NoError(t, err)
	_, err = enc.EncodeCall("configure(int8)", "127")
	assert.NoError(t, err)
	_, err = enc.EncodeCall("configure(int8)", "-129")
	assert.Error(t, err)
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func repeatHex(b string, n int) string {
	return strings.Repeat(b, n)
}
