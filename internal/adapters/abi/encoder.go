package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/devote-org/devote-cli/internal/domain"
	"github.com/devote-org/devote-cli/internal/usecase"
)

var signaturePattern = regexp.MustCompile(`^(\w+)\((.*)\)$`)

// CalldataEncoder builds calldata for proposal actions from a human readable
// function signature and comma separated JSON arguments, e.g.
//
//	transfer(address,uint256)  "0xf39F...", "1000"
type CalldataEncoder struct{}

// NewCalldataEncoder creates a new encoder
func NewCalldataEncoder() *CalldataEncoder {
	return &CalldataEncoder{}
}

// EncodeCall returns selector || abi.encode(args)
func (e *CalldataEncoder) EncodeCall(signature, args string) ([]byte, error) {
	name, types, err := parseSignature(signature)
	if err != nil {
		return nil, err
	}

	values, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	if len(values) != len(types) {
		return nil, fmt.Errorf("%w: parameter count mismatch: expected %d, got %d", domain.ErrInvalidInput, len(types), len(values))
	}

	arguments := make(abi.Arguments, 0, len(types))
	packed := make([]interface{}, 0, len(types))
	for i, typ := range types {
		abiType, err := abi.NewType(typ, "", nil)
		if err != nil {
			return nil, fmt.Errorf("%w: unsupported parameter type %q: %v", domain.ErrInvalidInput, typ, err)
		}
		v, err := convertArg(abiType, values[i])
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d (%s): %v", domain.ErrInvalidInput, i+1, typ, err)
		}
		arguments = append(arguments, abi.Argument{Type: abiType})
		packed = append(packed, v)
	}

	encoded, err := arguments.Pack(packed...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode arguments: %v", domain.ErrInvalidInput, err)
	}

	canonical := name + "(" + strings.Join(types, ",") + ")"
	selector := crypto.Keccak256([]byte(canonical))[:4]
	return append(selector, encoded...), nil
}

// parseSignature splits "name(type,...)" into the name and trimmed types
func parseSignature(signature string) (string, []string, error) {
	m := signaturePattern.FindStringSubmatch(strings.TrimSpace(signature))
	if m == nil {
		return "", nil, fmt.Errorf("%w: invalid function signature %q (expected name(type,...))", domain.ErrInvalidInput, signature)
	}
	inner := strings.ReplaceAll(m[2], " ", "")
	if inner == "" {
		return m[1], nil, nil
	}
	if strings.ContainsAny(inner, "()") {
		return "", nil, fmt.Errorf("%w: tuple parameters are not supported", domain.ErrInvalidInput)
	}
	types := strings.Split(inner, ",")
	for i, t := range types {
		types[i] = canonicalType(t)
	}
	return m[1], types, nil
}

// canonicalType expands the uint/int aliases, which the selector must not use
func canonicalType(t string) string {
	base, suffix := t, ""
	if i := strings.Index(t, "["); i >= 0 {
		base, suffix = t[:i], t[i:]
	}
	switch base {
	case "uint":
		base = "uint256"
	case "int":
		base = "int256"
	}
	return base + suffix
}

// parseArgs decodes `"a", 1, [2,3]` as a JSON array
func parseArgs(args string) ([]json.RawMessage, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return nil, nil
	}
	var values []json.RawMessage
	if err := json.Unmarshal([]byte("["+args+"]"), &values); err != nil {
		return nil, fmt.Errorf("%w: invalid function parameters format, use comma-separated JSON values", domain.ErrInvalidInput)
	}
	return values, nil
}

// convertArg decodes one JSON value into the Go type abi.Pack expects for typ
func convertArg(typ abi.Type, raw json.RawMessage) (interface{}, error) {
	v, err := convertValue(typ, raw)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func convertValue(typ abi.Type, raw json.RawMessage) (reflect.Value, error) {
	goType := typ.GetType()

	switch typ.T {
	case abi.IntTy, abi.UintTy:
		n, err := parseInteger(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		if typ.T == abi.UintTy && n.Sign() < 0 {
			return reflect.Value{}, fmt.Errorf("negative value for unsigned type")
		}
		if !fits(n, typ) {
			return reflect.Value{}, fmt.Errorf("value %s overflows %s", n, typ)
		}
		if goType == reflect.TypeOf(&big.Int{}) {
			return reflect.ValueOf(n), nil
		}
		out := reflect.New(goType).Elem()
		if typ.T == abi.UintTy {
			out.SetUint(n.Uint64())
		} else {
			out.SetInt(n.Int64())
		}
		return out, nil

	case abi.BoolTy:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return reflect.Value{}, fmt.Errorf("expected true or false")
		}
		return reflect.ValueOf(b), nil

	case abi.StringTy:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return reflect.Value{}, fmt.Errorf("expected a string")
		}
		return reflect.ValueOf(s), nil

	case abi.AddressTy:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return reflect.Value{}, fmt.Errorf("expected an address string")
		}
		addr, err := domain.ParseAddress(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(addr), nil

	case abi.BytesTy, abi.FixedBytesTy:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return reflect.Value{}, fmt.Errorf("expected a 0x-prefixed hex string")
		}
		b, err := hexutil.Decode(s)
		if err != nil {
			return reflect.Value{}, err
		}
		if typ.T == abi.BytesTy {
			return reflect.ValueOf(b), nil
		}
		if len(b) != typ.Size {
			return reflect.Value{}, fmt.Errorf("expected %d bytes, got %d", typ.Size, len(b))
		}
		out := reflect.New(goType).Elem()
		reflect.Copy(out, reflect.ValueOf(b))
		return out, nil

	case abi.SliceTy, abi.ArrayTy:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return reflect.Value{}, fmt.Errorf("expected a JSON array")
		}
		var out reflect.Value
		if typ.T == abi.ArrayTy {
			if len(items) != typ.Size {
				return reflect.Value{}, fmt.Errorf("expected %d elements, got %d", typ.Size, len(items))
			}
			out = reflect.New(goType).Elem()
		} else {
			out = reflect.MakeSlice(goType, len(items), len(items))
		}
		for i, item := range items {
			elem, err := convertValue(*typ.Elem, item)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("unsupported type %s", typ)
}

func fits(n *big.Int, typ abi.Type) bool {
	if typ.T == abi.UintTy {
		return n.BitLen() <= typ.Size
	}
	if n.Sign() < 0 {
		return new(big.Int).Add(n, big.NewInt(1)).BitLen() <= typ.Size-1
	}
	return n.BitLen() <= typ.Size-1
}

// parseInteger accepts JSON numbers and decimal or 0x-prefixed strings
func parseInteger(raw json.RawMessage) (*big.Int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return nil, fmt.Errorf("expected an integer")
	}

	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}

var _ usecase.ActionEncoder = (*CalldataEncoder)(nil)
