package evm

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func TestDecodeValuePreservesKeyOrder(t *testing.T) {
	raw := `{"zebra":1,"apple":{"z":true,"y":null},"mango":[1,"two"]}`

	v, err := DecodeValue(json.RawMessage(raw))
	require.NoError(t, err)
	require.Equal(t, KindMapping, v.Kind())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, raw, string(out))
}

func TestDecodeValueKeepsExactNumbers(t *testing.T) {
	raw := `{"big":123456789012345678901234567890,"frac":1.50}`

	v, err := DecodeValue(json.RawMessage(raw))
	require.NoError(t, err)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, raw, string(out))
}

func TestDecodeValueScalars(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
	}{
		{`null`, KindNull},
		{`true`, KindBool},
		{`42`, KindNumber},
		{`"0x1b4"`, KindString},
		{`[]`, KindSequence},
		{`{}`, KindMapping},
	}
	for _, tt := range tests {
		v, err := DecodeValue(json.RawMessage(tt.raw))
		require.NoError(t, err, tt.raw)
		require.Equal(t, tt.kind, v.Kind(), tt.raw)

		out, err := json.Marshal(v)
		require.NoError(t, err, tt.raw)
		require.Equal(t, tt.raw, string(out), tt.raw)
	}
}

func TestDecodeValueRejectsTrailingData(t *testing.T) {
	_, err := DecodeValue(json.RawMessage(`{"a":1} garbage`))
	require.Error(t, err)
}

func TestFromAnyBytesRenderLowercaseHex(t *testing.T) {
	v, err := FromAny([]byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	require.Equal(t, KindBytes, v.Kind())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `"deadbeef"`, string(out))

	v, err = FromAny(hexutil.Bytes{0xab, 0xcd})
	require.NoError(t, err)
	out, err = json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `"abcd"`, string(out))
}

func TestFromAnyIsIdempotent(t *testing.T) {
	decoded, err := DecodeValue(json.RawMessage(`{"b":[1,null,"x"],"a":true}`))
	require.NoError(t, err)

	once, err := FromAny(decoded)
	require.NoError(t, err)
	require.Equal(t, decoded, once)

	twice, err := FromAny(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestFromAnySortsMapKeys(t *testing.T) {
	v, err := FromAny(map[string]any{
		"zebra": 1,
		"apple": []any{true, nil},
	})
	require.NoError(t, err)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `{"apple":[true,null],"zebra":1}`, string(out))
}

func TestFromAnyBigInt(t *testing.T) {
	wei, ok := new(big.Int).SetString("1500000000000000000", 10)
	require.True(t, ok)

	v, err := FromAny(wei)
	require.NoError(t, err)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `1500000000000000000`, string(out))
}

func TestFromAnyRejectsUnsupportedTypes(t *testing.T) {
	_, err := FromAny(struct{ X int }{X: 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot normalize")
}

func TestValueMarshalIndent(t *testing.T) {
	v := Mapping(
		Member{Key: "chain_id", Value: Number("1")},
		Member{Key: "block_number", Value: Number("17000000")},
	)

	out, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	require.Equal(t, "{\n  \"chain_id\": 1,\n  \"block_number\": 17000000\n}", string(out))
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	require.Equal(t, KindNull, v.Kind())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `null`, string(out))
}
