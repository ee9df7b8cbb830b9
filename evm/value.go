package evm

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindBytes
	KindSequence
	KindMapping
)

// Value is a JSON-RPC response tree: null, bool, number, string, byte
// sequence, sequence, or key-ordered mapping. Mappings keep the key
// order of the wire payload and numbers keep their exact textual form.
// The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	str     string
	bts     []byte
	seq     []Value
	mapping []Member
}

// Member is a single key/value pair of a mapping Value.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null Value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean Value.
func Bool(v bool) Value {
	return Value{kind: KindBool, boolean: v}
}

// Number returns a numeric Value holding the exact textual form of n.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, number: n}
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bytes returns a byte-sequence Value. It renders as a lowercase hex
// string when marshaled.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bts: b}
}

// Sequence returns a sequence Value preserving element order.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, seq: items}
}

// Mapping returns a mapping Value preserving member order.
func Mapping(members ...Member) Value {
	return Value{kind: KindMapping, mapping: members}
}

// Kind reports the shape of the Value.
func (v Value) Kind() Kind {
	return v.kind
}

// Members returns the ordered members of a mapping Value, or nil for
// any other kind.
func (v Value) Members() []Member {
	return v.mapping
}

// Items returns the elements of a sequence Value, or nil for any other
// kind.
func (v Value) Items() []Value {
	return v.seq
}

// MarshalJSON renders the canonical JSON form of the Value. Mapping
// members are emitted in order and byte sequences as lowercase hex
// strings, with no 0x prefix added or removed.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.boolean)
	case KindNumber:
		return []byte(v.number), nil
	case KindString:
		return json.Marshal(v.str)
	case KindBytes:
		return json.Marshal(hex.EncodeToString(v.bts))
	case KindSequence:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMapping:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, m := range v.mapping {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			b, err := m.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// DecodeValue decodes a raw JSON payload into a Value, preserving the
// key order of objects and the exact textual form of numbers.
func DecodeValue(raw json.RawMessage) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, errors.New("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key token %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Mapping(members...), nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Sequence(items...), nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// FromAny normalizes an arbitrary Go value into a Value. A Value input
// passes through unchanged, byte slices become byte-sequence values,
// and map keys are sorted for a deterministic order. Unsupported types
// are an error rather than being silently kept.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case json.Number:
		return Number(x), nil
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case hexutil.Bytes:
		return Bytes(x), nil
	case common.Address:
		return String(x.Hex()), nil
	case common.Hash:
		return String(x.Hex()), nil
	case int:
		return Number(json.Number(fmt.Sprintf("%d", x))), nil
	case int64:
		return Number(json.Number(fmt.Sprintf("%d", x))), nil
	case uint64:
		return Number(json.Number(fmt.Sprintf("%d", x))), nil
	case *big.Int:
		if x == nil {
			return Null(), nil
		}
		return Number(json.Number(x.String())), nil
	case float64:
		n, err := json.Marshal(x)
		if err != nil {
			return Value{}, err
		}
		return Number(json.Number(n)), nil
	case []any:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, converted)
		}
		return Sequence(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			converted, err := FromAny(x[k])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: k, Value: converted})
		}
		return Mapping(members...), nil
	}
	return Value{}, fmt.Errorf("cannot normalize value of type %T", v)
}
