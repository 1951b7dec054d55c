package products

import (
	"bytes"
	"encoding/json"
)

// Kind is the JSON type of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "bool",
	KindNumber:  "number",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Value is a client-supplied field kept as raw JSON. Price and quantity are
// not required to be numbers, so nothing is interpreted on the way through.
type Value []byte

func (v Value) Kind() Kind {
	b := bytes.TrimLeft(v, " \t\r\n")
	if len(b) == 0 {
		return KindInvalid
	}
	switch b[0] {
	case 'n':
		return KindNull
	case 't', 'f':
		return KindBool
	case '"':
		return KindString
	case '[':
		return KindArray
	case '{':
		return KindObject
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return KindNumber
	}
	return KindInvalid
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	*v = append((*v)[:0], b...)
	return nil
}

func (v Value) clone() Value {
	if v == nil {
		return nil
	}
	return append(Value(nil), v...)
}

// NewValue encodes x as a Value.
func NewValue(x any) (Value, error) {
	b, err := json.Marshal(x)
	if err != nil {
		return nil, err
	}
	return Value(b), nil
}
