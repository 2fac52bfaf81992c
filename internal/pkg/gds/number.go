package gds

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a numeric GDS field that may arrive as a JSON number, a quoted
// string or something else entirely. Decoding never fails; a value that
// cannot be read as a number is kept as absent.
type Number struct {
	raw string
}

// NewNumber builds a Number holding d rounded to two decimal places.
func NewNumber(d decimal.Decimal) Number {
	return Number{raw: d.StringFixed(2)}
}

// NumberFromInt builds a Number from an integer.
func NumberFromInt(n int) Number {
	return Number{raw: strconv.Itoa(n)}
}

// NumberFromString builds a Number from its textual form without validating it.
func NumberFromString(s string) Number {
	return Number{raw: strings.TrimSpace(s)}
}

func (n Number) IsZero() bool {
	return n.raw == ""
}

// String returns the raw textual value.
func (n Number) String() string {
	return n.raw
}

// Decimal returns the parsed value, false when absent or unparsable.
func (n Number) Decimal() (decimal.Decimal, bool) {
	if n.raw == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

// Int returns the integral part of the value, false when absent or unparsable.
func (n Number) Int() (int, bool) {
	d, ok := n.Decimal()
	if !ok {
		return 0, false
	}

	return int(d.IntPart()), true
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	n.raw = ""

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		n.raw = strings.TrimSpace(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n.raw = string(data)
	}

	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.raw == "" {
		return []byte("null"), nil
	}

	if d, ok := n.Decimal(); ok {
		if json.Valid([]byte(n.raw)) {
			return []byte(n.raw), nil
		}
		return []byte(d.String()), nil
	}

	return json.Marshal(n.raw)
}
