package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// ID
// ---------------------------------------------------------------------------

// ID is a record identifier. The API emits ids as JSON numbers on some
// endpoints and as strings on others; both decode to the same value.
type ID string

// String returns the id text.
func (id ID) String() string { return string(id) }

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("models.ID: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("models.ID: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// ---------------------------------------------------------------------------
// Amount
// ---------------------------------------------------------------------------

// Amount is a decimal quantity (money, kilograms, pieces). PHP serialises
// numeric columns as strings, so numbers, numeric strings, empty strings and
// null are all accepted; the latter two decode to zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

// AmountFromFloat is a convenience for tests and literals.
func AmountFromFloat(f float64) Amount { return Amount{Decimal: decimal.NewFromFloat(f)} }

// ParseAmount parses s leniently: surrounding space and a leading currency
// marker are ignored, and unparsable input yields zero.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"₹", "Rs.", "PKR", "$"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return Amount{Decimal: d}
}

// UnmarshalJSON accepts numbers, numeric strings, "" and null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("models.Amount: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			a.Decimal = decimal.Zero
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("models.Amount: %q is not a number", s)
		}
		a.Decimal = d
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("models.Amount: %w", err)
	}
	a.Decimal = d
	return nil
}

// MarshalJSON emits a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Fixed formats the amount with n decimal places.
func (a Amount) Fixed(n int32) string { return a.StringFixed(n) }

// ---------------------------------------------------------------------------
// Flag
// ---------------------------------------------------------------------------

// Flag is the envelope success marker. Some endpoints answer
// {"success": true}, others {"status": "success"}; truthy numbers and the
// strings "true", "1" and "success" are accepted too.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("true")):
		*f = true
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "success", "ok":
			*f = true
		default:
			*f = false
		}
	case bytes.Equal(b, []byte("1")):
		*f = true
	default:
		*f = false
	}
	return nil
}

// ---------------------------------------------------------------------------
// Envelope
// ---------------------------------------------------------------------------

// Envelope is the common response wrapper of every PHP endpoint.
type Envelope struct {
	Success Flag            `json:"success"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OK reports whether either success marker is set.
func (e *Envelope) OK() bool {
	return bool(e.Success) || strings.EqualFold(strings.TrimSpace(e.Status), "success")
}
