// Package pricing holds currency amounts in minor units and the cart pricing rule shared by
// the delivery service and its client.
package pricing

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Amount is a currency amount in cents.
type Amount int64

// ErrOutOfRange is returned when a value does not fit in an Amount.
var ErrOutOfRange = errors.New("amount out of range")

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// Parse reads a decimal string such as "12.99" and rounds it to cents.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	a, err := FromDecimal(d)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return a, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromDecimal rounds d half up to cents.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	cents := d.Round(2).Shift(2)
	if cents.LessThan(minCents) || cents.GreaterThan(maxCents) {
		return 0, ErrOutOfRange
	}
	return Amount(cents.IntPart()), nil
}

func FromFloat(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrOutOfRange
	}
	return FromDecimal(decimal.NewFromFloat(f))
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

func (a Amount) Float64() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

// Mul does not check for overflow. Use CheckedMul for amounts or quantities that come from
// outside the catalog.
func (a Amount) Mul(quantity int) Amount {
	return a * Amount(quantity)
}

func (a Amount) CheckedMul(quantity int) (Amount, error) {
	if a == 0 || quantity == 0 {
		return 0, nil
	}
	q := Amount(quantity)
	p := a * q
	if p/q != a || (q == -1 && a == math.MinInt64) {
		return 0, ErrOutOfRange
	}
	return p, nil
}

func (a Amount) CheckedAdd(b Amount) (Amount, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, ErrOutOfRange
	}
	return sum, nil
}

func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a two-decimal JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*a = 0
		return nil
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Scan reads NUMERIC, float and integer columns.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = 0
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*a = parsed
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*a = parsed
	case float64:
		parsed, err := FromFloat(v)
		if err != nil {
			return fmt.Errorf("scan amount: %w", err)
		}
		*a = parsed
	case int64:
		parsed, err := Amount(v).CheckedMul(100)
		if err != nil {
			return fmt.Errorf("scan amount: %w", err)
		}
		*a = parsed
	default:
		return fmt.Errorf("scan amount: unsupported type %T", src)
	}
	return nil
}

func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}
