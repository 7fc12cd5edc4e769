// Package units converts between human decimal strings and integer native units
// (wei for an 18-decimal token).
package units

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// EtherDecimals is the scale of the native currency.
const EtherDecimals int32 = 18

var (
	ErrEmpty         = errors.New("amount is empty")
	ErrNotNumeric    = errors.New("amount is not a decimal number")
	ErrNegative      = errors.New("amount is negative")
	ErrTooManyDigits = errors.New("amount has more fractional digits than the unit allows")
)

// Plain decimal notation only. Exponents, signs and thousands separators are rejected.
var decimalPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// ParseDecimal validates s and returns it as an exact decimal.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmpty
	}
	if strings.HasPrefix(s, "-") {
		if decimalPattern.MatchString(s[1:]) {
			return decimal.Zero, ErrNegative
		}
		return decimal.Zero, ErrNotNumeric
	}
	if !decimalPattern.MatchString(s) {
		return decimal.Zero, ErrNotNumeric
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNotNumeric, err)
	}
	return d, nil
}

// ToUnits scales d by 10^decimals. Values that would lose precision are rejected.
func ToUnits(d decimal.Decimal, decimals int32) (*big.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegative
	}
	if !d.Equal(d.Truncate(decimals)) {
		return nil, ErrTooManyDigits
	}
	return d.Shift(decimals).BigInt(), nil
}

// ParseUnits parses a decimal string such as "2.5" into native units.
//
//	ParseUnits("2.5", 18) == 2500000000000000000
func ParseUnits(s string, decimals int32) (*big.Int, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return nil, err
	}
	return ToUnits(d, decimals)
}

// FormatUnits renders v with at least one fractional digit and no trailing zeros:
// 10^18 -> "1.0", 25*10^17 -> "2.5", 3*10^16 -> "0.03".
func FormatUnits(v *big.Int, decimals int32) string {
	if v == nil {
		return "0.0"
	}
	s := decimal.NewFromBigInt(v, -decimals).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MulUnits returns count*unitPrice in native units. The product is taken in exact
// decimal arithmetic before scaling so "0.01" * 3 is exactly 3*10^16.
func MulUnits(unitPrice string, count uint64, decimals int32) (*big.Int, error) {
	price, err := ParseDecimal(unitPrice)
	if err != nil {
		return nil, fmt.Errorf("unit price: %w", err)
	}
	total := price.Mul(decimal.NewFromBigInt(new(big.Int).SetUint64(count), 0))
	return ToUnits(total, decimals)
}
