// Package core provides the reimbursement record types and numeric coercion.
//
// This file contains the helpers that turn loosely-typed spreadsheet cells
// into amounts and counts.
package core

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidCount  = errors.New("invalid count")
)

// ParseAmount converts a cell value into a non-negative decimal amount.
//
// Strings may carry a leading "$" and thousands separators. The decimal keeps
// the value as written, so "45.50" formats back as "45.5" and "10" as "10".
//
// Examples:
//
//	ParseAmount("45.50")     -> 45.5, nil
//	ParseAmount("$1,200")    -> 1200, nil
//	ParseAmount(12.25)       -> 12.25, nil
//	ParseAmount("-3")        -> error
func ParseAmount(v any) (decimal.Decimal, error) {
	var d decimal.Decimal
	switch x := v.(type) {
	case decimal.Decimal:
		d = x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, ErrInvalidAmount
		}
		d = decimal.NewFromFloat(x)
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return decimal.Zero, ErrInvalidAmount
		}
		d = decimal.NewFromFloat32(x)
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return decimal.Zero, ErrInvalidAmount
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, x)
		}
		d = parsed
	default:
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseCount converts a cell value into a non-negative integer.
// Whole-number floats and strings such as "3.0" are accepted.
func ParseCount(v any) (int, error) {
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return 0, ErrInvalidCount
		}
		n = int(x)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil || !d.IsInteger() || d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCount, x)
		}
		n = int(d.IntPart())
	default:
		return 0, ErrInvalidCount
	}
	if n < 0 {
		return 0, ErrInvalidCount
	}
	return n, nil
}

// FormatAmount renders an amount without forced decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}
