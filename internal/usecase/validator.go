package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"recon-forcematch/internal/domain"
)

// amountTolerance bounds the absolute difference under which two numeric
// values still count as equal.
var amountTolerance = decimal.New(1, -4) // 1e-4

// Validate reports whether the two selected source/column pairs hold
// provably identical values. It is the single gate on commit eligibility:
// total, deterministic, and never panics.
//
// Absent sources are invalid. Numeric values compare with an absolute
// tolerance below 1e-4; everything else compares as normalized strings
// (currency symbols, thousands separators and surrounding whitespace
// stripped). String comparison is case-sensitive, including on reference
// fields: "TXN123" and "txn123" do not validate.
func Validate(record domain.TransactionRecord, leftSource, rightSource domain.Source, leftColumn, rightColumn domain.Column) bool {
	left, ok := fieldValue(record, leftSource, leftColumn)
	if !ok {
		return false
	}
	right, ok := fieldValue(record, rightSource, rightColumn)
	if !ok {
		return false
	}

	leftNum, leftIsNum := toDecimal(left)
	rightNum, rightIsNum := toDecimal(right)
	if leftIsNum && rightIsNum {
		return leftNum.Sub(rightNum).Abs().LessThan(amountTolerance)
	}
	return normalizeComparable(left) == normalizeComparable(right)
}

func fieldValue(record domain.TransactionRecord, src domain.Source, col domain.Column) (any, bool) {
	detail, ok := record.Detail(src)
	if !ok {
		return nil, false
	}
	switch col {
	case domain.ColumnAmount:
		return detail.Amount, true
	case domain.ColumnDate:
		return detail.Date, true
	case domain.ColumnReference:
		return detail.Reference, true
	}
	return nil, false
}

// normalizeComparable strips currency symbols and thousands separators from
// strings and trims surrounding whitespace; non-string values are coerced to
// their string form.
func normalizeComparable(v any) string {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '$', '€', '£', '₹', '¥':
			return -1
		}
		return r
	}, s)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case string:
		d, err := decimal.NewFromString(normalizeComparable(val))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}
