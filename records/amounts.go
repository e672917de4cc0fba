package records

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Amount and rate wire formats. Amounts travel as pre-formatted strings and
// are never reformatted; decimals are used only to compare them.
var (
	amountPattern = regexp.MustCompile(`^-?\d{1,12}\.\d{2}$`)
	ratePattern   = regexp.MustCompile(`^\d{1,3}\.\d{2}$`)
	hashPattern   = regexp.MustCompile(`^[0-9A-F]{64}$`)
)

// centTolerance is the slack the AEAT accepts on derived amounts
var centTolerance = decimal.NewFromFloat(0.02)

// isValidAmount reports whether v matches the -?d{1,12}.d{2} wire format
func isValidAmount(v string) bool {
	return amountPattern.MatchString(v)
}

// isValidRate reports whether v matches the d{1,3}.d{2} wire format
func isValidRate(v string) bool {
	return ratePattern.MatchString(v)
}

// isValidHash reports whether v is 64 uppercase hexadecimal characters
func isValidHash(v string) bool {
	return hashPattern.MatchString(v)
}

// withinTolerance reports whether a two-decimal amount string is within
// ±0.02 of the expected value, after rounding the expectation to cents
func withinTolerance(actual string, expected decimal.Decimal) bool {
	got, err := decimal.NewFromString(actual)
	if err != nil {
		return false
	}
	return got.Sub(expected.Round(2)).Abs().LessThanOrEqual(centTolerance)
}

// equalsRounded reports whether a two-decimal amount string equals the
// expected value rounded to cents, with no tolerance
func equalsRounded(actual string, expected decimal.Decimal) bool {
	got, err := decimal.NewFromString(actual)
	if err != nil {
		return false
	}
	return got.Equal(expected.Round(2))
}

// mustDecimal parses an already format-validated amount string
func mustDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
