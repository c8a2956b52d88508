package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Transform maps the raw text of one element to a comparable value.
type Transform[T any] func(raw string) (T, error)

// InvalidValueError reports a text a Transform could not convert.
type InvalidValueError struct {
	Raw    string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q: %s", e.Raw, e.Reason)
}

// Text returns the trimmed text unchanged.
func Text(raw string) (string, error) {
	return strings.TrimSpace(raw), nil
}

// NameKey trims and case-folds a display name so that "sauce" and "Sauce"
// sort together.
func NameKey(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &InvalidValueError{Raw: raw, Reason: "empty name"}
	}
	return cases.Fold().String(s), nil
}

var (
	blanks = strings.NewReplacer(" ", "", "\u00a0", "")

	// Plain decimal amounts only. ParseFloat alone would also take "1e3",
	// "0x1p4" and "Inf", none of which a storefront shows as a price.
	decimalAmount = regexp.MustCompile(`^(\d{1,3}(,\d{3})+|\d+)(\.\d+)?$`)
)

// Price parses a price shown with a leading currency symbol, e.g. "$29.99"
// or "$1,299.00". Text without the symbol, or that is not a plain decimal
// amount after it, is invalid. Commas are only accepted as thousands
// separators, so "$12,50" is rejected rather than read as 1250.
func Price(symbol string) Transform[float64] {
	return func(raw string) (float64, error) {
		s := strings.TrimSpace(raw)
		if !strings.HasPrefix(s, symbol) {
			return 0, &InvalidValueError{Raw: raw, Reason: "missing currency symbol " + symbol}
		}

		s = blanks.Replace(strings.TrimPrefix(s, symbol))
		if !decimalAmount.MatchString(s) {
			return 0, &InvalidValueError{Raw: raw, Reason: "not a decimal amount"}
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return 0, &InvalidValueError{Raw: raw, Reason: "not a number"}
		}
		return v, nil
	}
}
