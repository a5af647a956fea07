package recipe

import (
	"fmt"
	"strings"
)

// Price is a fixed-point monetary value with two decimal places.
// It round-trips the wire representation exactly: "5.5" parses to the same
// value as "5.50" and both render back as "5.50".
type Price struct {
	cents int64
}

// maxPriceCents caps prices at 999.99 (five significant digits, two of
// them fractional), matching the storage column.
const maxPriceCents = 99999

// ParsePrice parses a decimal string such as "5.23" into a Price
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, ErrPriceRequired
	}

	whole := s
	frac := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		whole = s[:dot]
		frac = s[dot+1:]
	}

	if whole == "" || len(frac) > 2 || !allDigits(whole) || !allDigits(frac) {
		return Price{}, ErrPriceInvalid
	}

	var cents int64
	for _, c := range whole {
		cents = cents*10 + int64(c-'0')
		if cents > maxPriceCents {
			return Price{}, ErrPriceTooLarge
		}
	}
	cents *= 100

	switch len(frac) {
	case 1:
		cents += int64(frac[0]-'0') * 10
	case 2:
		cents += int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	}

	if cents > maxPriceCents {
		return Price{}, ErrPriceTooLarge
	}

	return Price{cents: cents}, nil
}

// PriceFromCents builds a Price from a raw cent amount
func PriceFromCents(cents int64) Price {
	return Price{cents: cents}
}

// Cents returns the raw cent amount
func (p Price) Cents() int64 {
	return p.cents
}

// String renders the canonical two-decimal form, e.g. "5.50"
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", p.cents/100, p.cents%100)
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
