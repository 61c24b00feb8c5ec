package domain

import (
	"fmt"
	"math"
	"regexp"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Amount is a non-negative quantity of minor currency units (e.g. cents for USD).
// The zero Amount has no currency and is only useful as a placeholder.
type Amount struct {
	quantity int64
	currency string
}

// NewAmount validates and builds an Amount.
func NewAmount(quantity int64, currency string) (Amount, error) {
	if quantity < 0 {
		return Amount{}, InvalidValue(RuleAmountNegative, "quantity %d is negative", quantity)
	}
	if !currencyCodeRe.MatchString(currency) {
		return Amount{}, InvalidValue(RuleAmountCurrency, "currency code %q is not three upper-case letters", currency)
	}
	return Amount{quantity: quantity, currency: currency}, nil
}

// MustAmount is NewAmount for literals known to be valid. It panics otherwise.
func MustAmount(quantity int64, currency string) Amount {
	a, err := NewAmount(quantity, currency)
	if err != nil {
		panic(err)
	}
	return a
}

// Quantity returns the amount in minor units.
func (a Amount) Quantity() int64 { return a.quantity }

// Currency returns the currency code.
func (a Amount) Currency() string { return a.currency }

// IsPositive returns true if the quantity is strictly greater than zero.
func (a Amount) IsPositive() bool { return a.quantity > 0 }

// Equal compares quantity and currency exactly.
func (a Amount) Equal(other Amount) bool {
	return a.quantity == other.quantity && a.currency == other.currency
}

// Plus adds two amounts of the same currency.
func (a Amount) Plus(other Amount) (Amount, error) {
	if a.currency != other.currency {
		return Amount{}, CurrencyMismatch(a.currency, other.currency)
	}
	if other.quantity > math.MaxInt64-a.quantity {
		return Amount{}, InvalidValue(RuleAmountOverflow, "sum of %d and %d overflows", a.quantity, other.quantity)
	}
	return Amount{quantity: a.quantity + other.quantity, currency: a.currency}, nil
}

// Minus subtracts other from a. The result may not go below zero.
func (a Amount) Minus(other Amount) (Amount, error) {
	if a.currency != other.currency {
		return Amount{}, CurrencyMismatch(a.currency, other.currency)
	}
	if other.quantity > a.quantity {
		return Amount{}, InvalidValue(RuleAmountNegative, "%d minus %d is negative", a.quantity, other.quantity)
	}
	return Amount{quantity: a.quantity - other.quantity, currency: a.currency}, nil
}

// Compare returns -1, 0 or 1. Amounts of different currencies are not comparable.
func (a Amount) Compare(other Amount) (int, error) {
	if a.currency != other.currency {
		return 0, CurrencyMismatch(a.currency, other.currency)
	}
	switch {
	case a.quantity < other.quantity:
		return -1, nil
	case a.quantity > other.quantity:
		return 1, nil
	}
	return 0, nil
}

// String renders the amount as "<quantity> <currency>", in minor units.
func (a Amount) String() string {
	return fmt.Sprintf("%d %s", a.quantity, a.currency)
}
