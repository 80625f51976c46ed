package domain

import (
	"fmt"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount int64, unit currency.Unit) Money {
	return Money{
		Amount:   decimal.NewFromInt(amount),
		Currency: unit,
	}
}

// String formats the amount with the narrow currency symbol, e.g. "₹ 250".
func (m Money) String() string {
	return fmt.Sprintf("%v %s", currency.NarrowSymbol(m.Currency), m.Amount.String())
}
