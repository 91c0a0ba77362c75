package internal

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/currency"
)

type CurrencyCode string

func NewCurrencyCode(s string) (CurrencyCode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", InvalidArgument("currency code is empty")
	}
	ccy := CurrencyCode(strings.ToUpper(s))
	if !ccy.IsSupported() {
		return "", newError(CodeInvalidCurrency, "unsupported currency %q", s)
	}
	return ccy, nil
}

const (
	EUR CurrencyCode = "EUR"
	USD CurrencyCode = "USD"
	GBP CurrencyCode = "GBP"
	JPY CurrencyCode = "JPY"
	RUB CurrencyCode = "RUB"
	CHF CurrencyCode = "CHF"
)

// Codes published by the ECB reference feed.
var supportedSet = map[CurrencyCode]struct{}{
	"AUD": {}, "BGN": {}, "BRL": {}, "CAD": {}, "CHF": {}, "CNY": {}, "CZK": {},
	"DKK": {}, "EUR": {}, "GBP": {}, "HKD": {}, "HRK": {}, "HUF": {}, "IDR": {},
	"ILS": {}, "INR": {}, "ISK": {}, "JPY": {}, "KRW": {}, "MXN": {}, "MYR": {},
	"NOK": {}, "NZD": {}, "PHP": {}, "PLN": {}, "RON": {}, "RUB": {}, "SEK": {},
	"SGD": {}, "THB": {}, "TRY": {}, "USD": {}, "ZAR": {},
}

// SupportedCurrencies returns the known codes in alphabetical order.
func SupportedCurrencies() []CurrencyCode {
	out := make([]CurrencyCode, 0, len(supportedSet))
	for c := range supportedSet {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

func (c CurrencyCode) IsSupported() bool {
	_, ok := supportedSet[c]
	return ok
}

func (c CurrencyCode) String() string { return string(c) }

// Unit returns the ISO 4217 unit used to format amounts in c.
func (c CurrencyCode) Unit() (currency.Unit, error) {
	return currency.ParseISO(string(c))
}

func (c CurrencyCode) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}

func (c *CurrencyCode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	s := strings.Trim(string(b), "\"")
	ccy, err := NewCurrencyCode(s)
	if err != nil {
		return err
	}
	*c = ccy
	return nil
}
