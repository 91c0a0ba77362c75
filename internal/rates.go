package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type CurrencyLatestRate struct {
	BaseCCY   CurrencyCode
	QuoteCCY  CurrencyCode
	Rate      decimal.Decimal
	AsOfDate  *Date
	FetchedAt time.Time
}

type Storage interface {
	GetLatest(ctx context.Context, base CurrencyCode, quotes []CurrencyCode) ([]CurrencyLatestRate, error)
}

var ErrRateNotAvailable = errors.New("rate not available")

// RateConverter derives any base/quote pair from the latest rates stored
// against a single pivot currency.
type RateConverter struct {
	storage Storage
	pivot   CurrencyCode
}

func NewRateConverter(storage Storage, pivot CurrencyCode) *RateConverter {
	if pivot == "" {
		pivot = EUR
	}
	return &RateConverter{storage: storage, pivot: pivot}
}

type PairRate struct {
	Base  CurrencyCode    `json:"base"`
	Quote CurrencyCode    `json:"quote"`
	Rate  decimal.Decimal `json:"rate"`
	Date  *Date           `json:"date,omitempty"`
}

func (s *RateConverter) GetPairRate(ctx context.Context, base, quote CurrencyCode) (PairRate, error) {
	if !base.IsSupported() {
		return PairRate{}, newError(CodeInvalidCurrency, "unsupported currency %q", base)
	}
	if !quote.IsSupported() {
		return PairRate{}, newError(CodeInvalidCurrency, "unsupported currency %q", quote)
	}
	if base == quote {
		return PairRate{Base: base, Quote: quote, Rate: decimal.NewFromInt(1)}, nil
	}

	// pivot -> any
	if base == s.pivot {
		r, err := s.getLatestPivotTo(ctx, quote)
		if err != nil {
			return PairRate{}, err
		}
		return PairRate{Base: base, Quote: quote, Rate: r.Rate, Date: r.AsOfDate}, nil
	}

	// any -> pivot
	if quote == s.pivot {
		r, err := s.getLatestPivotTo(ctx, base)
		if err != nil {
			return PairRate{}, err
		}
		if r.Rate.IsZero() {
			return PairRate{}, fmt.Errorf("rate %s/%s is zero, cannot invert", s.pivot, base)
		}

		inv := decimal.NewFromInt(1).Div(r.Rate)
		return PairRate{Base: base, Quote: quote, Rate: inv, Date: r.AsOfDate}, nil
	}

	// any -> any through the pivot
	rBase, err := s.getLatestPivotTo(ctx, base)
	if err != nil {
		return PairRate{}, err
	}
	rQuote, err := s.getLatestPivotTo(ctx, quote)
	if err != nil {
		return PairRate{}, err
	}
	if rBase.Rate.IsZero() {
		return PairRate{}, fmt.Errorf("rate %s/%s is zero, cannot divide", s.pivot, base)
	}

	cross := rQuote.Rate.Div(rBase.Rate)
	return PairRate{Base: base, Quote: quote, Rate: cross, Date: olderDate(rBase.AsOfDate, rQuote.AsOfDate)}, nil
}

func (s *RateConverter) getLatestPivotTo(ctx context.Context, quote CurrencyCode) (CurrencyLatestRate, error) {
	rows, err := s.storage.GetLatest(ctx, s.pivot, []CurrencyCode{quote})
	if err != nil {
		return CurrencyLatestRate{}, fmt.Errorf("get latest %s/%s: %w", s.pivot, quote, err)
	}
	if len(rows) == 0 {
		return CurrencyLatestRate{}, fmt.Errorf("%s/%s: %w", s.pivot, quote, ErrRateNotAvailable)
	}
	return rows[0], nil
}

// olderDate returns the staler of two as-of dates.
func olderDate(a, b *Date) *Date {
	if a == nil {
		return b
	}
	if b == nil || a.Compare(*b) <= 0 {
		return a
	}
	return b
}
