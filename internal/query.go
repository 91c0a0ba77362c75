package internal

import (
	"net/url"
	"strings"
)

// Query holds the parameters of one rates request. The zero value asks for
// the latest rates against the feed's default base.
//
// The date selector moves between latest, a single day and a range:
// SetAt selects a single day, SetFrom/SetTo select a range and SetLatest
// resets to latest. A single day shares its slot with the range start, so
// SetAt replaces a previous SetFrom and vice versa.
type Query struct {
	base    CurrencyCode
	symbols []CurrencyCode

	from    *Date
	to      *Date
	history bool
}

func (q *Query) SetBase(code string) error {
	ccy, err := NewCurrencyCode(code)
	if err != nil {
		return err
	}
	q.base = ccy
	return nil
}

// SetSymbols replaces the target currencies. Nothing changes if any code is invalid.
func (q *Query) SetSymbols(codes ...string) error {
	symbols := make([]CurrencyCode, 0, len(codes))
	for _, code := range codes {
		ccy, err := NewCurrencyCode(code)
		if err != nil {
			return err
		}
		symbols = append(symbols, ccy)
	}
	q.symbols = symbols
	return nil
}

func (q *Query) SetLatest() {
	q.from = nil
	q.to = nil
	q.history = false
}

func (q *Query) SetAt(d Date) {
	q.from = &d
	q.to = nil
	q.history = false
}

func (q *Query) SetFrom(d Date) {
	q.from = &d
	q.history = true
}

func (q *Query) SetTo(d Date) {
	q.to = &d
	q.history = true
}

func (q *Query) Base() CurrencyCode { return q.base }

func (q *Query) Symbols() []CurrencyCode {
	out := make([]CurrencyCode, len(q.symbols))
	copy(out, q.symbols)
	return out
}

// Day returns the selected single day, if any.
func (q *Query) Day() (Date, bool) {
	if q.history || q.from == nil {
		return Date{}, false
	}
	return *q.from, true
}

// IsHistory reports whether a date range was requested.
func (q *Query) IsHistory() bool { return q.history }

// Validate checks the date selector. The first violated rule is returned.
func (q *Query) Validate() error {
	for _, d := range []*Date{q.from, q.to} {
		if d != nil && !d.Supported() {
			return newError(CodeUnsupportedHistoricalYear,
				"no rates before %d, got %s", MinSupportedYear, d.Format())
		}
	}

	if !q.history {
		return nil
	}
	if q.from == nil || q.to == nil {
		return newError(CodeInvalidDateRange, "date range needs both start and end dates")
	}
	if q.from.Compare(*q.to) > 0 {
		return newError(CodeInvalidDateOrder,
			"start date %s is after end date %s", q.from.Format(), q.to.Format())
	}
	return nil
}

// URL validates q and renders the request URL against baseURL.
func (q *Query) URL(baseURL, accessKey string) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))

	params := make([]string, 0, 5)
	switch {
	case q.history:
		b.WriteString("/history")
		params = append(params, "start_at="+q.from.Format(), "end_at="+q.to.Format())
	case q.from != nil:
		b.WriteString("/" + q.from.Format())
	default:
		b.WriteString("/latest")
	}

	if q.base != "" {
		params = append(params, "base="+q.base.String())
	}
	if len(q.symbols) > 0 {
		codes := make([]string, len(q.symbols))
		for i, s := range q.symbols {
			codes[i] = s.String()
		}
		params = append(params, "symbols="+strings.Join(codes, ","))
	}
	if accessKey != "" {
		params = append(params, "access_key="+url.QueryEscape(accessKey))
	}

	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String(), nil
}
