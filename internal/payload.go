package internal

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// RatesPayload is the decoded body of a rates response. Exactly one of Codes
// and Series is set: Codes for latest and single-day requests, Series
// (keyed by YYYY-MM-DD) for history requests.
type RatesPayload struct {
	Base   string
	Date   string
	Codes  map[string]float64
	Series map[string]map[string]float64
}

type RatesKind int

const (
	ScalarRates RatesKind = iota
	CodeRates
	DateRates
)

// Rates is a shaped rates result: a bare number, a code->rate mapping or a
// date->(code->rate) mapping.
type Rates struct {
	Kind  RatesKind
	Value float64
	Codes map[string]float64
	Dates map[string]map[string]float64
}

func Scalar(v float64) Rates { return Rates{Kind: ScalarRates, Value: v} }

// Float returns the bare rate when the result collapsed to a single value.
func (r Rates) Float() (float64, bool) {
	return r.Value, r.Kind == ScalarRates
}

func (r Rates) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case CodeRates:
		return json.Marshal(r.Codes)
	case DateRates:
		return json.Marshal(r.Dates)
	default:
		return json.Marshal(r.Value)
	}
}

// Shape unwraps a single-entry payload: one code yields its bare rate, one
// date yields that day's mapping.
func (p RatesPayload) Shape() Rates {
	if p.Series != nil {
		if len(p.Series) == 1 {
			for _, codes := range p.Series {
				return Rates{Kind: CodeRates, Codes: codes}
			}
		}
		return Rates{Kind: DateRates, Dates: p.Series}
	}
	return collapse(p.Codes)
}

func collapse(codes map[string]float64) Rates {
	if len(codes) == 1 {
		for _, v := range codes {
			return Scalar(v)
		}
	}
	if codes == nil {
		codes = map[string]float64{}
	}
	return Rates{Kind: CodeRates, Codes: codes}
}

// MaxDecimalPlaces bounds rounding precision. It matches the default
// precision decimal uses for the division inside the mean.
const MaxDecimalPlaces = 16

// CheckDecimalPlaces rejects rounding precision outside [0, MaxDecimalPlaces].
// A nil places means full precision and is always accepted.
func CheckDecimalPlaces(places *int) error {
	if places == nil {
		return nil
	}
	if *places < 0 || *places > MaxDecimalPlaces {
		return InvalidArgument("decimal places must be between 0 and %d, got %d", MaxDecimalPlaces, *places)
	}
	return nil
}

// AverageSeries computes the arithmetic mean of every currency over the days
// it appears on. A currency missing on some days is averaged over the days
// where it is present. With places set, each mean is rounded half away from
// zero to that many decimal places.
func AverageSeries(series map[string]map[string]float64, places *int) (Rates, error) {
	if err := CheckDecimalPlaces(places); err != nil {
		return Rates{}, err
	}

	merged := make(map[string][]decimal.Decimal)
	for _, day := range slices.Sorted(maps.Keys(series)) {
		for code, rate := range series[day] {
			merged[code] = append(merged[code], decimal.NewFromFloat(rate))
		}
	}

	out := make(map[string]float64, len(merged))
	for code, rates := range merged {
		mean := decimal.Avg(rates[0], rates[1:]...)
		if places != nil {
			mean = mean.Round(int32(*places))
		}
		out[code] = mean.InexactFloat64()
	}
	return collapse(out), nil
}
