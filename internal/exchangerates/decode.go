package exchangerates

import (
	"strings"
	"unicode/utf8"

	"exchange-rates/internal"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

const maxDetailLen = 256

// decodePayload reads the rates body. An "error" member fails the fetch even
// on HTTP 200, since the upstream reports some failures that way.
func decodePayload(body []byte) (internal.RatesPayload, error) {
	if detail, ok := upstreamError(body); ok {
		return internal.RatesPayload{}, internal.FetchFailed(errors.Errorf("upstream error: %s", detail))
	}

	raw, dataType, _, err := jsonparser.Get(body, "rates")
	if err != nil {
		return internal.RatesPayload{}, internal.FetchFailed(errors.Wrap(err, "response has no rates"))
	}
	if dataType != jsonparser.Object {
		return internal.RatesPayload{}, internal.FetchFailed(errors.Errorf("rates is a %s, want an object", dataType))
	}

	var p internal.RatesPayload
	p.Base, _ = jsonparser.GetString(body, "base")
	p.Date, _ = jsonparser.GetString(body, "date")

	var numbers, objects int
	codes := make(map[string]float64)
	series := make(map[string]map[string]float64)

	err = jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		switch dataType {
		case jsonparser.Number:
			numbers++
			rate, err := jsonparser.ParseFloat(value)
			if err != nil {
				return errors.Wrapf(err, "rate %s", key)
			}
			codes[string(key)] = rate
		case jsonparser.Object:
			objects++
			day, err := decodeDay(value)
			if err != nil {
				return errors.Wrapf(err, "rates on %s", key)
			}
			series[string(key)] = day
		default:
			return errors.Errorf("rate %s is a %s", key, dataType)
		}
		return nil
	})
	if err != nil {
		return internal.RatesPayload{}, internal.FetchFailed(err)
	}
	if numbers > 0 && objects > 0 {
		return internal.RatesPayload{}, internal.FetchFailed(errors.New("rates mix single values and daily series"))
	}

	if objects > 0 {
		p.Series = series
	} else {
		p.Codes = codes
	}
	return p, nil
}

func decodeDay(raw []byte) (map[string]float64, error) {
	day := make(map[string]float64)
	err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		if dataType != jsonparser.Number {
			return errors.Errorf("rate %s is a %s", key, dataType)
		}
		rate, err := jsonparser.ParseFloat(value)
		if err != nil {
			return errors.Wrapf(err, "rate %s", key)
		}
		day[string(key)] = rate
		return nil
	})
	return day, err
}

// upstreamError extracts the detail of an "error" member, which is either a
// string or an object carrying info/message/type. A null or false member
// counts as absent; any other member is reported, empty or not.
func upstreamError(body []byte) (string, bool) {
	value, dataType, _, err := jsonparser.Get(body, "error")
	if err != nil {
		return "", false
	}

	switch dataType {
	case jsonparser.Null:
		return "", false
	case jsonparser.Boolean:
		if set, _ := jsonparser.ParseBoolean(value); !set {
			return "", false
		}
		return "error flag set", true
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			s = string(value)
		}
		if s = strings.TrimSpace(s); s == "" {
			return "empty error", true
		}
		return truncate(s), true
	case jsonparser.Object:
		for _, field := range []string{"info", "message", "type"} {
			if s, err := jsonparser.GetString(value, field); err == nil && s != "" {
				return truncate(s), true
			}
		}
	}
	return truncate(string(value)), true
}

// responseDetail describes a non-200 body: its error member if any, else the body itself.
func responseDetail(body []byte) string {
	if detail, ok := upstreamError(body); ok {
		return detail
	}
	return truncate(strings.TrimSpace(string(body)))
}

// truncate caps s at maxDetailLen bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxDetailLen {
		return s
	}
	cut := maxDetailLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
