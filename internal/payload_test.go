package internal_test

import (
	"encoding/json"
	"errors"
	"testing"

	"exchange-rates/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestShape_SingleCodeCollapses(t *testing.T) {
	r := internal.RatesPayload{Codes: map[string]float64{"USD": 1.1}}.Shape()

	v, ok := r.Float()
	require.True(t, ok)
	assert.Equal(t, 1.1, v)
}

func TestShape_ManyCodesKeepMapping(t *testing.T) {
	r := internal.RatesPayload{Codes: map[string]float64{"USD": 1.1, "GBP": 0.9}}.Shape()

	_, ok := r.Float()
	require.False(t, ok)
	assert.Equal(t, internal.CodeRates, r.Kind)
	assert.Equal(t, map[string]float64{"USD": 1.1, "GBP": 0.9}, r.Codes)
}

func TestShape_EmptyCodes(t *testing.T) {
	r := internal.RatesPayload{}.Shape()

	assert.Equal(t, internal.CodeRates, r.Kind)
	assert.Empty(t, r.Codes)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestShape_Series(t *testing.T) {
	one := internal.RatesPayload{Series: map[string]map[string]float64{
		"2021-01-01": {"USD": 1.0, "GBP": 0.8},
	}}.Shape()
	assert.Equal(t, internal.CodeRates, one.Kind)
	assert.Equal(t, map[string]float64{"USD": 1.0, "GBP": 0.8}, one.Codes)

	many := internal.RatesPayload{Series: map[string]map[string]float64{
		"2021-01-01": {"USD": 1.0},
		"2021-01-02": {"USD": 1.2},
	}}.Shape()
	assert.Equal(t, internal.DateRates, many.Kind)
	assert.Len(t, many.Dates, 2)
}

func TestRates_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(internal.Scalar(1.25))
	require.NoError(t, err)
	assert.Equal(t, "1.25", string(b))

	b, err = json.Marshal(internal.Rates{Kind: internal.CodeRates, Codes: map[string]float64{"USD": 1.1}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"USD":1.1}`, string(b))
}

func averagingFixture() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"2021-01-01": {"USD": 1.0, "GBP": 0.8},
		"2021-01-02": {"USD": 1.2},
	}
}

func TestAverageSeries_FullPrecision(t *testing.T) {
	r, err := internal.AverageSeries(averagingFixture(), nil)
	require.NoError(t, err)

	assert.Equal(t, internal.CodeRates, r.Kind)
	assert.Equal(t, map[string]float64{"USD": 1.1, "GBP": 0.8}, r.Codes)
}

func TestAverageSeries_RoundToZeroPlaces(t *testing.T) {
	r, err := internal.AverageSeries(averagingFixture(), intPtr(0))
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"USD": 1, "GBP": 1}, r.Codes)
}

func TestAverageSeries_RoundsHalfAwayFromZero(t *testing.T) {
	series := map[string]map[string]float64{
		"2021-01-01": {"USD": 1.124},
		"2021-01-02": {"USD": 1.126},
	}

	r, err := internal.AverageSeries(series, intPtr(2))
	require.NoError(t, err)

	v, ok := r.Float()
	require.True(t, ok)
	assert.Equal(t, 1.13, v)
}

func TestAverageSeries_SingleCurrencyCollapses(t *testing.T) {
	series := map[string]map[string]float64{
		"2021-01-01": {"USD": 1.0},
		"2021-01-02": {"USD": 2.0},
	}

	r, err := internal.AverageSeries(series, nil)
	require.NoError(t, err)

	v, ok := r.Float()
	require.True(t, ok)
	assert.Equal(t, 1.5, v)
}

func TestAverageSeries_NegativePlaces(t *testing.T) {
	_, err := internal.AverageSeries(averagingFixture(), intPtr(-1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal.ErrInvalidArgument))
}

func TestAverageSeries_PlacesBounds(t *testing.T) {
	series := map[string]map[string]float64{
		"2021-01-01": {"USD": 11.23, "GBP": 0.8},
		"2021-01-02": {"USD": 11.25},
	}

	r, err := internal.AverageSeries(series, intPtr(2))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 11.24, "GBP": 0.8}, r.Codes)

	r, err = internal.AverageSeries(series, intPtr(internal.MaxDecimalPlaces))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 11.24, "GBP": 0.8}, r.Codes)

	wraps := int64(1)<<32 - 1
	for _, places := range []int{internal.MaxDecimalPlaces + 1, 1 << 30, int(wraps), int(wraps + 1)} {
		_, err := internal.AverageSeries(series, intPtr(places))
		require.Error(t, err, places)
		assert.True(t, errors.Is(err, internal.ErrInvalidArgument), places)
	}
}
