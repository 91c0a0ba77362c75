package internal_test

import (
	"errors"
	"testing"
	"time"

	"exchange-rates/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://api.example.test"

func day(t *testing.T, s string) internal.Date {
	t.Helper()
	d, err := internal.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestQuery_URL_Latest(t *testing.T) {
	var q internal.Query

	u, err := q.URL(testBaseURL, "")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/latest", u)
}

func TestQuery_URL_ParameterOrder(t *testing.T) {
	var q internal.Query
	require.NoError(t, q.SetBase("usd"))
	require.NoError(t, q.SetSymbols("gbp", "JPY"))

	u, err := q.URL(testBaseURL+"/", "k3y")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/latest?base=USD&symbols=GBP,JPY&access_key=k3y", u)
}

func TestQuery_URL_SingleDay(t *testing.T) {
	var q internal.Query
	q.SetAt(day(t, "2020-02-29"))
	require.NoError(t, q.SetSymbols("CHF"))

	u, err := q.URL(testBaseURL, "")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/2020-02-29?symbols=CHF", u)

	d, ok := q.Day()
	assert.True(t, ok)
	assert.Equal(t, "2020-02-29", d.Format())
}

func TestQuery_URL_History(t *testing.T) {
	var q internal.Query
	q.SetFrom(day(t, "2021-01-01"))
	q.SetTo(day(t, "2021-01-31"))
	require.NoError(t, q.SetBase("EUR"))

	u, err := q.URL(testBaseURL, "")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/history?start_at=2021-01-01&end_at=2021-01-31&base=EUR", u)
	assert.True(t, q.IsHistory())

	_, ok := q.Day()
	assert.False(t, ok)
}

func TestQuery_URL_Deterministic(t *testing.T) {
	var q internal.Query
	require.NoError(t, q.SetSymbols("USD", "GBP", "AUD"))

	first, err := q.URL(testBaseURL, "key")
	require.NoError(t, err)
	for range 10 {
		u, err := q.URL(testBaseURL, "key")
		require.NoError(t, err)
		assert.Equal(t, first, u)
	}
}

func TestQuery_URL_EscapesAccessKey(t *testing.T) {
	var q internal.Query

	u, err := q.URL(testBaseURL, "a&b=c d")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/latest?access_key=a%26b%3Dc+d", u)
}

func TestQuery_URL_ValidatesFirst(t *testing.T) {
	var q internal.Query
	q.SetFrom(day(t, "2021-01-01"))

	u, err := q.URL(testBaseURL, "")
	require.Error(t, err)
	assert.Empty(t, u)
	assert.True(t, errors.Is(err, internal.ErrInvalidDateRange))
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name  string
		build func(q *internal.Query)
		want  error
	}{
		{
			name:  "latest",
			build: func(q *internal.Query) {},
		},
		{
			name:  "single day",
			build: func(q *internal.Query) { q.SetAt(internal.NewDate(2010, time.May, 1)) },
		},
		{
			name: "single day range",
			build: func(q *internal.Query) {
				q.SetFrom(internal.NewDate(2010, time.May, 1))
				q.SetTo(internal.NewDate(2010, time.May, 1))
			},
		},
		{
			name:  "range without end",
			build: func(q *internal.Query) { q.SetFrom(internal.NewDate(2010, time.May, 1)) },
			want:  internal.ErrInvalidDateRange,
		},
		{
			name:  "range without start",
			build: func(q *internal.Query) { q.SetTo(internal.NewDate(2010, time.May, 1)) },
			want:  internal.ErrInvalidDateRange,
		},
		{
			name: "range reversed",
			build: func(q *internal.Query) {
				q.SetFrom(internal.NewDate(2010, time.May, 2))
				q.SetTo(internal.NewDate(2010, time.May, 1))
			},
			want: internal.ErrInvalidDateOrder,
		},
		{
			name:  "single day before 1999",
			build: func(q *internal.Query) { q.SetAt(internal.NewDate(1998, time.December, 31)) },
			want:  internal.ErrUnsupportedHistoricalYear,
		},
		{
			name: "range start before 1999",
			build: func(q *internal.Query) {
				q.SetFrom(internal.NewDate(1998, time.June, 1))
				q.SetTo(internal.NewDate(2000, time.June, 1))
			},
			want: internal.ErrUnsupportedHistoricalYear,
		},
		{
			name:  "incomplete range before 1999",
			build: func(q *internal.Query) { q.SetTo(internal.NewDate(1990, time.June, 1)) },
			want:  internal.ErrUnsupportedHistoricalYear,
		},
		{
			name: "latest after reset",
			build: func(q *internal.Query) {
				q.SetFrom(internal.NewDate(2010, time.May, 2))
				q.SetLatest()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q internal.Query
			tt.build(&q)

			err := q.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestQuery_SetAtReplacesRange(t *testing.T) {
	var q internal.Query
	q.SetFrom(day(t, "2021-01-01"))
	q.SetAt(day(t, "2021-02-01"))

	assert.False(t, q.IsHistory())
	u, err := q.URL(testBaseURL, "")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/2021-02-01", u)
}

func TestQuery_SetSymbols_InvalidKeepsState(t *testing.T) {
	var q internal.Query
	require.NoError(t, q.SetSymbols("USD"))

	err := q.SetSymbols("GBP", "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal.ErrInvalidCurrency))
	assert.Equal(t, []internal.CurrencyCode{internal.USD}, q.Symbols())
}

func TestQuery_SetBase_Invalid(t *testing.T) {
	var q internal.Query

	err := q.SetBase("XYZ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal.ErrInvalidCurrency))
	assert.Equal(t, internal.CurrencyCode(""), q.Base())
}
