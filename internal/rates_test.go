package internal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exchange-rates/internal"
	"exchange-rates/internal/mock"
)

func TestRateConverter_GetPairRate_EURToUSD(t *testing.T) {
	mockStorage := mock.NewMockStorage(t)

	rate, _ := decimal.NewFromString("1.0850")
	asOf := internal.NewDate(2024, time.March, 1)
	mockStorage.EXPECT().
		GetLatest(testifymock.Anything, internal.EUR, []internal.CurrencyCode{internal.USD}).
		Return([]internal.CurrencyLatestRate{
			{
				BaseCCY:   internal.EUR,
				QuoteCCY:  internal.USD,
				Rate:      rate,
				AsOfDate:  &asOf,
				FetchedAt: time.Now(),
			},
		}, nil).
		Once()

	converter := internal.NewRateConverter(mockStorage, internal.EUR)
	result, err := converter.GetPairRate(context.Background(), internal.EUR, internal.USD)

	require.NoError(t, err)
	assert.Equal(t, internal.EUR, result.Base)
	assert.Equal(t, internal.USD, result.Quote)
	assert.Equal(t, "1.0850", result.Rate.StringFixed(4))
	require.NotNil(t, result.Date)
	assert.Equal(t, "2024-03-01", result.Date.Format())
}

func TestRateConverter_GetPairRate_USDToEUR(t *testing.T) {
	mockStorage := mock.NewMockStorage(t)

	rate, _ := decimal.NewFromString("1.25")
	mockStorage.EXPECT().
		GetLatest(testifymock.Anything, internal.EUR, []internal.CurrencyCode{internal.USD}).
		Return([]internal.CurrencyLatestRate{
			{BaseCCY: internal.EUR, QuoteCCY: internal.USD, Rate: rate, FetchedAt: time.Now()},
		}, nil).
		Once()

	converter := internal.NewRateConverter(mockStorage, internal.EUR)
	result, err := converter.GetPairRate(context.Background(), internal.USD, internal.EUR)

	require.NoError(t, err)
	assert.Equal(t, internal.USD, result.Base)
	assert.Equal(t, internal.EUR, result.Quote)
	assert.Equal(t, "0.8000", result.Rate.StringFixed(4))
}

func TestRateConverter_GetPairRate_USDToGBP(t *testing.T) {
	mockStorage := mock.NewMockStorage(t)

	rateUSD, _ := decimal.NewFromString("1.25")
	rateGBP, _ := decimal.NewFromString("0.85")
	usdAsOf := internal.NewDate(2024, time.March, 4)
	gbpAsOf := internal.NewDate(2024, time.March, 1)

	mockStorage.EXPECT().
		GetLatest(testifymock.Anything, internal.EUR, []internal.CurrencyCode{internal.USD}).
		Return([]internal.CurrencyLatestRate{
			{BaseCCY: internal.EUR, QuoteCCY: internal.USD, Rate: rateUSD, AsOfDate: &usdAsOf, FetchedAt: time.Now()},
		}, nil).
		Once()

	mockStorage.EXPECT().
		GetLatest(testifymock.Anything, internal.EUR, []internal.CurrencyCode{internal.GBP}).
		Return([]internal.CurrencyLatestRate{
			{BaseCCY: internal.EUR, QuoteCCY: internal.GBP, Rate: rateGBP, AsOfDate: &gbpAsOf, FetchedAt: time.Now()},
		}, nil).
		Once()

	converter := internal.NewRateConverter(mockStorage, internal.EUR)
	result, err := converter.GetPairRate(context.Background(), internal.USD, internal.GBP)

	require.NoError(t, err)
	assert.Equal(t, internal.USD, result.Base)
	assert.Equal(t, internal.GBP, result.Quote)
	assert.Equal(t, "0.6800", result.Rate.StringFixed(4))
	require.NotNil(t, result.Date)
	assert.Equal(t, "2024-03-01", result.Date.Format())
}

func TestRateConverter_GetPairRate_SameCurrency(t *testing.T) {
	converter := internal.NewRateConverter(mock.NewMockStorage(t), internal.EUR)

	result, err := converter.GetPairRate(context.Background(), internal.JPY, internal.JPY)

	require.NoError(t, err)
	assert.True(t, result.Rate.Equal(decimal.NewFromInt(1)))
}

func TestRateConverter_GetPairRate_DefaultPivot(t *testing.T) {
	mockStorage := mock.NewMockStorage(t)

	mockStorage.EXPECT().
		GetLatest(testifymock.Anything, internal.EUR, []internal.CurrencyCode{internal.CHF}).
		Return([]internal.CurrencyLatestRate{
			{BaseCCY: internal.EUR, QuoteCCY: internal.CHF, Rate: decimal.RequireFromString("0.95")},
		}, nil).
		Once()

	converter := internal.NewRateConverter(mockStorage, "")
	result, err := converter.GetPairRate(context.Background(), internal.EUR, internal.CHF)

	require.NoError(t, err)
	assert.Equal(t, "0.95", result.Rate.String())
}

func TestRateConverter_GetPairRate_NotAvailable(t *testing.T) {
	mockStorage := mock.NewMockStorage(t)

	mockStorage.EXPECT().
		GetLatest(testifymock.Anything, internal.EUR, []internal.CurrencyCode{internal.RUB}).
		Return(nil, nil).
		Once()

	converter := internal.NewRateConverter(mockStorage, internal.EUR)
	_, err := converter.GetPairRate(context.Background(), internal.EUR, internal.RUB)

	require.Error(t, err)
	assert.True(t, errors.Is(err, internal.ErrRateNotAvailable))
}

func TestRateConverter_GetPairRate_ZeroRate(t *testing.T) {
	mockStorage := mock.NewMockStorage(t)

	mockStorage.EXPECT().
		GetLatest(testifymock.Anything, internal.EUR, []internal.CurrencyCode{internal.USD}).
		Return([]internal.CurrencyLatestRate{
			{BaseCCY: internal.EUR, QuoteCCY: internal.USD, Rate: decimal.Zero},
		}, nil).
		Once()

	converter := internal.NewRateConverter(mockStorage, internal.EUR)
	_, err := converter.GetPairRate(context.Background(), internal.USD, internal.EUR)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot invert")
}

func TestRateConverter_GetPairRate_StorageError(t *testing.T) {
	mockStorage := mock.NewMockStorage(t)

	mockStorage.EXPECT().
		GetLatest(testifymock.Anything, internal.EUR, []internal.CurrencyCode{internal.USD}).
		Return(nil, errors.New("database error")).
		Once()

	converter := internal.NewRateConverter(mockStorage, internal.EUR)
	_, err := converter.GetPairRate(context.Background(), internal.EUR, internal.USD)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}

func TestRateConverter_GetPairRate_UnsupportedCurrency(t *testing.T) {
	mockStorage := mock.NewMockStorage(t)
	converter := internal.NewRateConverter(mockStorage, internal.EUR)

	unsupported := internal.CurrencyCode("XXX")
	_, err := converter.GetPairRate(context.Background(), unsupported, internal.USD)

	require.Error(t, err)
	assert.True(t, errors.Is(err, internal.ErrInvalidCurrency))
	assert.Contains(t, err.Error(), "unsupported currency")
}
